package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	RegistrationSubject = "Welcome to Employee Management System"
	PaymentSubject      = "Salary Payment Notification"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type registrationView struct {
	Subject  string
	Username string
	Password string
	Year     int
}

type paymentView struct {
	Subject  string
	Username string
	Amount   string
	Date     string
	Year     int
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
