package salary

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"employee-register/internal/shared/dateutil"

	"github.com/jung-kurt/gofpdf"
)

type slipData struct {
	SalaryID     string
	EmployeeName string
	EmployeeRole string
	PaymentType  string
	Amount       string
	DatePaid     time.Time
	LastPaid     *time.Time
	IssuedAt     time.Time
}

// Slip is a rendered payment slip ready to be served as a download.
type Slip struct {
	Filename string
	Content  []byte
}

func paymentTypeLabel(t string) string {
	switch t {
	case PaymentTypeDailyCredit:
		return "Daily credit"
	case PaymentTypeSalary:
		return "Salary"
	default:
		return t
	}
}

func renderSlip(d slipData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary payment slip", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Salary Payment Slip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	line("Slip number", d.SalaryID)
	line("Employee", d.EmployeeName)
	if strings.TrimSpace(d.EmployeeRole) != "" {
		line("Role", d.EmployeeRole)
	}
	line("Payment type", paymentTypeLabel(d.PaymentType))
	line("Date paid", d.DatePaid.Format(dateutil.DisplayLayout))
	if d.LastPaid != nil {
		line("Previous payment", d.LastPaid.Format(dateutil.DisplayLayout))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	line("Amount", "$"+d.Amount)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Issued %s", d.IssuedAt.Format(dateutil.DisplayLayout)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
