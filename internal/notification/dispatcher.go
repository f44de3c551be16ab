package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee-register/internal/shared/dateutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrDelivery wraps every failure to hand a rendered message to the mailer.
var ErrDelivery = errors.New("notification delivery failed")

// Mailer sends one HTML message.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, htmlBody string) error
}

type Dispatcher struct {
	mailer Mailer
	from   string
	now    func() time.Time
	logger *zap.Logger
}

func NewDispatcher(mailer Mailer, from string, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &Dispatcher{mailer: mailer, from: from, now: time.Now, logger: l}
}

func (d *Dispatcher) SendRegistrationNotice(ctx context.Context, email, username, password string) error {
	body, err := render("registration.html", registrationView{
		Subject:  RegistrationSubject,
		Username: username,
		Password: password,
		Year:     d.now().Year(),
	})
	if err != nil {
		return err
	}
	return d.deliver(ctx, email, RegistrationSubject, body)
}

func (d *Dispatcher) SendPaymentNotice(ctx context.Context, email, username string, amount decimal.Decimal, date time.Time) error {
	body, err := render("payment.html", paymentView{
		Subject:  PaymentSubject,
		Username: username,
		Amount:   formatAmount(amount),
		Date:     date.Format(dateutil.DisplayLayout),
		Year:     d.now().Year(),
	})
	if err != nil {
		return err
	}
	return d.deliver(ctx, email, PaymentSubject, body)
}

func (d *Dispatcher) deliver(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		d.logger.Debug("notification skipped, no recipient", zap.String("subject", subject))
		return nil
	}
	if err := d.mailer.Send(ctx, d.from, to, subject, body); err != nil {
		return fmt.Errorf("%w: %s to %s: %v", ErrDelivery, subject, to, err)
	}
	d.logger.Info("notification sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func formatAmount(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
