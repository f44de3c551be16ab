package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"employee-register/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Topics lists every topic the notification consumer subscribes to.
var Topics = []string{events.UserRegisteredTopic, events.SalaryPaidTopic}

// fetch errors back off from fetchRetryMin, doubling up to fetchRetryMax
var (
	fetchRetryMin = 500 * time.Millisecond
	fetchRetryMax = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Notifier interface {
	SendRegistrationNotice(ctx context.Context, email, username, password string) error
	SendPaymentNotice(ctx context.Context, email, username string, amount decimal.Decimal, date time.Time) error
}

// ConsumeNotifications turns user_registered and salary_paid events into
// emails. Every message is committed once handled, including malformed
// payloads and failed deliveries, so nothing is redelivered.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started", zap.Strings("topics", Topics))

	delay := fetchRetryMin
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Duration("retry_in", delay), zap.Error(err))
			if !sleep(ctx, delay) {
				log.Info("notification consumer stopped")
				return
			}
			delay = min(delay*2, fetchRetryMax)
			continue
		}
		delay = fetchRetryMin

		if err := handleMessage(ctx, msg, notifier); err != nil {
			log.Error("notification not delivered",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.String("request_id", header(msg, "request_id")),
				zap.Error(err),
			)
		} else {
			log.Info("notification handled",
				zap.String("topic", msg.Topic),
				zap.String("request_id", header(msg, "request_id")),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
		}
	}
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, notifier Notifier) error {
	switch msg.Topic {
	case events.UserRegisteredTopic:
		var event events.UserRegisteredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("decode user_registered event: %w", err)
		}
		return notifier.SendRegistrationNotice(ctx, event.Email, event.Username, event.Password)
	case events.SalaryPaidTopic:
		var event events.SalaryPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("decode salary_paid event: %w", err)
		}
		return notifier.SendPaymentNotice(ctx, event.Email, event.EmployeeName, event.Amount, event.DatePaid)
	default:
		return fmt.Errorf("unexpected topic %q", msg.Topic)
	}
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
