package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"employee-register/internal/messaging/kafka/consumer"
	"employee-register/internal/notification"
	"employee-register/internal/shared/config"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer delivers notification emails for every event on the notification
// topics until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	dispatcher := notification.NewDispatcher(notification.NewMailer(cfg.Mail), cfg.Mail.From, logger)
	if !cfg.Mail.Enabled {
		logger.Warn("MAIL_ENABLED is false, notices are logged and dropped")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		GroupID:        cfg.KafkaGroupID,
		GroupTopics:    consumer.Topics,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	consumer.ConsumeNotifications(ctx, reader, dispatcher, logger)

	logger.Info("consumer shutting down")
	return nil
}
