package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"employee-register/internal/messaging/kafka"
	"employee-register/internal/messaging/kafka/producer"
	"employee-register/internal/shared/config"
	"employee-register/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays pending outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.OutboxPollInterval)

	logger.Info("worker shutting down")
	return nil
}
