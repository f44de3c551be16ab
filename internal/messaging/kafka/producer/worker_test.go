package producer

import (
	"context"
	"errors"
	"testing"

	"employee-register/internal/messaging/kafka"
	kafkaMock "employee-register/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	fail map[string]error
	sent []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.fail[string(m.Key)]; err != nil {
			return err
		}
		w.sent = append(w.sent, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	pending := []kafka.OutboxEvent{
		{ID: "o-1", AggregateID: "u-1", EventType: "user_registered", Topic: "users", Payload: []byte("{}"), RequestID: "r-1"},
		{ID: "o-2", AggregateID: "s-1", EventType: "salary_paid", Topic: "salaries", Payload: []byte("{}")},
	}
	writer := &fakeWriter{fail: map[string]error{"s-1": errors.New("broker down")}}

	repo.EXPECT().ListPending(ctx, batchSize).Return(pending, nil)
	repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "o-2", "broker down").Return(nil)

	require.NoError(t, processPendingEvents(ctx, repo, writer, zap.NewNop()))

	require.Len(t, writer.sent, 1)
	msg := writer.sent[0]
	assert.Equal(t, "users", msg.Topic)
	assert.Equal(t, "u-1", string(msg.Key))
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("r-1")})
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(nil, errors.New("db down"))

	err := processPendingEvents(context.Background(), repo, &fakeWriter{}, zap.NewNop())
	assert.EqualError(t, err, "db down")
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 0)
		close(done)
	}()
	<-done
}
