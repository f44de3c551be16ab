package bootstrap

import (
	"context"
	"time"

	"employee-register/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through zap under the "audit" name.
type StdoutAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutAuditLogger(logger *zap.Logger) *StdoutAuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &StdoutAuditLogger{logger: logger.Named("audit"), now: time.Now}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	l.logger.Info("audit event",
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Any("meta", entry.Meta),
	)
}
