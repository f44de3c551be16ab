package logger

import (
	"os"
	"strings"

	"employee-register/internal/shared/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/lumberjack.v2"
)

// New builds the process logger. Development uses a console encoder on stderr,
// production JSON on stdout. A configured LOG_FILE receives the same entries in
// JSON through a rotating writer.
func New(env string, cfg config.LogConfig) (*zap.Logger, error) {
	level := parseLevel(cfg.Level)

	var (
		encoder zapcore.Encoder
		sink    zapcore.WriteSyncer
	)
	if env == "production" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		sink = zapcore.Lock(os.Stdout)
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
		sink = zapcore.Lock(os.Stderr)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, sink, level)}

	if cfg.File != "" {
		rotating := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		})
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, rotating, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
