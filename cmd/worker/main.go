package main

import (
	"employee-register/internal/app"
	"employee-register/internal/shared/config"
	"employee-register/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Environment, cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	if err := app.RunWorker(cfg, log); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
