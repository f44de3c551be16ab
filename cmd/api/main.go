package main

import (
	"os"
	"time"

	"employee-register/internal/app"
	"employee-register/internal/bootstrap"
	"employee-register/internal/shared/apperror"
	"employee-register/internal/shared/config"
	"employee-register/internal/shared/logger"

	"github.com/gin-gonic/gin"
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

	if err := cfg.ValidateAPI(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	closeApp, err := app.BuildApp(r, cfg, log)
	if err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}
	defer closeApp()

	auditLogger := bootstrap.NewStdoutAuditLogger(log)
	err = bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
		log,
	)
	if err != nil {
		log.Error("http server stopped", zap.Error(err))
		os.Exit(1)
	}
}
