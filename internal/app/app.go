package app

import (
	"context"
	"time"

	"employee-register/internal/middleware"
	"employee-register/internal/shared/config"
	"employee-register/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BuildApp connects the stores, migrates the schema, seeds the admin account and
// mounts every route on router. The returned close func releases connections.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	decimal.MarshalJSONWithoutQuotes = true

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := autoMigrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.RedisPassword, 5, logger)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency and statistics cache disabled")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestID())

	mods, err := registerModules(router, cfg, sqlDB, gormDB, rdb, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	created, err := mods.auth.SeedAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.AdminEmail)
	if err != nil {
		logger.Error("seed admin failed", zap.Error(err))
	} else if created {
		logger.Info("seeded admin account", zap.String("username", cfg.Seed.AdminUsername))
	}

	return func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}, nil
}
