package app

import (
	"database/sql"
	"employee-register/internal/attendance"
	"employee-register/internal/auth"
	"employee-register/internal/employee"
	"employee-register/internal/loan"
	"employee-register/internal/loanrepay"
	"employee-register/internal/messaging/kafka"
	"employee-register/internal/rbac"
	"employee-register/internal/rbac/infra"
	"employee-register/internal/salary"
	"employee-register/internal/shared/config"
	"employee-register/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	auth auth.Service
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) (modules, error) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	loanRepayRepo := loanrepay.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return modules{}, err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPolicy(), logger)
	if err != nil {
		return modules{}, err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, auth.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL}, logger)
	employeeService := employee.NewService(db, employeeRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, logger)
	loanService := loan.NewService(db, loanRepo, employeeRepo, logger)
	loanRepayService := loanrepay.NewService(db, loanRepayRepo, loanRepo, logger)
	salaryService := salary.NewService(db, salaryRepo, employeeRepo, outboxRepo, rdb, logger)
	userService := user.NewService(db, userRepo, outboxRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), cfg.JWTTTL, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	loanHandler := loan.NewHandler(loanService, logger)
	loanRepayHandler := loanrepay.NewHandler(loanRepayService, logger)
	salaryHandler := salary.NewHandler(salaryService, logger)
	userHandler := user.NewHandler(userService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.JWTSecret, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, cfg.JWTSecret, logger)
		loan.RegisterRoutes(api, loanHandler, rbacService, cfg.JWTSecret, logger)
		loanrepay.RegisterRoutes(api, loanRepayHandler, rbacService, rdb, cfg.JWTSecret, logger)
		salary.RegisterRoutes(api, salaryHandler, rbacService, rdb, cfg.JWTSecret, logger)
		user.RegisterRoutes(api, userHandler, rbacService, cfg.JWTSecret, logger)
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret, logger)
	}

	return modules{auth: authService}, nil
}
