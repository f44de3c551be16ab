package loanrepay

import (
	"employee-register/internal/middleware"
	"employee-register/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	jwtSecret string,
	logger *zap.Logger,
) {
	repayments := r.Group("/loan-repayments")
	repayments.Use(middleware.AuthMiddleware(jwtSecret))
	repayments.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, rbac.ResourceLoanRepayment, rbac.ActionRead)

		repayments.GET("", middleware.RateLimitByUser(3, 10), read, handler.GetAll)
		repayments.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)
		repayments.GET("/loan/:loanId", middleware.RateLimitByUser(3, 10), read, handler.GetByLoan)
		repayments.GET("/loan/:loanId/total", middleware.RateLimitByUser(3, 10), read, handler.GetTotalRepaid)
		repayments.GET("/employee/:employeeId", middleware.RateLimitByUser(3, 10), read, handler.GetByEmployee)

		repayments.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLoanRepayment, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		repayments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLoanRepayment, rbac.ActionUpdate),
			handler.Update,
		)
		repayments.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLoanRepayment, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
