package loan

import (
	"employee-register/internal/middleware"
	"employee-register/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	logger *zap.Logger,
) {
	loans := r.Group("/loans")
	loans.Use(middleware.AuthMiddleware(jwtSecret))
	loans.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, rbac.ResourceLoan, rbac.ActionRead)

		loans.GET("", middleware.RateLimitByUser(3, 10), read, handler.GetAll)
		loans.GET("/active", middleware.RateLimitByUser(3, 10), read, handler.GetActive)
		loans.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)
		loans.GET("/employee/:employeeId", middleware.RateLimitByUser(3, 10), read, handler.GetByEmployee)
		loans.GET("/employee/:employeeId/active", middleware.RateLimitByUser(3, 10), read, handler.GetActiveByEmployee)

		loans.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLoan, rbac.ActionCreate),
			handler.Register,
		)
		loans.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLoan, rbac.ActionUpdate),
			handler.Update,
		)
		loans.PUT("/:id/status",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLoan, rbac.ActionUpdate),
			handler.UpdateStatus,
		)
		loans.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLoan, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
