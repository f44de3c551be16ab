package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(jwtSecret))
	employees.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead)

		employees.GET("", middleware.RateLimitByUser(3, 10), read, handler.GetAll)
		employees.GET("/active", middleware.RateLimitByUser(3, 10), read, handler.GetActive)
		employees.GET("/active/count", middleware.RateLimitByUser(5, 20), read, handler.CountActive)
		employees.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)

		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionCreate),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate),
			handler.Update,
		)

		employees.PUT("/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate),
			handler.UpdateStatus,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
