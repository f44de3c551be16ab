package salary

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
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware(jwtSecret))
	salaries.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead)

		salaries.GET("", middleware.RateLimitByUser(3, 10), read, handler.GetAll)
		salaries.GET("/statistics", middleware.RateLimitByUser(3, 10), read, handler.Statistics)
		salaries.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)
		salaries.GET("/:id/slip", middleware.RateLimitByUser(1, 3), read, handler.DownloadSlip)
		salaries.GET("/employee/:employeeId", middleware.RateLimitByUser(3, 10), read, handler.GetByEmployee)
		salaries.GET("/employee/:employeeId/latest", middleware.RateLimitByUser(3, 10), read, handler.GetLatestByEmployee)

		salaries.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		salaries.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionUpdate),
			handler.Update,
		)
		salaries.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
