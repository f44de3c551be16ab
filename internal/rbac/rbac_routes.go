package rbac

import (
	"employee-register/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(jwtSecret))
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("/permissions", middleware.RateLimitByUser(2, 10), handler.MyPermissions)
		group.POST("/check", middleware.RateLimitByUser(5, 20), handler.Check)
	}
}
