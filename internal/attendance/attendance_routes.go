package attendance

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
	g := r.Group("/attendance")
	g.Use(middleware.AuthMiddleware(jwtSecret))
	g.Use(middleware.ContextLogger(logger))

	read := middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead)
	readLimit := middleware.RateLimitByUser(3, 10)

	g.GET("", readLimit, read, handler.GetAll)
	g.GET("/:id", readLimit, read, handler.GetByID)
	g.GET("/employee/:employeeId", readLimit, read, handler.GetByEmployee)
	g.GET("/employee/:employeeId/date/:date", readLimit, read, handler.GetByEmployeeAndDate)
	g.GET("/date/:date", readLimit, read, handler.GetByDate)
	g.GET("/monthly/:employeeId/:month/:year", readLimit, read, handler.MonthlySummary)

	g.POST("",
		middleware.RateLimitByUser(2, 10),
		middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
		handler.Add,
	)
	g.PUT("/:id",
		middleware.RateLimitByUser(1, 5),
		middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate),
		handler.Update,
	)
	g.PUT("/:id/overtime",
		middleware.RateLimitByUser(1, 5),
		middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate),
		handler.UpdateOvertime,
	)
	g.DELETE("/:id",
		middleware.RateLimitByUser(0.5, 2),
		middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionDelete),
		handler.Delete,
	)
}
