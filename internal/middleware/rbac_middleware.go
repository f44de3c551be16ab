package middleware

import (
	autherrors "employee-register/internal/auth/errors"
	"employee-register/internal/shared/apperror"
	"employee-register/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWith(c, autherrors.ErrForbidden)
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			zap.L().Named("middleware.rbac").Error("enforce failed",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.AbortError(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message)
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, autherrors.ErrForbidden.Message,
				gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
