package rbac

import (
	"employee-register/internal/shared/apperror"
	"employee-register/internal/shared/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Check answers whether the caller's role may perform an action, so clients
// can hide controls they cannot use.
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	allowed, err := h.service.Enforce(c.GetString("role"), strings.TrimSpace(req.Resource), strings.TrimSpace(req.Action))
	if err != nil {
		h.logger.Error("rbac check failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, CheckResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	perms, err := h.service.PermissionsForRole(c.GetString("role"))
	if err != nil {
		h.logger.Error("rbac list permissions failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, perms, nil)
}
