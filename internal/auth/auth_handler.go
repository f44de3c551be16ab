package auth

import (
	"net/http"
	"time"

	"employee-register/internal/middleware"
	"employee-register/internal/shared/apperror"
	"employee-register/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service      Service
	secureCookie bool
	cookieTTL    time.Duration
	logger       *zap.Logger
}

// NewHandler builds the auth handler. secureCookie marks the access_token
// cookie Secure and should be set outside development.
func NewHandler(s Service, secureCookie bool, cookieTTL time.Duration, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, secureCookie: secureCookie, cookieTTL: cookieTTL, logger: l}
}

func (ctrl *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (ctrl *Handler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ctrl.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	token, userResp, err := ctrl.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ctrl.logger.Warn("login failed", zap.String("username", req.Username), zap.String("ip", c.ClientIP()))
		ctrl.writeServiceError(c, err)
		return
	}

	ctrl.setTokenCookie(c, token, int(ctrl.cookieTTL.Seconds()))
	response.Success(c, http.StatusOK, gin.H{
		"user":         userResp,
		"access_token": token,
	}, nil)
}

func (ctrl *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Unauthorized", nil)
		return
	}

	userResp, err := ctrl.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		ctrl.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}

func (ctrl *Handler) Logout(c *gin.Context) {
	ctrl.setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}
