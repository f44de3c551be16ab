package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"employee-register/internal/auth"
	autherrors "employee-register/internal/auth/errors"
	authMock "employee-register/internal/auth/mock"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, true, time.Hour)
	router := setupAuthRouter()
	router.POST("/login", handler.Login)

	t.Run("Success Login sets cookie", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Username: "admin", Password: "password123"})

		mockService.EXPECT().
			Login(gomock.Any(), "admin", "password123").
			Return("signed-token", auth.AuthResponse{ID: "u-1", Username: "admin", Role: "ADMIN"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"access_token":"signed-token"`)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("Failed Login - Invalid Credentials", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Username: "admin", Password: "nope"})

		mockService.EXPECT().
			Login(gomock.Any(), "admin", "nope").
			Return("", auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Failed Login - Missing Fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false, time.Hour)
	router := setupAuthRouter()
	router.GET("/me", func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		c.Next()
	}, handler.Me)

	t.Run("returns caller", func(t *testing.T) {
		mockService.EXPECT().
			GetMe(gomock.Any(), "u-1").
			Return(&auth.AuthResponse{ID: "u-1", Username: "admin"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-Test-User", "u-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"admin"`)
	})

	t.Run("no caller", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	handler := auth.NewHandler(authMock.NewMockService(gomock.NewController(t)), false, time.Hour)
	router := setupAuthRouter()
	router.POST("/logout", handler.Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
