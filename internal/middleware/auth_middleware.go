package middleware

import (
	"errors"
	"fmt"
	"strings"

	autherrors "employee-register/internal/auth/errors"
	"employee-register/internal/shared/apperror"
	"employee-register/internal/shared/contextutil"
	"employee-register/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

// AuthMiddleware validates an HS256 token from the Authorization header or the
// access_token cookie and exposes user_id, username and role on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("username", username)
		c.Set("role", role)

		ctx := contextutil.WithUserID(c.Request.Context(), userID)
		ctx = contextutil.WithRole(ctx, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.AbortError(c, err.HTTPStatus, err.Code, err.Message)
}
