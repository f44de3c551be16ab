package rbac

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	EnforceFn     func(role, resource, action string) (bool, error)
	PermissionsFn func(role string) ([]Permission, error)
}

func (f *fakeService) Enforce(role, resource, action string) (bool, error) {
	return f.EnforceFn(role, resource, action)
}

func (f *fakeService) PermissionsForRole(role string) ([]Permission, error) {
	return f.PermissionsFn(role)
}

func newContext(method, path, body, role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("role", role)
	return c, w
}

func TestHandler_Check(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		h := NewHandler(&fakeService{EnforceFn: func(role, resource, action string) (bool, error) {
			assert.Equal(t, RoleUser, role)
			assert.Equal(t, "loan", resource)
			return true, nil
		}})
		c, w := newContext(http.MethodPost, "/rbac/check", `{"resource":" loan ","action":"read"}`, RoleUser)

		h.Check(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":true`)
	})

	t.Run("validation error", func(t *testing.T) {
		h := NewHandler(&fakeService{})
		c, w := newContext(http.MethodPost, "/rbac/check", `{"resource":"loan"}`, RoleUser)

		h.Check(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("enforcer failure", func(t *testing.T) {
		h := NewHandler(&fakeService{EnforceFn: func(string, string, string) (bool, error) {
			return false, errors.New("boom")
		}})
		c, w := newContext(http.MethodPost, "/rbac/check", `{"resource":"loan","action":"read"}`, RoleUser)

		h.Check(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_MyPermissions(t *testing.T) {
	h := NewHandler(&fakeService{PermissionsFn: func(role string) ([]Permission, error) {
		return []Permission{{Role: role, Resource: "*", Action: "*"}}, nil
	}})
	c, w := newContext(http.MethodGet, "/rbac/permissions", "", RoleAdmin)

	h.MyPermissions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"ADMIN"`)
}
