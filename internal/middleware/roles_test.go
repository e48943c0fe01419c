package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/models"
)

func staticResolver(role string, err error) RoleResolver {
	return func(ctx context.Context, email string) (string, error) {
		return role, err
	}
}

func gatedRouter(resolve RoleResolver, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gated", SessionAuth(testSecret), RequireRole(resolve, allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": UserRole(c)})
	})
	return r
}

func gatedRequest(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/gated", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signTestToken(t, "e1@x.com", time.Hour)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleAllows(t *testing.T) {
	r := gatedRouter(staticResolver(models.RoleAdmin, nil), models.RoleAdmin)

	w := gatedRequest(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"role":"admin"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	r := gatedRouter(staticResolver(models.RoleExecutive, nil), models.RoleAdmin)

	if w := gatedRequest(t, r); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", w.Code)
	}
}

func TestRequireRoleForbidsUnknownRole(t *testing.T) {
	r := gatedRouter(staticResolver(models.RoleUnknown, nil), models.RoleAdmin, models.RoleExecutive)

	if w := gatedRequest(t, r); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown role, got %d", w.Code)
	}
}

func TestRequireRoleResolverError(t *testing.T) {
	r := gatedRouter(staticResolver("", errors.New("store down")), models.RoleAdmin)

	if w := gatedRequest(t, r); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on resolver error, got %d", w.Code)
	}
}

// The role is resolved per request, so a change between two requests with
// the same still-valid token takes effect immediately.
func TestRequireRoleReResolvesPerRequest(t *testing.T) {
	current := models.RoleExecutive
	resolve := func(ctx context.Context, email string) (string, error) {
		return current, nil
	}
	r := gatedRouter(resolve, models.RoleAdmin)

	if w := gatedRequest(t, r); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before role change, got %d", w.Code)
	}

	current = models.RoleAdmin
	if w := gatedRequest(t, r); w.Code != http.StatusOK {
		t.Fatalf("expected 200 after role change, got %d", w.Code)
	}
}
