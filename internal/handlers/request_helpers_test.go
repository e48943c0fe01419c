package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
)

func TestLowerCamel(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"Email":    "email",
		"LeadID":   "leadID",
		"priority": "priority",
	}
	for input, want := range tests {
		if got := lowerCamel(input); got != want {
			t.Fatalf("lowerCamel(%q) = %q, want %q", input, got, want)
		}
	}
}

func paramContext(t *testing.T, key, value string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Params = gin.Params{{Key: key, Value: value}}
	return c, w
}

func TestObjectIDParamInvalid(t *testing.T) {
	c, w := paramContext(t, "id", "not-an-objectid")

	if _, ok := objectIDParam(c); ok {
		t.Fatal("expected invalid id to be rejected")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestObjectIDParamValid(t *testing.T) {
	c, _ := paramContext(t, "id", "507f1f77bcf86cd799439011")

	id, ok := objectIDParam(c)
	if !ok {
		t.Fatal("expected valid id to parse")
	}
	if id.Hex() != "507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected id %s", id.Hex())
	}
}

func TestOwnEmailParamMatchesCaller(t *testing.T) {
	c, _ := paramContext(t, "email", "e1@x.com")
	c.Set(middleware.ContextUserEmail, "e1@x.com")

	email, ok := ownEmailParam(c)
	if !ok || email != "e1@x.com" {
		t.Fatalf("expected matching email to pass, got %q ok=%v", email, ok)
	}
}

// Parameter substitution by another executive is rejected: the path email is
// no longer trusted on its own.
func TestOwnEmailParamRejectsOtherExecutive(t *testing.T) {
	c, w := paramContext(t, "email", "otherExec@x.com")
	c.Set(middleware.ContextUserEmail, "e1@x.com")
	c.Set(middleware.ContextUserRole, models.RoleExecutive)

	if _, ok := ownEmailParam(c); ok {
		t.Fatal("expected mismatched email to be rejected")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestOwnEmailParamAdminMayReadAny(t *testing.T) {
	c, _ := paramContext(t, "email", "otherExec@x.com")
	c.Set(middleware.ContextUserEmail, "admin@x.com")
	c.Set(middleware.ContextUserRole, models.RoleAdmin)

	email, ok := ownEmailParam(c)
	if !ok || email != "otherExec@x.com" {
		t.Fatalf("expected admin to read any email, got %q ok=%v", email, ok)
	}
}

func TestOwnEmailParamCaseInsensitive(t *testing.T) {
	c, _ := paramContext(t, "email", "E1@X.com")
	c.Set(middleware.ContextUserEmail, "e1@x.com")

	if _, ok := ownEmailParam(c); !ok {
		t.Fatal("expected case-insensitive email match to pass")
	}
}
