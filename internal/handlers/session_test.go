package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"crm-backend/internal/middleware"
)

const testSecret = "test-secret"

func TestIssueSessionTokenRoundTrip(t *testing.T) {
	token, err := issueSessionToken("e1@x.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issueSessionToken failed: %v", err)
	}

	email, err := middleware.ParseSessionEmail(token, testSecret)
	if err != nil {
		t.Fatalf("ParseSessionEmail failed: %v", err)
	}
	if email != "e1@x.com" {
		t.Fatalf("expected e1@x.com, got %s", email)
	}
}

func TestIssueSessionTokenExpiry(t *testing.T) {
	token, err := issueSessionToken("e1@x.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issueSessionToken failed: %v", err)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("expiration claim missing: %v", err)
	}
	until := time.Until(exp.Time)
	if until < 59*time.Minute || until > 61*time.Minute {
		t.Fatalf("expected roughly one hour of validity, got %v", until)
	}
}

func TestIssueSessionSetsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/jwt", IssueSession(testSecret, time.Hour, nil))

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{"email":"e1@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("expected success body, got %s", w.Body.String())
	}

	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, middleware.SessionCookie+"=") {
		t.Fatalf("expected session cookie, got %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("expected http-only cookie, got %q", cookie)
	}
}

func TestIssueSessionRequiresEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/jwt", IssueSession(testSecret, time.Hour, nil))

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{"name":"no email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/logout", Logout(testSecret, nil))

	req := httptest.NewRequest("POST", "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, middleware.SessionCookie+"=") || !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("expected expired session cookie, got %q", cookie)
	}
}
