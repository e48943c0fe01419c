package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the session and role middleware.
const (
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "token"

// SessionAuth verifies the session cookie and injects the authenticated
// email into the context. Requests without a valid token stop here with 401;
// no further logic runs and nothing is audited.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized token"})
			return
		}

		email, err := ParseSessionEmail(raw, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized token"})
			return
		}

		c.Set(ContextUserEmail, email)
		c.Next()
	}
}

// ParseSessionEmail validates the token's signature and expiry and returns
// the email claim.
func ParseSessionEmail(raw, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return email, nil
}

// UserEmail returns the authenticated email injected by SessionAuth.
func UserEmail(c *gin.Context) string {
	email, _ := c.Get(ContextUserEmail)
	value, _ := email.(string)
	return value
}
