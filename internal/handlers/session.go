package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"crm-backend/internal/activity"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
)

type SessionRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// IssueSession mints the session cookie for an identity already proven
// against the external provider. Validity is purely cryptographic: logout
// clears the client's copy but cannot revoke an already-issued token.
func IssueSession(jwtSecret string, ttl time.Duration, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		token, err := issueSessionToken(email, jwtSecret, ttl)
		if err != nil {
			log.Println("[AUTH] [ERROR] session token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		setSessionCookie(c, token, int(ttl.Seconds()))
		c.JSON(http.StatusOK, gin.H{"success": true})

		recorder.Record(email, models.ActionUserLogin, bson.M{"ipAddress": c.ClientIP()})
	}
}

// Login checks an email/password pair against the users collection and
// issues the same session cookie as IssueSession.
func Login(db *mongo.Database, jwtSecret string, ttl time.Duration, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if user.PasswordHash == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := issueSessionToken(email, jwtSecret, ttl)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		setSessionCookie(c, token, int(ttl.Seconds()))
		log.Println("[AUTH] [INFO] login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{"success": true, "user": gin.H{
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		}})

		recorder.Record(email, models.ActionUserLogin, bson.M{"ipAddress": c.ClientIP()})
	}
}

// Logout clears the session cookie. The logout audit entry is best-effort:
// the presented cookie is parsed for the email, and an absent or expired
// cookie still logs the client out.
func Logout(jwtSecret string, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := ""
		if raw, err := c.Cookie(middleware.SessionCookie); err == nil {
			if parsed, err := middleware.ParseSessionEmail(raw, jwtSecret); err == nil {
				email = parsed
			}
		}

		clearSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{"success": true})

		if email != "" {
			recorder.Record(email, models.ActionUserLogout, nil)
		}
	}
}

func issueSessionToken(email, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

var secureCookies bool

// ConfigureCookies sets the production flag for session cookies: Secure +
// SameSite=None behind HTTPS, SameSite=Strict in development.
func ConfigureCookies(production bool) {
	secureCookies = production
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	if secureCookies {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", secureCookies, true)
}

func clearSessionCookie(c *gin.Context) {
	if secureCookies {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secureCookies, true)
}
