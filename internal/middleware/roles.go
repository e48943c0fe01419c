package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"crm-backend/internal/models"
)

// RoleResolver returns the role currently stored for an email. It is called
// on every gated request so role changes apply immediately; roles are never
// read from token claims.
type RoleResolver func(ctx context.Context, email string) (string, error)

// NewRoleResolver resolves roles from the users collection. A missing user
// or an unset role resolves to RoleUnknown rather than an error.
func NewRoleResolver(db *mongo.Database) RoleResolver {
	return func(ctx context.Context, email string) (string, error) {
		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			return models.RoleUnknown, nil
		}
		if err != nil {
			return models.RoleUnknown, err
		}
		if user.Role == "" {
			return models.RoleUnknown, nil
		}
		return user.Role, nil
	}
}

// RequireRole admits the request only when the resolved role is in the
// allowed set. It runs after SessionAuth and leaves the resolved role in the
// context for ownership checks downstream.
func RequireRole(resolve RoleResolver, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := UserEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		role, err := resolve(ctx, email)
		if err != nil {
			log.Println("[ROLE] [ERROR] role lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		match := false
		for _, allowed := range allowedRoles {
			if role == allowed {
				match = true
				break
			}
		}
		if !match {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		c.Set(ContextUserRole, role)
		c.Next()
	}
}

// AdminOnly gates a route to the admin role.
func AdminOnly(resolve RoleResolver) gin.HandlerFunc {
	return RequireRole(resolve, models.RoleAdmin)
}

// ExecutiveOnly gates a route to the executive role.
func ExecutiveOnly(resolve RoleResolver) gin.HandlerFunc {
	return RequireRole(resolve, models.RoleExecutive)
}

// UserRole returns the role injected by RequireRole, or RoleUnknown when the
// route carried no role gate.
func UserRole(c *gin.Context) string {
	role, ok := c.Get(ContextUserRole)
	if !ok {
		return models.RoleUnknown
	}
	value, _ := role.(string)
	return value
}
