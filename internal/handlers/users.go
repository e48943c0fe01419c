package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"crm-backend/internal/activity"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateUser registers an identity after first sign-in. Role defaults to
// executives; a password is optional and only used by the local login path.
func CreateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		role := req.Role
		if role == "" {
			role = models.RoleExecutive
		}
		if role != models.RoleAdmin && role != models.RoleExecutive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[USER] [ERROR] user create db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}

		user := models.User{
			Email:     email,
			Name:      strings.TrimSpace(req.Name),
			PhotoURL:  strings.TrimSpace(req.PhotoURL),
			Role:      role,
			CreatedAt: time.Now(),
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Println("[USER] [ERROR] password hash failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
				return
			}
			user.PasswordHash = string(hash)
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			log.Println("[USER] [ERROR] user insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[USER] [INFO] user created:", email)
		c.JSON(http.StatusCreated, gin.H{"insertedId": res.InsertedID})
	}
}

// GetUsers lists every user; admin only.
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return listUsers(db, bson.M{})
}

// GetAdminCount lists admin users for the dashboard counters.
func GetAdminCount(db *mongo.Database) gin.HandlerFunc {
	return listUsers(db, bson.M{"role": models.RoleAdmin})
}

// GetEmployeeCount lists executive users for the dashboard counters.
func GetEmployeeCount(db *mongo.Database) gin.HandlerFunc {
	return listUsers(db, bson.M{"role": models.RoleExecutive})
}

func listUsers(db *mongo.Database, filter bson.M) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("users").Find(ctx, filter)
		if err != nil {
			log.Println("[USER] [ERROR] user list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			log.Println("[USER] [ERROR] user decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// CheckAdmin is the unauthenticated role probe the client uses to classify a
// freshly signed-in identity.
func CheckAdmin(db *mongo.Database) gin.HandlerFunc {
	return roleProbe(db, models.RoleAdmin, "admin")
}

// CheckExecutive mirrors CheckAdmin for the executive role.
func CheckExecutive(db *mongo.Database) gin.HandlerFunc {
	return roleProbe(db, models.RoleExecutive, "executives")
}

func roleProbe(db *mongo.Database, role, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.Param("email"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err != nil && err != mongo.ErrNoDocuments {
			log.Println("[USER] [ERROR] role probe failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{field: err == nil && user.Role == role})
	}
}

// ChangeUserRole updates a user's role; admin only. The audit entry names
// the target and the new role.
func ChangeUserRole(db *mongo.Database, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req ChangeRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Role != models.RoleAdmin && req.Role != models.RoleExecutive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": req.Role}})
		if err != nil {
			log.Println("[USER] [ERROR] role update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matchedCount": res.MatchedCount, "modifiedCount": res.ModifiedCount})

		recorder.Record(middleware.UserEmail(c), models.ActionUserRoleChanged, bson.M{
			"userId":  id.Hex(),
			"newRole": req.Role,
		})
	}
}
