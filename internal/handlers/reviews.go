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

	"crm-backend/internal/models"
)

type CreateReviewRequest struct {
	Title       string `json:"title" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Description string `json:"description"`
	Recommend   string `json:"recommend"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhotoURL    string `json:"photoURL"`
}

// CreateReview stores a public testimonial; no authentication required.
func CreateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		review := models.Review{
			Title:       strings.TrimSpace(req.Title),
			Rating:      req.Rating,
			Description: req.Description,
			Recommend:   req.Recommend,
			Email:       strings.ToLower(strings.TrimSpace(req.Email)),
			Name:        strings.TrimSpace(req.Name),
			PhotoURL:    strings.TrimSpace(req.PhotoURL),
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("reviews").InsertOne(ctx, review)
		if err != nil {
			log.Println("[REVIEW] [ERROR] review insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"insertedId": res.InsertedID})
	}
}

// GetReviews lists every review; public.
func GetReviews(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("reviews").Find(ctx, bson.M{})
		if err != nil {
			log.Println("[REVIEW] [ERROR] review list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		reviews := make([]models.Review, 0)
		if err := cursor.All(ctx, &reviews); err != nil {
			log.Println("[REVIEW] [ERROR] review decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}
