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
	"go.mongodb.org/mongo-driver/mongo/options"

	"crm-backend/internal/models"
)

type CreateTaskRequest struct {
	Email       string `json:"email" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Task board handlers. The board predates the audit/alert pipeline and
// stays outside it: task writes carry no audit entries.

func CreateTask(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		task := models.Task{
			Email:       strings.ToLower(strings.TrimSpace(req.Email)),
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Deadline:    req.Deadline,
			Status:      req.Status,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("task").InsertOne(ctx, task)
		if err != nil {
			log.Println("[TASK] [ERROR] task insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"insertedId": res.InsertedID})
	}
}

func GetTasks(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		listTasks(c, db, bson.M{})
	}
}

func GetMyTasks(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.Param("email"))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		listTasks(c, db, bson.M{"email": email})
	}
}

func GetTask(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var task models.Task
		if err := db.Collection("task").FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
				return
			}
			log.Println("[TASK] [ERROR] task lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, task)
	}
}

// ReplaceTask upserts the editable fields of one task.
func ReplaceTask(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{"$set": bson.M{
			"email":       strings.ToLower(strings.TrimSpace(req.Email)),
			"title":       strings.TrimSpace(req.Title),
			"description": req.Description,
			"deadline":    req.Deadline,
		}}

		res, err := db.Collection("task").UpdateByID(ctx, id, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Println("[TASK] [ERROR] task update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matchedCount": res.MatchedCount, "modifiedCount": res.ModifiedCount})
	}
}

func UpdateTaskStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req UpdateTaskStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("task").UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": req.Status}})
		if err != nil {
			log.Println("[TASK] [ERROR] task status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matchedCount": res.MatchedCount, "modifiedCount": res.ModifiedCount})
	}
}

func DeleteTask(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("task").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("[TASK] [ERROR] task delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})
	}
}

func listTasks(c *gin.Context, db *mongo.Database, filter bson.M) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("task").Find(ctx, filter)
	if err != nil {
		log.Println("[TASK] [ERROR] task list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer cursor.Close(ctx)

	tasks := make([]models.Task, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		log.Println("[TASK] [ERROR] task decode failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}
