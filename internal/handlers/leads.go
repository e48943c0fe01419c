package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"crm-backend/internal/activity"
	"crm-backend/internal/alerts"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
)

type CreateLeadRequest struct {
	Name            string     `json:"name" binding:"required"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email" binding:"required"`
	Product         string     `json:"product"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority" binding:"required"`
	ExpectedClosure *time.Time `json:"expectedClosureDate"`
	Notes           string     `json:"notes"`
}

type UpdateLeadRequest struct {
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
}

// CreateLead inserts a lead owned by the calling executive. The owner is
// always the verified identity, never a body field.
func CreateLead(db *mongo.Database, recorder *activity.Recorder, notifier *alerts.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status := req.Status
		if status == "" {
			status = models.LeadStatusNew
		}
		if !models.ValidLeadStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		if !models.ValidLeadPriority(req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}

		caller := middleware.UserEmail(c)
		lead := models.Lead{
			Name:            strings.TrimSpace(req.Name),
			Phone:           strings.TrimSpace(req.Phone),
			Email:           strings.ToLower(strings.TrimSpace(req.Email)),
			Product:         strings.TrimSpace(req.Product),
			Status:          status,
			Priority:        req.Priority,
			ExecutiveEmail:  caller,
			ExpectedClosure: req.ExpectedClosure,
			Notes:           req.Notes,
			CreatedAt:       time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("leads").InsertOne(ctx, lead)
		if err != nil {
			log.Println("[LEAD] [ERROR] lead insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[LEAD] [INFO] lead created:", lead.Name)
		c.JSON(http.StatusCreated, gin.H{"insertedId": res.InsertedID})

		recorder.Record(caller, models.ActionLeadAdded, bson.M{
			"leadId":   res.InsertedID,
			"leadName": lead.Name,
			"priority": lead.Priority,
		})
		if lead.Priority == models.PriorityHigh {
			notifier.Notify(caller, models.AlertHighPriorityLead,
				fmt.Sprintf("A new high priority lead (%s) has been added.", lead.Name),
				bson.M{"leadId": res.InsertedID})
		}
	}
}

// UpdateLead applies a partial status/priority/lastActivityDate update. A
// target that doesn't exist or already holds the value reports zero modified
// documents; that is an informational outcome, not an error.
func UpdateLead(db *mongo.Database, recorder *activity.Recorder, notifier *alerts.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req UpdateLeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{}
		if req.Status != "" {
			if !models.ValidLeadStatus(req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
				return
			}
			set["status"] = req.Status
		}
		if req.Priority != "" {
			if !models.ValidLeadPriority(req.Priority) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
				return
			}
			set["priority"] = req.Priority
		}
		if req.LastActivityDate != nil {
			set["lastActivityDate"] = *req.LastActivityDate
		}
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("leads").UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			log.Println("[LEAD] [ERROR] lead update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matchedCount": res.MatchedCount, "modifiedCount": res.ModifiedCount})

		caller := middleware.UserEmail(c)
		recorder.Record(caller, models.ActionLeadUpdated, bson.M{
			"leadId":      id.Hex(),
			"newStatus":   req.Status,
			"newPriority": req.Priority,
		})
		if req.Priority == models.PriorityHigh {
			notifier.Notify(caller, models.AlertHighPriorityLeadUpdate,
				fmt.Sprintf("Lead (%s) status updated to High Priority.", id.Hex()),
				bson.M{"leadId": id.Hex()})
		}
	}
}

// DeleteLead removes a lead; admin only. Deleting an id that is already
// gone reports deletedCount 0, not an error.
func DeleteLead(db *mongo.Database, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("leads").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("[LEAD] [ERROR] lead delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})

		recorder.Record(middleware.UserEmail(c), models.ActionLeadDeleted, bson.M{"leadId": id.Hex()})
	}
}

// GetMyLeads returns the leads owned by the :email executive. The path email
// must match the caller's identity (admins excepted).
func GetMyLeads(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := ownEmailParam(c)
		if !ok {
			return
		}
		listLeads(c, db, bson.M{"executiveEmail": email})
	}
}

// GetAllLeads returns every lead; admin only.
func GetAllLeads(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		listLeads(c, db, bson.M{})
	}
}

func listLeads(c *gin.Context, db *mongo.Database, filter bson.M) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("leads").Find(ctx, filter)
	if err != nil {
		log.Println("[LEAD] [ERROR] lead list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer cursor.Close(ctx)

	leads := make([]models.Lead, 0)
	if err := cursor.All(ctx, &leads); err != nil {
		log.Println("[LEAD] [ERROR] lead decode failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, leads)
}
