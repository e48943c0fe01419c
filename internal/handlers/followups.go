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

type CreateFollowUpRequest struct {
	LeadID    string     `json:"leadId" binding:"required"`
	LeadName  string     `json:"leadName"`
	LeadEmail string     `json:"leadEmail"`
	Date      *time.Time `json:"date" binding:"required"`
	DueDate   *time.Time `json:"dueDate"`
	Remarks   string     `json:"remarks"`
}

type UpdateFollowUpRequest struct {
	Status  string     `json:"status" binding:"required"`
	DueDate *time.Time `json:"dueDate"`
}

// CreateFollowUp schedules a contact event against one of the caller's
// leads and notifies the caller about the new schedule.
func CreateFollowUp(db *mongo.Database, recorder *activity.Recorder, notifier *alerts.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateFollowUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		caller := middleware.UserEmail(c)
		followUp := models.FollowUp{
			LeadID:         strings.TrimSpace(req.LeadID),
			LeadName:       strings.TrimSpace(req.LeadName),
			LeadEmail:      strings.ToLower(strings.TrimSpace(req.LeadEmail)),
			Date:           *req.Date,
			DueDate:        req.DueDate,
			Remarks:        req.Remarks,
			Status:         models.FollowUpStatusPending,
			ExecutiveEmail: caller,
			CreatedAt:      time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("followup").InsertOne(ctx, followUp)
		if err != nil {
			log.Println("[FOLLOWUP] [ERROR] follow-up insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"insertedId": res.InsertedID})

		recorder.Record(caller, models.ActionFollowUpAdded, bson.M{
			"followUpId": res.InsertedID,
			"leadId":     followUp.LeadID,
		})
		notifier.Notify(caller, models.AlertNewFollowUp,
			newFollowUpMessage(followUp.LeadName, followUp.Date),
			bson.M{"followUpId": res.InsertedID})
	}
}

func newFollowUpMessage(leadName string, date time.Time) string {
	if leadName == "" {
		leadName = "a lead"
	}
	return fmt.Sprintf("A new follow-up has been scheduled for %s on %s.", leadName, date.Format("1/2/2006"))
}

// UpdateFollowUp sets the status and optionally the due date. A due date
// already in the past at write time raises an overdue alert.
func UpdateFollowUp(db *mongo.Database, recorder *activity.Recorder, notifier *alerts.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req UpdateFollowUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !models.ValidFollowUpStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}

		set := bson.M{"status": req.Status}
		if req.DueDate != nil {
			set["dueDate"] = *req.DueDate
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("followup").UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			log.Println("[FOLLOWUP] [ERROR] follow-up update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matchedCount": res.MatchedCount, "modifiedCount": res.ModifiedCount})

		caller := middleware.UserEmail(c)
		recorder.Record(caller, models.ActionFollowUpStatusUpdated, bson.M{
			"followUpId": id.Hex(),
			"newStatus":  req.Status,
		})
		if overdue(req.DueDate, time.Now()) {
			notifier.Notify(caller, models.AlertOverdueFollowUp,
				fmt.Sprintf("Follow-up for lead (%s) is overdue.", id.Hex()),
				bson.M{"followUpId": id.Hex()})
		}
	}
}

// overdue reports whether a supplied due date lies in the past.
func overdue(dueDate *time.Time, now time.Time) bool {
	return dueDate != nil && dueDate.Before(now)
}

// DeleteFollowUp removes a follow-up; admin only, idempotent.
func DeleteFollowUp(db *mongo.Database, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("followup").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("[FOLLOWUP] [ERROR] follow-up delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})

		recorder.Record(middleware.UserEmail(c), models.ActionFollowUpDeleted, bson.M{"followUpId": id.Hex()})
	}
}

// GetMyFollowUps returns the caller's own follow-ups.
func GetMyFollowUps(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := ownEmailParam(c)
		if !ok {
			return
		}
		listFollowUps(c, db, bson.M{"executiveEmail": email})
	}
}

// GetAllFollowUps returns every follow-up; admin only.
func GetAllFollowUps(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		listFollowUps(c, db, bson.M{})
	}
}

func listFollowUps(c *gin.Context, db *mongo.Database, filter bson.M) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("followup").Find(ctx, filter)
	if err != nil {
		log.Println("[FOLLOWUP] [ERROR] follow-up list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer cursor.Close(ctx)

	followUps := make([]models.FollowUp, 0)
	if err := cursor.All(ctx, &followUps); err != nil {
		log.Println("[FOLLOWUP] [ERROR] follow-up decode failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, followUps)
}
