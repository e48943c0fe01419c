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

type CreateTicketRequest struct {
	Subject       string `json:"subject" binding:"required"`
	CustomerEmail string `json:"customerEmail"`
	Category      string `json:"category" binding:"required"`
	Priority      string `json:"priority" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TicketResponseRequest struct {
	Response string `json:"response" binding:"required"`
}

// CreateTicket raises a support ticket owned by the calling executive.
func CreateTicket(db *mongo.Database, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !models.ValidTicketPriority(req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}

		caller := middleware.UserEmail(c)
		ticket := models.Ticket{
			Subject:        strings.TrimSpace(req.Subject),
			CustomerEmail:  strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
			Category:       strings.TrimSpace(req.Category),
			Priority:       req.Priority,
			Message:        req.Message,
			Status:         models.TicketStatusOpen,
			ExecutiveEmail: caller,
			CreatedAt:      time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("ticket").InsertOne(ctx, ticket)
		if err != nil {
			log.Println("[TICKET] [ERROR] ticket insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"insertedId": res.InsertedID})

		recorder.Record(caller, models.ActionTicketAdded, bson.M{
			"ticketId": res.InsertedID,
			"subject":  ticket.Subject,
		})
	}
}

// UpdateTicketStatus changes a ticket's status; admin only. Unlike the other
// updates this endpoint treats zero modified documents as 404, matching the
// admin UI's expectation that the target exists and actually changes.
func UpdateTicketStatus(db *mongo.Database, recorder *activity.Recorder, notifier *alerts.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req UpdateTicketStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !models.ValidTicketStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("ticket").UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": req.Status}})
		if err != nil {
			log.Println("[TICKET] [ERROR] ticket status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.ModifiedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found or already has this status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated successfully", "modifiedCount": res.ModifiedCount})

		caller := middleware.UserEmail(c)
		recorder.Record(caller, models.ActionTicketStatusUpdated, bson.M{
			"ticketId":  id.Hex(),
			"newStatus": req.Status,
		})
		notifier.Notify(caller, models.AlertTicketStatusChange,
			fmt.Sprintf("Ticket (%s) status changed to %s.", id.Hex(), req.Status),
			bson.M{"ticketId": id.Hex(), "newStatus": req.Status})
	}
}

// AddTicketResponse appends one response to the ticket's thread; admin only.
// The responder is the verified identity, not a body field.
func AddTicketResponse(db *mongo.Database, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req TicketResponseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		caller := middleware.UserEmail(c)
		response := models.TicketResponse{
			Response:    req.Response,
			RespondedBy: caller,
			RespondedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("ticket").UpdateByID(ctx, id, bson.M{"$push": bson.M{"responses": response}})
		if err != nil {
			log.Println("[TICKET] [ERROR] ticket response failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.ModifiedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "response added successfully"})

		recorder.Record(caller, models.ActionTicketResponseAdded, bson.M{
			"ticketId": id.Hex(),
			"response": req.Response,
		})
	}
}

// DeleteTicket removes a ticket; admin only, idempotent.
func DeleteTicket(db *mongo.Database, recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("ticket").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("[TICKET] [ERROR] ticket delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})

		recorder.Record(middleware.UserEmail(c), models.ActionTicketDeleted, bson.M{"ticketId": id.Hex()})
	}
}

// GetAllTickets returns every ticket; admin only.
func GetAllTickets(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		listTickets(c, db, bson.M{})
	}
}

// GetMyTickets returns the tickets raised by the :email executive,
// ownership-enforced like the other "my X" reads.
func GetMyTickets(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := ownEmailParam(c)
		if !ok {
			return
		}
		listTickets(c, db, bson.M{"executiveEmail": email})
	}
}

func listTickets(c *gin.Context, db *mongo.Database, filter bson.M) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("ticket").Find(ctx, filter)
	if err != nil {
		log.Println("[TICKET] [ERROR] ticket list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer cursor.Close(ctx)

	tickets := make([]models.Ticket, 0)
	if err := cursor.All(ctx, &tickets); err != nil {
		log.Println("[TICKET] [ERROR] ticket decode failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, tickets)
}
