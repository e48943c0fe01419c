package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert types written by the notifier's business rules.
const (
	AlertHighPriorityLead       = "High Priority Lead"
	AlertHighPriorityLeadUpdate = "High Priority Lead Update"
	AlertNewFollowUp            = "New Follow-up"
	AlertOverdueFollowUp        = "Overdue Follow-up"
	AlertTicketStatusChange     = "Ticket Status Change"
)

// Alert is a per-recipient notification. The only mutation the API allows
// is flipping Read to true.
type Alert struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Type      string             `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	Details   bson.M             `bson:"details,omitempty" json:"details,omitempty"`
	Read      bool               `bson:"read" json:"read"`
}
