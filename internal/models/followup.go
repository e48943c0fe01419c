package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FollowUpStatusPending   = "Pending"
	FollowUpStatusCompleted = "Completed"
	FollowUpStatusCancelled = "Cancelled"
)

// FollowUp is a scheduled contact event tied to a lead. Lead name and email
// are denormalized snapshots taken at creation time.
type FollowUp struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeadID         string             `bson:"leadId" json:"leadId"`
	LeadName       string             `bson:"leadName,omitempty" json:"leadName,omitempty"`
	LeadEmail      string             `bson:"leadEmail,omitempty" json:"leadEmail,omitempty"`
	Date           time.Time          `bson:"date" json:"date"`
	DueDate        *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Remarks        string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Status         string             `bson:"status" json:"status"`
	ExecutiveEmail string             `bson:"executiveEmail" json:"executiveEmail"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

func ValidFollowUpStatus(status string) bool {
	switch status {
	case FollowUpStatusPending, FollowUpStatusCompleted, FollowUpStatusCancelled:
		return true
	}
	return false
}
