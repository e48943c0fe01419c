package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeadStatusNew       = "New"
	LeadStatusInProcess = "In Process"
	LeadStatusFollowUp  = "Follow-Up"
	LeadStatusClosed    = "Closed"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Lead is a sales prospect owned by the executive who created it.
type Lead struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email            string             `bson:"email" json:"email"`
	Product          string             `bson:"product,omitempty" json:"product,omitempty"`
	Status           string             `bson:"status" json:"status"`
	Priority         string             `bson:"priority" json:"priority"`
	ExecutiveEmail   string             `bson:"executiveEmail" json:"executiveEmail"`
	ExpectedClosure  *time.Time         `bson:"expectedClosureDate,omitempty" json:"expectedClosureDate,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	LastActivityDate *time.Time         `bson:"lastActivityDate,omitempty" json:"lastActivityDate,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

func ValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusInProcess, LeadStatusFollowUp, LeadStatusClosed:
		return true
	}
	return false
}

func ValidLeadPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
