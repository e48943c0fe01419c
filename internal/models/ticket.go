package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TicketStatusOpen       = "Open"
	TicketStatusInProgress = "In Progress"
	TicketStatusResolved   = "Resolved"
	TicketStatusClosed     = "Closed"
)

// TicketResponse is one entry in a ticket's ordered response thread.
type TicketResponse struct {
	Response    string    `bson:"response" json:"response"`
	RespondedBy string    `bson:"respondedBy" json:"respondedBy"`
	RespondedAt time.Time `bson:"respondedAt" json:"respondedAt"`
}

// Ticket is a support request raised by an executive and worked by admins.
type Ticket struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject        string             `bson:"subject" json:"subject"`
	CustomerEmail  string             `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	Category       string             `bson:"category" json:"category"`
	Priority       string             `bson:"priority" json:"priority"`
	Message        string             `bson:"message" json:"message"`
	Status         string             `bson:"status" json:"status"`
	ExecutiveEmail string             `bson:"executiveEmail" json:"executiveEmail"`
	Responses      []TicketResponse   `bson:"responses,omitempty" json:"responses,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

func ValidTicketStatus(status string) bool {
	switch status {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

func ValidTicketPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
