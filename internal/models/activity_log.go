package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action labels. Every successful mutation records exactly one of
// these against the acting user.
const (
	ActionUserLogin             = "User Login"
	ActionUserLogout            = "User Logout"
	ActionLeadAdded             = "Lead Added"
	ActionLeadUpdated           = "Lead Updated"
	ActionLeadDeleted           = "Lead Deleted"
	ActionFollowUpAdded         = "Follow-up Added"
	ActionFollowUpStatusUpdated = "Follow-up Status Updated"
	ActionFollowUpDeleted       = "Follow-up Deleted"
	ActionTicketAdded           = "Ticket Added"
	ActionTicketStatusUpdated   = "Ticket Status Updated"
	ActionTicketResponseAdded   = "Ticket Response Added"
	ActionTicketDeleted         = "Ticket Deleted"
	ActionUserRoleChanged       = "User Role Changed"
)

// ActivityLogEntry is an append-only audit record. Entries are never
// mutated or deleted through the API.
type ActivityLogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Action    string             `bson:"action" json:"action"`
	Details   bson.M             `bson:"details,omitempty" json:"details,omitempty"`
}
