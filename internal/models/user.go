package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles used by the authorization gates. Any other stored value (or a
// missing user) resolves to RoleUnknown, which no gate accepts.
const (
	RoleAdmin     = "admin"
	RoleExecutive = "executives"
	RoleUnknown   = "unknown"
)

// User is the identity record. Accounts are created on first sign-in
// completion or by explicit insertion; they are never hard-deleted.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL     string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role         string             `bson:"role" json:"role"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
