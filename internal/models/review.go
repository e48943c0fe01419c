package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a public testimonial; it is never mutated or deleted.
type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Rating      int                `bson:"rating" json:"rating"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Recommend   string             `bson:"recommend,omitempty" json:"recommend,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
