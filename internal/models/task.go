package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Task is a simple per-user to-do item on the dashboard task board.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Deadline    string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
}
