package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

// EnsureOwnerIndexes backs the "my X" reads and the per-executive
// aggregations on leads, follow-ups and tickets.
func EnsureOwnerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, name := range []string{"leads", "followup", "ticket"} {
		ownerIndex := mongo.IndexModel{
			Keys:    bson.D{{Key: "executiveEmail", Value: 1}},
			Options: options.Index().SetName("executiveEmail_index"),
		}
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, ownerIndex); err != nil {
			log.Printf("EnsureOwnerIndexes: %s owner index error: %v", name, err)
			return err
		}
	}
	return nil
}

func EnsureAlertIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	unreadIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userEmail", Value: 1},
			{Key: "read", Value: 1},
		},
		Options: options.Index().SetName("userEmail_read_index"),
	}

	_, err := db.Collection("alerts").Indexes().CreateOne(ctx, unreadIndex)
	if err != nil {
		log.Println("EnsureAlertIndexes: unread index error:", err)
		return err
	}
	return nil
}

func EnsureActivityLogIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	timestampIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("timestamp_desc"),
	}

	_, err := db.Collection("activityLogs").Indexes().CreateOne(ctx, timestampIndex)
	if err != nil {
		log.Println("EnsureActivityLogIndexes: timestamp index error:", err)
		return err
	}
	return nil
}
