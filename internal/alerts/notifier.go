package alerts

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"crm-backend/internal/mailer"
	"crm-backend/internal/models"
)

// Notifier appends per-user alerts and optionally mirrors them to email.
type Notifier struct {
	col  *mongo.Collection
	mail *mailer.Mailer
}

// NewNotifier returns a Notifier; mail may be nil to disable email delivery.
func NewNotifier(db *mongo.Database, mail *mailer.Mailer) *Notifier {
	return &Notifier{col: db.Collection("alerts"), mail: mail}
}

// Notify appends one unread alert asynchronously. Like the audit recorder it
// runs after the response has been sent and swallows failures into the
// server log, so a dropped alert never fails the primary write.
func (n *Notifier) Notify(userEmail, alertType, message string, details bson.M) {
	if n == nil {
		return
	}
	alert := models.Alert{
		Timestamp: time.Now(),
		UserEmail: userEmail,
		Type:      alertType,
		Message:   message,
		Details:   details,
		Read:      false,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := n.col.InsertOne(ctx, alert); err != nil {
			log.Println("[ALERT] [ERROR] alert write failed:", err)
			return
		}
		if err := n.mail.Send(ctx, userEmail, alertType, message); err != nil {
			log.Println("[ALERT] [ERROR] alert email failed:", err)
		}
	}()
}

// ListUnread returns the unread alerts for one recipient, newest first.
func (n *Notifier) ListUnread(ctx context.Context, userEmail string) ([]models.Alert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := n.col.Find(ctx, bson.M{"userEmail": userEmail, "read": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	unread := make([]models.Alert, 0)
	if err := cursor.All(ctx, &unread); err != nil {
		return nil, err
	}
	return unread, nil
}

// MarkRead flips one alert's read flag. Marking an already-read alert
// matches the document but modifies nothing, which callers report as a
// non-error outcome.
func (n *Notifier) MarkRead(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	return n.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
}
