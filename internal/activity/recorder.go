package activity

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"crm-backend/internal/models"
)

// Recorder appends audit entries to the activityLogs collection.
type Recorder struct {
	col *mongo.Collection
}

func NewRecorder(db *mongo.Database) *Recorder {
	return &Recorder{col: db.Collection("activityLogs")}
}

// Record appends one audit entry asynchronously. It is called after the
// handler's response has been sent; the write carries its own timeout and a
// failure is logged server-side only — it never reaches the client.
func (r *Recorder) Record(userEmail, action string, details bson.M) {
	if r == nil {
		return
	}
	entry := models.ActivityLogEntry{
		Timestamp: time.Now(),
		UserEmail: userEmail,
		Action:    action,
		Details:   details,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := r.col.InsertOne(ctx, entry); err != nil {
			log.Println("[ACTIVITY] [ERROR] audit write failed:", err)
		}
	}()
}

// List returns entries newest-first, optionally narrowed by exact action,
// exact actor, or a free-text match. The filters are a read-side convenience
// for the admin dashboard and carry no authorization weight.
func (r *Recorder) List(ctx context.Context, action, userEmail, search string) ([]models.ActivityLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.ActivityLogEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	if action == "" && userEmail == "" && search == "" {
		return entries, nil
	}

	filtered := make([]models.ActivityLogEntry, 0, len(entries))
	for _, entry := range entries {
		if MatchEntry(entry, action, userEmail, search) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// MatchEntry reports whether an entry passes the list filters. Empty filter
// values match everything.
func MatchEntry(entry models.ActivityLogEntry, action, userEmail, search string) bool {
	if action != "" && entry.Action != action {
		return false
	}
	if userEmail != "" && entry.UserEmail != userEmail {
		return false
	}
	if search == "" {
		return true
	}

	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(entry.Action), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.UserEmail), needle) {
		return true
	}
	for _, value := range entry.Details {
		if text, ok := value.(string); ok && strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}
