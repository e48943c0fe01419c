package activity

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"crm-backend/internal/models"
)

func sampleEntry() models.ActivityLogEntry {
	return models.ActivityLogEntry{
		Timestamp: time.Now(),
		UserEmail: "e1@x.com",
		Action:    models.ActionLeadAdded,
		Details:   bson.M{"leadName": "Acme Corp", "priority": "High"},
	}
}

func TestMatchEntryNoFilters(t *testing.T) {
	if !MatchEntry(sampleEntry(), "", "", "") {
		t.Fatal("expected empty filters to match everything")
	}
}

func TestMatchEntryExactAction(t *testing.T) {
	entry := sampleEntry()
	if !MatchEntry(entry, models.ActionLeadAdded, "", "") {
		t.Fatal("expected exact action to match")
	}
	if MatchEntry(entry, models.ActionLeadDeleted, "", "") {
		t.Fatal("expected different action to be filtered out")
	}
}

func TestMatchEntryExactActor(t *testing.T) {
	entry := sampleEntry()
	if !MatchEntry(entry, "", "e1@x.com", "") {
		t.Fatal("expected exact actor to match")
	}
	if MatchEntry(entry, "", "e2@x.com", "") {
		t.Fatal("expected different actor to be filtered out")
	}
}

func TestMatchEntryFreeText(t *testing.T) {
	entry := sampleEntry()

	// Matches across action, actor and string detail values, case-insensitively.
	for _, needle := range []string{"lead added", "E1@X.COM", "acme"} {
		if !MatchEntry(entry, "", "", needle) {
			t.Fatalf("expected free-text %q to match", needle)
		}
	}
	if MatchEntry(entry, "", "", "ticket") {
		t.Fatal("expected unrelated free text to be filtered out")
	}
}

func TestMatchEntryCombinedFilters(t *testing.T) {
	entry := sampleEntry()
	if !MatchEntry(entry, models.ActionLeadAdded, "e1@x.com", "acme") {
		t.Fatal("expected all filters together to match")
	}
	if MatchEntry(entry, models.ActionLeadAdded, "e2@x.com", "acme") {
		t.Fatal("expected one failing filter to reject the entry")
	}
}
