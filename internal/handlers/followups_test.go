package handlers

import (
	"testing"
	"time"
)

func TestOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if !overdue(&past, now) {
		t.Fatal("expected past due date to be overdue")
	}
	if overdue(&future, now) {
		t.Fatal("expected future due date not to be overdue")
	}
	if overdue(nil, now) {
		t.Fatal("expected absent due date not to be overdue")
	}
}

func TestNewFollowUpMessage(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	got := newFollowUpMessage("Acme Corp", date)
	want := "A new follow-up has been scheduled for Acme Corp on 6/15/2025."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNewFollowUpMessageFallsBackToGenericLead(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	got := newFollowUpMessage("", date)
	want := "A new follow-up has been scheduled for a lead on 6/15/2025."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
