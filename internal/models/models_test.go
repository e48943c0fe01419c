package models

import "testing"

func TestValidLeadStatus(t *testing.T) {
	for _, status := range []string{LeadStatusNew, LeadStatusInProcess, LeadStatusFollowUp, LeadStatusClosed} {
		if !ValidLeadStatus(status) {
			t.Fatalf("expected %q to be a valid lead status", status)
		}
	}
	for _, status := range []string{"", "new", "Open", "Done"} {
		if ValidLeadStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestValidLeadPriority(t *testing.T) {
	if !ValidLeadPriority(PriorityHigh) {
		t.Fatal("expected High to be a valid lead priority")
	}
	// Urgent belongs to tickets only.
	if ValidLeadPriority(PriorityUrgent) {
		t.Fatal("expected Urgent to be rejected for leads")
	}
}

func TestValidTicketStatus(t *testing.T) {
	for _, status := range []string{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed} {
		if !ValidTicketStatus(status) {
			t.Fatalf("expected %q to be a valid ticket status", status)
		}
	}
	if ValidTicketStatus("Overdue") {
		t.Fatal("expected Overdue to be rejected")
	}
}

func TestValidTicketPriority(t *testing.T) {
	if !ValidTicketPriority(PriorityUrgent) {
		t.Fatal("expected Urgent to be a valid ticket priority")
	}
	if ValidTicketPriority("Critical") {
		t.Fatal("expected Critical to be rejected")
	}
}

func TestValidFollowUpStatus(t *testing.T) {
	for _, status := range []string{FollowUpStatusPending, FollowUpStatusCompleted, FollowUpStatusCancelled} {
		if !ValidFollowUpStatus(status) {
			t.Fatalf("expected %q to be a valid follow-up status", status)
		}
	}
	if ValidFollowUpStatus("pending") {
		t.Fatal("expected lowercase status to be rejected")
	}
}
