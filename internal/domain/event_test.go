package domain

import (
	"testing"
	"time"
)

func TestEvent_RegistrationClosed(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		want     bool
	}{
		{"no deadline", nil, false},
		{"future deadline", &future, false},
		{"past deadline", &past, true},
		{"deadline is now", &now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{RegistrationDeadline: tt.deadline}
			if got := e.RegistrationClosed(now); got != tt.want {
				t.Errorf("RegistrationClosed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvent_HasOccurred(t *testing.T) {
	now := time.Now()

	e := &Event{Date: now.Add(time.Hour)}
	if e.HasOccurred(now) {
		t.Error("future event should not have occurred")
	}

	e.Date = now.Add(-time.Hour)
	if !e.HasOccurred(now) {
		t.Error("past event should have occurred")
	}

	e.Date = now
	if !e.HasOccurred(now) {
		t.Error("event dated exactly now counts as occurred")
	}
}

func TestEvent_OwnedBy(t *testing.T) {
	owner := &User{ID: "user-1", Name: "Asha Rao", Email: "asha@example.com", Role: RoleOrganizer}
	other := &User{ID: "user-2", Name: "Ben Okafor", Email: "ben@example.com", Role: RoleOrganizer}
	ownerID := "user-1"

	tests := []struct {
		name  string
		event Event
		user  *User
		want  bool
	}{
		{"organizer_id match", Event{OrganizerID: &ownerID}, owner, true},
		{"organizer_id mismatch", Event{OrganizerID: &ownerID}, other, false},
		{"legacy name match", Event{Organizer: "Asha Rao"}, owner, true},
		{"legacy email match", Event{Organizer: "asha@example.com"}, owner, true},
		{"no match", Event{Organizer: "Someone Else"}, owner, false},
		{"empty legacy field", Event{}, owner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.OwnedBy(tt.user); got != tt.want {
				t.Errorf("OwnedBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistration_Cancellable(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	paid := &Registration{PaymentStatus: PaymentStatusPaid}
	if paid.Cancellable(future, now) {
		t.Error("paid registration must not be cancellable even before the event")
	}

	pending := &Registration{PaymentStatus: PaymentStatusPending}
	if !pending.Cancellable(future, now) {
		t.Error("pending registration before the event should be cancellable")
	}
	if pending.Cancellable(past, now) {
		t.Error("registration for a past event should not be cancellable")
	}
}

func TestValidEventStatus(t *testing.T) {
	for _, s := range []string{EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted} {
		if !ValidEventStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidEventStatus("archived") {
		t.Error("expected 'archived' to be invalid")
	}
}
