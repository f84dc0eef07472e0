package domain

import "time"

// Event represents an event open for registration
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Organizer display name kept alongside the foreign key for events
	// imported before organizer accounts existed.
	Organizer   string  `json:"organizer"`
	OrganizerID *string `json:"organizer_id,omitempty"`

	Date                 time.Time  `json:"date"`
	Venue                string     `json:"venue"`
	Status               string     `json:"status"` // draft, published, cancelled, completed
	Price                float64    `json:"price"`
	Capacity             *int       `json:"capacity,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventStatus constants
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// ValidEventStatus reports whether s is a known event status
func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// IsPublished reports whether the event is open to the public
func (e *Event) IsPublished() bool {
	return e.Status == EventStatusPublished
}

// HasOccurred reports whether the event date has passed
func (e *Event) HasOccurred(now time.Time) bool {
	return !e.Date.After(now)
}

// RegistrationClosed reports whether the registration deadline has passed.
// Events without a deadline accept registrations until the event date.
func (e *Event) RegistrationClosed(now time.Time) bool {
	return e.RegistrationDeadline != nil && !e.RegistrationDeadline.After(now)
}

// OwnedBy reports whether the user owns this event, matching the organizer
// foreign key first and falling back to the legacy display-name field.
func (e *Event) OwnedBy(u *User) bool {
	if e.OrganizerID != nil && *e.OrganizerID == u.ID {
		return true
	}
	return e.Organizer != "" && (e.Organizer == u.Name || e.Organizer == u.Email)
}
