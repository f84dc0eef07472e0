package dto

import (
	"time"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

// CreateEventRequest represents request to create a new event. Organizer is
// only honored on the admin create path; organizer-created events always
// carry the creator's own display name.
type CreateEventRequest struct {
	Name                 string     `json:"name" binding:"required,min=2,max=255"`
	Organizer            string     `json:"organizer" binding:"omitempty,max=255"`
	Description          string     `json:"description" binding:"omitempty,max=5000"`
	Date                 time.Time  `json:"date" binding:"required"`
	Venue                string     `json:"venue" binding:"required,max=255"`
	Status               string     `json:"status" binding:"omitempty,oneof=draft published cancelled completed"`
	Price                float64    `json:"price" binding:"omitempty,min=0"`
	Capacity             *int       `json:"capacity" binding:"omitempty,min=1"`
	RegistrationDeadline *time.Time `json:"registration_deadline" binding:"omitempty"`
}

// UpdateEventRequest represents request to update an event. Only set fields
// are applied.
type UpdateEventRequest struct {
	Name                 *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Description          *string    `json:"description" binding:"omitempty,max=5000"`
	Date                 *time.Time `json:"date" binding:"omitempty"`
	Venue                *string    `json:"venue" binding:"omitempty,max=255"`
	Status               *string    `json:"status" binding:"omitempty,oneof=draft published cancelled completed"`
	Price                *float64   `json:"price" binding:"omitempty,min=0"`
	Capacity             *int       `json:"capacity" binding:"omitempty,min=1"`
	RegistrationDeadline *time.Time `json:"registration_deadline" binding:"omitempty"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateEventRequest) Validate() (bool, string) {
	if r.Name == nil && r.Description == nil && r.Date == nil && r.Venue == nil &&
		r.Status == nil && r.Price == nil && r.Capacity == nil && r.RegistrationDeadline == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// ListEventsQuery represents query parameters for listing events
type ListEventsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=draft published cancelled completed"`
	Search string `form:"search" binding:"omitempty,max=255"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListEventsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

// ListEventsResponse represents a paginated list of events
type ListEventsResponse struct {
	Events     []*domain.Event `json:"events"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
