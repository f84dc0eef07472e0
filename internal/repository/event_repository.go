package repository

import (
	"context"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

// EventFilter narrows event listings
type EventFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// List retrieves events matching the filter with pagination
	List(ctx context.Context, filter EventFilter) ([]*domain.Event, int, error)
	// Update updates an event
	Update(ctx context.Context, event *domain.Event) error
	// Delete deletes an event
	Delete(ctx context.Context, id string) error
	// CountRegistrations counts registrations for an event
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	// Analytics aggregates registration activity for an event
	Analytics(ctx context.Context, eventID string) (*domain.EventAnalytics, error)
	// Count counts all events
	Count(ctx context.Context) (int, error)
}
