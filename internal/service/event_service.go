package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/dto"
	"github.com/Cha17/gowra-sub000/internal/repository"
)

// EventService errors
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// EventService defines the interface for event management operations
type EventService interface {
	// Create creates a new event owned by the given organizer
	Create(ctx context.Context, organizer *domain.User, req *dto.CreateEventRequest) (*domain.Event, error)
	// CreateAsAdmin creates an event on behalf of a named organizer without
	// linking it to a user account
	CreateAsAdmin(ctx context.Context, organizerName string, req *dto.CreateEventRequest) (*domain.Event, error)
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// List retrieves events matching the query
	List(ctx context.Context, query *dto.ListEventsQuery) (*dto.ListEventsResponse, error)
	// Update applies a partial update to an event
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error)
	// Delete deletes an event
	Delete(ctx context.Context, id string) error
	// Publish transitions an event to published and stamps published_at
	Publish(ctx context.Context, id string) (*domain.Event, error)
	// Analytics aggregates registration activity for an event
	Analytics(ctx context.Context, id string) (*domain.EventAnalytics, error)
}

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

// Create creates a new event. Both the legacy organizer display name and the
// organizer_id foreign key are stored.
func (s *eventService) Create(ctx context.Context, organizer *domain.User, req *dto.CreateEventRequest) (*domain.Event, error) {
	displayName := organizer.Name
	if displayName == "" {
		displayName = organizer.Email
	}
	return s.create(ctx, displayName, &organizer.ID, req)
}

// CreateAsAdmin creates an event on behalf of a named organizer without
// linking it to a user account. Ownership checks on such events fall back to
// the stored display name.
func (s *eventService) CreateAsAdmin(ctx context.Context, organizerName string, req *dto.CreateEventRequest) (*domain.Event, error) {
	if organizerName == "" {
		return nil, ErrInvalidRequest
	}
	return s.create(ctx, organizerName, nil, req)
}

func (s *eventService) create(ctx context.Context, organizerName string, organizerID *string, req *dto.CreateEventRequest) (*domain.Event, error) {
	status := req.Status
	if status == "" {
		status = domain.EventStatusDraft
	}

	now := time.Now()
	event := &domain.Event{
		ID:                   uuid.New().String(),
		Name:                 req.Name,
		Description:          req.Description,
		Organizer:            organizerName,
		OrganizerID:          organizerID,
		Date:                 req.Date,
		Venue:                req.Venue,
		Status:               status,
		Price:                req.Price,
		Capacity:             req.Capacity,
		RegistrationDeadline: req.RegistrationDeadline,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if event.IsPublished() {
		event.PublishedAt = &now
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetByID retrieves an event by ID
func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// List retrieves events matching the query with pagination
func (s *eventService) List(ctx context.Context, query *dto.ListEventsQuery) (*dto.ListEventsResponse, error) {
	query.SetDefaults()

	events, total, err := s.eventRepo.List(ctx, repository.EventFilter{
		Status: query.Status,
		Search: query.Search,
		Page:   query.Page,
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ListEventsResponse{
		Events:     events,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

// Update applies a partial update. Any status may be set to any other by an
// authorized actor; the transition is a field update, not a state machine.
func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Status != nil {
		if !domain.ValidEventStatus(*req.Status) {
			return nil, ErrInvalidRequest
		}
		if *req.Status == domain.EventStatusPublished && event.PublishedAt == nil {
			now := time.Now()
			event.PublishedAt = &now
		}
		event.Status = *req.Status
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = req.RegistrationDeadline
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Delete deletes an event
func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// Publish transitions an event to published and stamps published_at
func (s *eventService) Publish(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if !event.IsPublished() {
		now := time.Now()
		event.Status = domain.EventStatusPublished
		event.PublishedAt = &now
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

// Analytics aggregates registration activity. Capacity utilization is
// registrations over capacity as a percentage, zero when no capacity is set.
func (s *eventService) Analytics(ctx context.Context, id string) (*domain.EventAnalytics, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	analytics, err := s.eventRepo.Analytics(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.Capacity != nil && *event.Capacity > 0 {
		analytics.CapacityUtilization = math.Round(float64(analytics.TotalRegistrations)/float64(*event.Capacity)*10000) / 100
	}
	return analytics, nil
}
