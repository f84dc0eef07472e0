package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/dto"
	"github.com/Cha17/gowra-sub000/internal/repository"
	"github.com/Cha17/gowra-sub000/pkg/telemetry"
)

// RegistrationService errors
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrEventNotPublished    = errors.New("event is not open for registration")
	ErrEventOccurred        = errors.New("event has already occurred")
	ErrRegistrationClosed   = errors.New("registration deadline has passed")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrCapacityExceeded     = errors.New("not enough spots left for this event")
	ErrInvalidQuantity      = errors.New("ticket quantity must be between 1 and 10")
	ErrNotRegistrationOwner = errors.New("registration belongs to another user")
	ErrCancelPaid           = errors.New("paid registrations cannot be cancelled")
)

// RegistrationService defines the interface for event registration operations
type RegistrationService interface {
	// Register creates a registration for a user on an event, enforcing the
	// publication, timing, duplicate and capacity invariants
	Register(ctx context.Context, userID string, req *dto.CreateRegistrationRequest) (*dto.RegistrationWithEvent, error)
	// Cancel deletes a registration; owner only, unpaid only, before the event
	Cancel(ctx context.Context, userID, registrationID string) error
	// ListMine retrieves a user's registrations
	ListMine(ctx context.Context, userID string) ([]*domain.Registration, error)
}

// registrationService implements RegistrationService
type registrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
	createdCounter   *telemetry.Counter
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(registrationRepo repository.RegistrationRepository, eventRepo repository.EventRepository) RegistrationService {
	// nil counter on error: Add is a no-op then
	createdCounter, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "registrations_created_total",
		Description: "Registrations successfully created",
		Unit:        "1",
	})
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		createdCounter:   createdCounter,
	}
}

// Register validates the event-side invariants, then hands the capacity and
// duplicate checks to the reserving insert, which holds a row lock on the
// event for the duration of the transaction.
func (s *registrationService) Register(ctx context.Context, userID string, req *dto.CreateRegistrationRequest) (*dto.RegistrationWithEvent, error) {
	req.SetDefaults()
	if req.TicketQuantity < domain.MinTicketQuantity || req.TicketQuantity > domain.MaxTicketQuantity {
		return nil, ErrInvalidQuantity
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	now := time.Now()
	if !event.IsPublished() {
		return nil, ErrEventNotPublished
	}
	if event.HasOccurred(now) {
		return nil, ErrEventOccurred
	}
	if event.RegistrationClosed(now) {
		return nil, ErrRegistrationClosed
	}

	reg := &domain.Registration{
		ID:             uuid.New().String(),
		EventID:        event.ID,
		UserID:         userID,
		TicketQuantity: req.TicketQuantity,
		PaymentStatus:  domain.PaymentStatusPending,
		PaymentAmount:  event.Price * float64(req.TicketQuantity),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.registrationRepo.CreateReserving(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return nil, ErrAlreadyRegistered
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	s.createdCounter.Add(ctx, 1)
	return &dto.RegistrationWithEvent{Registration: reg, Event: event}, nil
}

// Cancel deletes a registration. Only the owner may cancel, only before the
// event date, and never once payment is recorded.
func (s *registrationService) Cancel(ctx context.Context, userID, registrationID string) error {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg == nil {
		return ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return ErrNotRegistrationOwner
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return err
	}

	now := time.Now()
	if reg.IsPaid() {
		return ErrCancelPaid
	}
	if event != nil && event.HasOccurred(now) {
		return ErrEventOccurred
	}

	return s.registrationRepo.Delete(ctx, registrationID)
}

// ListMine retrieves a user's registrations, newest first
func (s *registrationService) ListMine(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return s.registrationRepo.ListByUser(ctx, userID)
}
