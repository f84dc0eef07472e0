package repository

import (
	"context"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

// RegistrationRepository defines the interface for registration data access
type RegistrationRepository interface {
	// CreateReserving inserts a registration while holding a row lock on the
	// event, re-checking capacity inside the transaction. Returns
	// ErrCapacityExceeded or ErrAlreadyRegistered on conflict.
	CreateReserving(ctx context.Context, reg *domain.Registration) error
	// GetByID retrieves a registration by ID
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	// ListByUser retrieves a user's registrations
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	// ListByEvent retrieves an event's registrations
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	// List retrieves all registrations with pagination
	List(ctx context.Context, page, limit int) ([]*domain.Registration, int, error)
	// Delete deletes a registration
	Delete(ctx context.Context, id string) error
	// UpdatePaymentStatus sets the payment status and reference
	UpdatePaymentStatus(ctx context.Context, id, status, reference string) error
}
