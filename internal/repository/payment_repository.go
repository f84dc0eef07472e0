package repository

import (
	"context"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

// PaymentRepository defines the interface for the payment ledger
type PaymentRepository interface {
	// ProcessInTx inserts a payment row and flips the registration to paid
	// in a single transaction
	ProcessInTx(ctx context.Context, payment *domain.Payment) error
	// RefundInTx inserts a refund row and marks both the original payment
	// and its registration refunded in a single transaction
	RefundInTx(ctx context.Context, refund *domain.Payment, originalID string) error
	// GetByID retrieves a payment by ID
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	// ListByRegistration retrieves the ledger rows for a registration
	ListByRegistration(ctx context.Context, registrationID string) ([]*domain.Payment, error)
	// ListByUser retrieves a user's ledger rows
	ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error)
	// List retrieves all ledger rows with pagination
	List(ctx context.Context, page, limit int) ([]*domain.Payment, int, error)
}
