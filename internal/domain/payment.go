package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted by the simulated gateway
const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodWallet       = "wallet"
)

// Payment is one row in the append-only payment ledger. Refunds are
// recorded as new negative-amount rows; existing rows are never mutated
// beyond their status field.
type Payment struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	UserID         string    `json:"user_id"`
	Amount         float64   `json:"amount"`
	Method         string    `json:"method"`
	Status         string    `json:"status"`
	Reference      string    `json:"reference"`
	CreatedAt      time.Time `json:"created_at"`
}

// ValidPaymentMethod reports whether m is an accepted payment method
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodWallet:
		return true
	}
	return false
}

// NewPayment creates a charge ledger entry for a registration
func NewPayment(registrationID, userID string, amount float64, method, reference string) (*Payment, error) {
	if registrationID == "" {
		return nil, errors.New("registration_id is required")
	}
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if !ValidPaymentMethod(method) {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}
	if reference == "" {
		reference = GeneratePaymentReference()
	}

	return &Payment{
		ID:             uuid.New().String(),
		RegistrationID: registrationID,
		UserID:         userID,
		Amount:         amount,
		Method:         method,
		Status:         PaymentStatusPaid,
		Reference:      reference,
		CreatedAt:      time.Now(),
	}, nil
}

// NewRefund creates a negative-amount ledger entry reversing original.
// The original row is not modified here; status flips happen in the same
// transaction at the repository layer.
func NewRefund(original *Payment) (*Payment, error) {
	if original == nil {
		return nil, errors.New("original payment is required")
	}
	if original.Status != PaymentStatusPaid {
		return nil, errors.New("only paid payments can be refunded")
	}

	return &Payment{
		ID:             uuid.New().String(),
		RegistrationID: original.RegistrationID,
		UserID:         original.UserID,
		Amount:         -original.Amount,
		Method:         original.Method,
		Status:         PaymentStatusRefunded,
		Reference:      "REF-" + original.Reference,
		CreatedAt:      time.Now(),
	}, nil
}

// GeneratePaymentReference produces an opaque reference string for a charge
func GeneratePaymentReference() string {
	return "PAY-" + strings.ToUpper(uuid.New().String()[:8])
}
