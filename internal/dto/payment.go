package dto

import "github.com/Cha17/gowra-sub000/internal/domain"

// ProcessPaymentRequest represents request to pay for a registration
type ProcessPaymentRequest struct {
	RegistrationID   string `json:"registrationId" binding:"required"`
	PaymentMethod    string `json:"paymentMethod" binding:"required,oneof=card bank_transfer wallet"`
	PaymentReference string `json:"paymentReference" binding:"omitempty,max=100"`
}

// PaymentWithRegistration pairs a ledger row with its registration for responses
type PaymentWithRegistration struct {
	Payment      *domain.Payment      `json:"payment"`
	Registration *domain.Registration `json:"registration"`
}
