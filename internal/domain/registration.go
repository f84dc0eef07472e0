package domain

import "time"

// Payment status values for a registration
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Ticket quantity bounds per registration
const (
	MinTicketQuantity = 1
	MaxTicketQuantity = 10
)

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Registration is a user's claim on tickets for an event. At most one
// registration exists per (user, event) pair.
type Registration struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	UserID           string    `json:"user_id"`
	TicketQuantity   int       `json:"ticket_quantity"`
	PaymentStatus    string    `json:"payment_status"`
	PaymentAmount    float64   `json:"payment_amount"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsPaid reports whether the registration has been paid for
func (r *Registration) IsPaid() bool {
	return r.PaymentStatus == PaymentStatusPaid
}

// Cancellable reports whether the owner may still self-cancel: only before
// the event date, and only while unpaid.
func (r *Registration) Cancellable(eventDate, now time.Time) bool {
	if r.IsPaid() {
		return false
	}
	return eventDate.After(now)
}
