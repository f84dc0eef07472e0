package dto

import "github.com/Cha17/gowra-sub000/internal/domain"

// CreateRegistrationRequest represents request to register for an event.
// TicketQuantity defaults to 1 when omitted.
type CreateRegistrationRequest struct {
	EventID        string `json:"eventId" binding:"required"`
	TicketQuantity int    `json:"ticketQuantity" binding:"omitempty,min=1,max=10"`
}

// SetDefaults applies the default ticket quantity
func (r *CreateRegistrationRequest) SetDefaults() {
	if r.TicketQuantity == 0 {
		r.TicketQuantity = domain.MinTicketQuantity
	}
}

// RegistrationWithEvent pairs a registration with its event for responses
type RegistrationWithEvent struct {
	Registration *domain.Registration `json:"registration"`
	Event        *domain.Event        `json:"event"`
}
