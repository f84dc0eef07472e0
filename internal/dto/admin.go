package dto

import "github.com/Cha17/gowra-sub000/internal/domain"

// ListQuery represents generic pagination parameters for admin listings
type ListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

// ListUsersResponse represents a paginated list of users
type ListUsersResponse struct {
	Users      []*domain.User `json:"users"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// ListRegistrationsResponse represents a paginated list of registrations
type ListRegistrationsResponse struct {
	Registrations []*domain.Registration `json:"registrations"`
	TotalCount    int                    `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
}

// OverrideRegistrationStatusRequest represents an admin override of a
// registration's payment status
type OverrideRegistrationStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending paid failed refunded"`
}
