package dto

import "github.com/Cha17/gowra-sub000/internal/domain"

// RegisterRequest represents request to create a new account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"omitempty,max=255"`
}

// LoginRequest represents request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents request to exchange a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpgradeToOrganizerRequest represents request to upgrade a user account to
// an organizer account
type UpgradeToOrganizerRequest struct {
	OrganizationName        string   `json:"organization_name" binding:"required,min=2,max=255"`
	OrganizationType        string   `json:"organization_type" binding:"required,max=100"`
	OrganizationDescription string   `json:"organization_description" binding:"omitempty,max=2000"`
	OrganizationWebsite     string   `json:"organization_website" binding:"omitempty,url"`
	EventTypes              []string `json:"event_types" binding:"required,min=1"`
}

// AuthResponse carries the authenticated identity and its token pair
type AuthResponse struct {
	User         interface{} `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	IsAdmin      bool        `json:"isAdmin"`
}

// RefreshResponse carries a freshly issued access token
type RefreshResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// UpgradeResponse carries the upgraded user and a token embedding the new role
type UpgradeResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
