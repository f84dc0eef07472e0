package repository

import (
	"context"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update updates a user
	Update(ctx context.Context, user *domain.User) error
	// List retrieves users with pagination
	List(ctx context.Context, page, limit int) ([]*domain.User, int, error)
}

// AdminRepository defines the interface for admin account data access
type AdminRepository interface {
	// GetByEmail retrieves an admin by email
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// EnsureDefault seeds the default admin account if no admin with the
	// given email exists
	EnsureDefault(ctx context.Context, admin *domain.Admin) error
}
