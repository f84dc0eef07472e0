package service

import (
	"context"
	"errors"
	"math"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/dto"
	"github.com/Cha17/gowra-sub000/internal/repository"
)

// AdminService defines the interface for admin dashboard operations
type AdminService interface {
	// Stats collects platform-wide aggregates
	Stats(ctx context.Context) (*domain.AdminStats, error)
	// ListUsers retrieves users with pagination
	ListUsers(ctx context.Context, query *dto.ListQuery) (*dto.ListUsersResponse, error)
	// ListRegistrations retrieves registrations with pagination
	ListRegistrations(ctx context.Context, query *dto.ListQuery) (*dto.ListRegistrationsResponse, error)
	// OverrideRegistrationStatus sets a registration's payment status directly
	OverrideRegistrationStatus(ctx context.Context, registrationID, status string) (*domain.Registration, error)
}

// adminService implements AdminService
type adminService struct {
	statsRepo        repository.StatsRepository
	userRepo         repository.UserRepository
	registrationRepo repository.RegistrationRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(statsRepo repository.StatsRepository, userRepo repository.UserRepository, registrationRepo repository.RegistrationRepository) AdminService {
	return &adminService{
		statsRepo:        statsRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
	}
}

// Stats collects platform-wide aggregates
func (s *adminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	return s.statsRepo.Stats(ctx)
}

// ListUsers retrieves users with pagination
func (s *adminService) ListUsers(ctx context.Context, query *dto.ListQuery) (*dto.ListUsersResponse, error) {
	query.SetDefaults()

	users, total, err := s.userRepo.List(ctx, query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	return &dto.ListUsersResponse{
		Users:      users,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

// ListRegistrations retrieves registrations with pagination
func (s *adminService) ListRegistrations(ctx context.Context, query *dto.ListQuery) (*dto.ListRegistrationsResponse, error) {
	query.SetDefaults()

	regs, total, err := s.registrationRepo.List(ctx, query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	return &dto.ListRegistrationsResponse{
		Registrations: regs,
		TotalCount:    total,
		Page:          query.Page,
		Limit:         query.Limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

// OverrideRegistrationStatus sets a registration's payment status directly.
// The override bypasses the ledger; it exists for support corrections.
func (s *adminService) OverrideRegistrationStatus(ctx context.Context, registrationID, status string) (*domain.Registration, error) {
	if !domain.ValidPaymentStatus(status) {
		return nil, ErrInvalidRequest
	}

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, ErrRegistrationNotFound
	}

	if err := s.registrationRepo.UpdatePaymentStatus(ctx, registrationID, status, reg.PaymentReference); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	reg.PaymentStatus = status
	return reg, nil
}
