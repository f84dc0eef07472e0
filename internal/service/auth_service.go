package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Cha17/gowra-sub000/internal/auth"
	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/dto"
	"github.com/Cha17/gowra-sub000/internal/repository"
)

// AuthService errors
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyOrganizer   = errors.New("user is already an organizer")
	ErrInvalidOrgProfile  = errors.New("organization name, type and at least one event type are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new user account with role user
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	// Login authenticates an email/password pair and issues a token pair
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.Principal, *dto.AuthResponse, error)
	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	// ResolvePrincipal resolves a verified claim set back to current storage
	// state; authorization never trusts token claims alone
	ResolvePrincipal(ctx context.Context, claims *auth.Claims) (*domain.Principal, error)
	// UpgradeToOrganizer promotes a user to organizer and issues a fresh
	// access token carrying the new role
	UpgradeToOrganizer(ctx context.Context, userID string, req *dto.UpgradeToOrganizerRequest) (*dto.UpgradeResponse, error)
}

// authService implements AuthService
type authService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	tokens    *auth.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

// Register creates a new user account. Emails held by an admin account are
// rejected outright so the two identity spaces stay disjoint.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	if len(req.Password) < auth.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return nil, ErrEmailExists
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index closes the race between ExistsByEmail and Create
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// resolveByEmail resolves an email to a principal with a single lookup
// policy: the admin table wins, the user table is consulted only when no
// admin holds the email. Returns nil when neither matches.
func (s *authService) resolveByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return &domain.Principal{Admin: admin}, nil
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return &domain.Principal{User: user}, nil
	}
	return nil, nil
}

// Login authenticates a principal and issues an access/refresh token pair
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.Principal, *dto.AuthResponse, error) {
	principal, err := s.resolveByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if principal == nil {
		return nil, nil, ErrInvalidCredentials
	}

	var hash string
	if principal.IsAdmin() {
		hash = principal.Admin.PasswordHash
	} else {
		hash = principal.User.PasswordHash
	}
	if !auth.VerifyPassword(hash, req.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(principal)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(principal)
	if err != nil {
		return nil, nil, err
	}

	resp := &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		IsAdmin:      principal.IsAdmin(),
	}
	if principal.IsAdmin() {
		resp.User = principal.Admin
	} else {
		resp.User = principal.User
	}
	return principal, resp, nil
}

// Refresh verifies a refresh token, re-fetches the current principal state
// so a role change since issuance is reflected, and issues a new access
// token. The refresh token itself is not rotated.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	principal, err := s.ResolvePrincipal(ctx, claims)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccess(principal)
	if err != nil {
		return nil, err
	}

	resp := &dto.RefreshResponse{Token: accessToken}
	if principal.IsAdmin() {
		resp.User = principal.Admin
	} else {
		resp.User = principal.User
	}
	return resp, nil
}

// ResolvePrincipal loads the current principal for a verified claim set.
// Returns ErrUserNotFound if the account no longer exists.
func (s *authService) ResolvePrincipal(ctx context.Context, claims *auth.Claims) (*domain.Principal, error) {
	if claims.IsAdmin {
		admin, err := s.adminRepo.GetByEmail(ctx, claims.Email)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, ErrUserNotFound
		}
		return &domain.Principal{Admin: admin}, nil
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &domain.Principal{User: user}, nil
}

// UpgradeToOrganizer promotes a user to the organizer role. The upgrade is
// one-way; tokens issued before the upgrade keep carrying role=user until
// they expire or are refreshed, so a fresh access token is returned.
func (s *authService) UpgradeToOrganizer(ctx context.Context, userID string, req *dto.UpgradeToOrganizerRequest) (*dto.UpgradeResponse, error) {
	if req.OrganizationName == "" || req.OrganizationType == "" || len(req.EventTypes) == 0 {
		return nil, ErrInvalidOrgProfile
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsOrganizer() {
		return nil, ErrAlreadyOrganizer
	}

	now := time.Now()
	user.Role = domain.RoleOrganizer
	user.OrganizationName = req.OrganizationName
	user.OrganizationType = req.OrganizationType
	user.OrganizationDescription = req.OrganizationDescription
	user.OrganizationWebsite = req.OrganizationWebsite
	user.EventTypes = req.EventTypes
	user.OrganizerSince = &now

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueAccess(&domain.Principal{User: user})
	if err != nil {
		return nil, err
	}

	return &dto.UpgradeResponse{User: user, Token: token}, nil
}
