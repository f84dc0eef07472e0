package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/dto"
)

func TestAdminService_Stats(t *testing.T) {
	statsRepo := &mockStatsRepo{stats: domain.AdminStats{
		TotalUsers:         12,
		TotalOrganizers:    3,
		TotalEvents:        5,
		TotalRegistrations: 40,
		TotalRevenue:       1250.00,
	}}
	svc := NewAdminService(statsRepo, newMockUserRepo(), newMockRegistrationRepo(newMockEventRepo()))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalUsers)
	assert.Equal(t, 1250.00, stats.TotalRevenue)
}

func TestAdminService_ListUsers(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAdminService(&mockStatsRepo{}, userRepo, newMockRegistrationRepo(newMockEventRepo()))
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, userRepo.Create(ctx, &domain.User{
			ID:    id,
			Email: id + "@example.com",
			Role:  domain.RoleUser,
		}))
	}

	resp, err := svc.ListUsers(ctx, &dto.ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, 2, resp.TotalPages)
}

func TestAdminService_OverrideRegistrationStatus(t *testing.T) {
	eventRepo := newMockEventRepo()
	regRepo := newMockRegistrationRepo(eventRepo)
	svc := NewAdminService(&mockStatsRepo{}, newMockUserRepo(), regRepo)
	ctx := context.Background()

	require.NoError(t, eventRepo.Create(ctx, &domain.Event{
		ID:     "event-1",
		Name:   "Go Meetup",
		Date:   time.Now().Add(24 * time.Hour),
		Status: domain.EventStatusPublished,
	}))
	reg := &domain.Registration{
		ID:             "reg-1",
		EventID:        "event-1",
		UserID:         "user-1",
		TicketQuantity: 1,
		PaymentStatus:  domain.PaymentStatusPending,
	}
	require.NoError(t, regRepo.CreateReserving(ctx, reg))

	updated, err := svc.OverrideRegistrationStatus(ctx, "reg-1", domain.PaymentStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, updated.PaymentStatus)

	stored, _ := regRepo.GetByID(ctx, "reg-1")
	assert.Equal(t, domain.PaymentStatusFailed, stored.PaymentStatus)
}

func TestAdminService_OverrideRegistrationStatus_Invalid(t *testing.T) {
	svc := NewAdminService(&mockStatsRepo{}, newMockUserRepo(), newMockRegistrationRepo(newMockEventRepo()))

	_, err := svc.OverrideRegistrationStatus(context.Background(), "reg-1", "voided")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAdminService_OverrideRegistrationStatus_NotFound(t *testing.T) {
	svc := NewAdminService(&mockStatsRepo{}, newMockUserRepo(), newMockRegistrationRepo(newMockEventRepo()))

	_, err := svc.OverrideRegistrationStatus(context.Background(), "missing", domain.PaymentStatusPaid)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}
