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

func setupRegistrationService(t *testing.T) (RegistrationService, *mockEventRepo, *mockRegistrationRepo) {
	t.Helper()
	eventRepo := newMockEventRepo()
	regRepo := newMockRegistrationRepo(eventRepo)
	return NewRegistrationService(regRepo, eventRepo), eventRepo, regRepo
}

func seedEvent(t *testing.T, eventRepo *mockEventRepo, mutate func(*domain.Event)) *domain.Event {
	t.Helper()
	now := time.Now()
	event := &domain.Event{
		ID:        "event-1",
		Name:      "Go Meetup",
		Organizer: "Acme Events",
		Date:      now.Add(72 * time.Hour),
		Venue:     "Main Hall",
		Status:    domain.EventStatusPublished,
		Price:     20.00,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(event)
	}
	require.NoError(t, eventRepo.Create(context.Background(), event))
	return event
}

func TestRegistrationService_Register(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)

	resp, err := svc.Register(context.Background(), "user-1", &dto.CreateRegistrationRequest{
		EventID:        event.ID,
		TicketQuantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, resp.Registration.PaymentStatus)
	assert.Equal(t, 60.00, resp.Registration.PaymentAmount)
	assert.Equal(t, event.ID, resp.Event.ID)
}

func TestRegistrationService_Register_DefaultQuantity(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)

	resp, err := svc.Register(context.Background(), "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Registration.TicketQuantity)
	assert.Equal(t, 20.00, resp.Registration.PaymentAmount)
}

func TestRegistrationService_Register_EventChecks(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name    string
		mutate  func(*domain.Event)
		wantErr error
	}{
		{"draft event", func(e *domain.Event) { e.Status = domain.EventStatusDraft }, ErrEventNotPublished},
		{"cancelled event", func(e *domain.Event) { e.Status = domain.EventStatusCancelled }, ErrEventNotPublished},
		{"occurred event", func(e *domain.Event) { e.Date = past }, ErrEventOccurred},
		{"deadline passed", func(e *domain.Event) { e.RegistrationDeadline = &past }, ErrRegistrationClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, eventRepo, _ := setupRegistrationService(t)
			event := seedEvent(t, eventRepo, tt.mutate)

			_, err := svc.Register(context.Background(), "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistrationService_Register_MissingEvent(t *testing.T) {
	svc, _, _ := setupRegistrationService(t)

	_, err := svc.Register(context.Background(), "user-1", &dto.CreateRegistrationRequest{EventID: "missing"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegistrationService_Register_Duplicate(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)

	_, err = svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistrationService_Register_Capacity(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	capacity := 2
	event := seedEvent(t, eventRepo, func(e *domain.Event) { e.Capacity = &capacity })
	ctx := context.Background()

	_, err := svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID, TicketQuantity: 1})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "user-2", &dto.CreateRegistrationRequest{EventID: event.ID, TicketQuantity: 1})
	require.NoError(t, err)

	// The event is full at count == capacity.
	_, err = svc.Register(ctx, "user-3", &dto.CreateRegistrationRequest{EventID: event.ID, TicketQuantity: 1})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestRegistrationService_Register_QuantityOverCapacity(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	capacity := 3
	event := seedEvent(t, eventRepo, func(e *domain.Event) { e.Capacity = &capacity })

	_, err := svc.Register(context.Background(), "user-1", &dto.CreateRegistrationRequest{
		EventID:        event.ID,
		TicketQuantity: 4,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestRegistrationService_Register_InvalidQuantity(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)

	_, err := svc.Register(context.Background(), "user-1", &dto.CreateRegistrationRequest{
		EventID:        event.ID,
		TicketQuantity: 11,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRegistrationService_Cancel(t *testing.T) {
	svc, eventRepo, regRepo := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, "user-1", resp.Registration.ID))

	found, _ := regRepo.GetByID(ctx, resp.Registration.ID)
	assert.Nil(t, found)
}

func TestRegistrationService_Cancel_NotOwner(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)

	err = svc.Cancel(ctx, "user-2", resp.Registration.ID)
	assert.ErrorIs(t, err, ErrNotRegistrationOwner)
}

func TestRegistrationService_Cancel_Paid(t *testing.T) {
	svc, eventRepo, regRepo := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)

	require.NoError(t, regRepo.UpdatePaymentStatus(ctx, resp.Registration.ID, domain.PaymentStatusPaid, "PAY-ABCD1234"))

	// Paid registrations are never self-cancellable, even before the event.
	err = svc.Cancel(ctx, "user-1", resp.Registration.ID)
	assert.ErrorIs(t, err, ErrCancelPaid)
}

func TestRegistrationService_Cancel_EventPassed(t *testing.T) {
	svc, eventRepo, _ := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)

	event.Date = time.Now().Add(-time.Hour)
	require.NoError(t, eventRepo.Update(ctx, event))

	err = svc.Cancel(ctx, "user-1", resp.Registration.ID)
	assert.ErrorIs(t, err, ErrEventOccurred)
}

func TestRegistrationService_Cancel_NotFound(t *testing.T) {
	svc, _, _ := setupRegistrationService(t)

	err := svc.Cancel(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}
