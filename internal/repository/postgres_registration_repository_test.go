package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/pkg/database"
)

func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

func setupTestDB(t *testing.T) *database.PostgresDB {
	ctx := context.Background()

	cfg := database.DefaultPostgresConfig()
	cfg.Host = getEnv("POSTGRES_HOST", "localhost")
	cfg.User = getEnv("POSTGRES_USER", "postgres")
	cfg.Password = getEnv("POSTGRES_PASSWORD", "")
	cfg.Database = getEnv("POSTGRES_DB", "gowra_test")
	cfg.MaxConns = 5

	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func createTestEvent(t *testing.T, db *database.PostgresDB, capacity *int) *domain.Event {
	ctx := context.Background()
	event := &domain.Event{
		ID:        uuid.New().String(),
		Name:      "test-event-" + uuid.New().String()[:8],
		Organizer: "Test Organizer",
		Date:      time.Now().Add(48 * time.Hour),
		Venue:     "Test Hall",
		Status:    domain.EventStatusPublished,
		Price:     25.00,
		Capacity:  capacity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := NewPostgresEventRepository(db.Pool()).Create(ctx, event); err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	t.Cleanup(func() {
		db.Pool().Exec(ctx, "DELETE FROM registrations WHERE event_id = $1", event.ID)
		db.Pool().Exec(ctx, "DELETE FROM events WHERE id = $1", event.ID)
	})
	return event
}

func newTestRegistration(eventID, userID string, qty int) *domain.Registration {
	now := time.Now()
	return &domain.Registration{
		ID:             uuid.New().String(),
		EventID:        eventID,
		UserID:         userID,
		TicketQuantity: qty,
		PaymentStatus:  domain.PaymentStatusPending,
		PaymentAmount:  25.00 * float64(qty),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestPostgresRegistrationRepository_CreateReserving(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	capacity := 5
	event := createTestEvent(t, db, &capacity)
	repo := NewPostgresRegistrationRepository(db.Pool())
	ctx := context.Background()

	reg := newTestRegistration(event.ID, uuid.New().String(), 2)
	if err := repo.CreateReserving(ctx, reg); err != nil {
		t.Fatalf("Failed to create registration: %v", err)
	}

	found, err := repo.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("Failed to get registration: %v", err)
	}
	if found == nil || found.TicketQuantity != 2 {
		t.Errorf("Expected quantity 2, got %+v", found)
	}
}

func TestPostgresRegistrationRepository_CreateReserving_Duplicate(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	event := createTestEvent(t, db, nil)
	repo := NewPostgresRegistrationRepository(db.Pool())
	ctx := context.Background()

	userID := uuid.New().String()
	if err := repo.CreateReserving(ctx, newTestRegistration(event.ID, userID, 1)); err != nil {
		t.Fatalf("Failed to create first registration: %v", err)
	}

	err := repo.CreateReserving(ctx, newTestRegistration(event.ID, userID, 1))
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("Expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestPostgresRegistrationRepository_CreateReserving_CapacityExceeded(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	capacity := 2
	event := createTestEvent(t, db, &capacity)
	repo := NewPostgresRegistrationRepository(db.Pool())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.CreateReserving(ctx, newTestRegistration(event.ID, uuid.New().String(), 1)); err != nil {
			t.Fatalf("Registration %d should succeed: %v", i+1, err)
		}
	}

	err := repo.CreateReserving(ctx, newTestRegistration(event.ID, uuid.New().String(), 1))
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded, got %v", err)
	}
}

func TestPostgresRegistrationRepository_CreateReserving_ConcurrentAtCapacity(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	capacity := 3
	event := createTestEvent(t, db, &capacity)
	repo := NewPostgresRegistrationRepository(db.Pool())

	// Fire more registrations than capacity concurrently; the row lock must
	// let exactly capacity of them through.
	const attempts = 8
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			results <- repo.CreateReserving(context.Background(), newTestRegistration(event.ID, uuid.New().String(), 1))
		}()
	}

	var ok, rejected int
	for i := 0; i < attempts; i++ {
		err := <-results
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrCapacityExceeded):
			rejected++
		default:
			t.Errorf("Unexpected error: %v", err)
		}
	}

	if ok != capacity {
		t.Errorf("Expected %d successful registrations, got %d", capacity, ok)
	}
	if rejected != attempts-capacity {
		t.Errorf("Expected %d rejections, got %d", attempts-capacity, rejected)
	}
}

func TestPostgresRegistrationRepository_CreateReserving_MissingEvent(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	repo := NewPostgresRegistrationRepository(db.Pool())
	err := repo.CreateReserving(context.Background(), newTestRegistration(uuid.New().String(), uuid.New().String(), 1))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPostgresRegistrationRepository_UpdatePaymentStatus(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	defer db.Close()

	event := createTestEvent(t, db, nil)
	repo := NewPostgresRegistrationRepository(db.Pool())
	ctx := context.Background()

	reg := newTestRegistration(event.ID, uuid.New().String(), 1)
	if err := repo.CreateReserving(ctx, reg); err != nil {
		t.Fatalf("Failed to create registration: %v", err)
	}

	if err := repo.UpdatePaymentStatus(ctx, reg.ID, domain.PaymentStatusPaid, "PAY-TEST1234"); err != nil {
		t.Fatalf("Failed to update payment status: %v", err)
	}

	found, _ := repo.GetByID(ctx, reg.ID)
	if found.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("Expected status 'paid', got '%s'", found.PaymentStatus)
	}
	if found.PaymentReference != "PAY-TEST1234" {
		t.Errorf("Expected reference 'PAY-TEST1234', got '%s'", found.PaymentReference)
	}
}
