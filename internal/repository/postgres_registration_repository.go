package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

const registrationColumns = `id, event_id, user_id, ticket_quantity, payment_status,
	payment_amount, COALESCE(payment_reference, '') as payment_reference, created_at, updated_at`

// PostgresRegistrationRepository implements RegistrationRepository using PostgreSQL
type PostgresRegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRegistrationRepository creates a new PostgresRegistrationRepository
func NewPostgresRegistrationRepository(pool *pgxpool.Pool) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{pool: pool}
}

func scanRegistrationRow(row pgx.Row) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.TicketQuantity,
		&reg.PaymentStatus,
		&reg.PaymentAmount,
		&reg.PaymentReference,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// CreateReserving inserts a registration inside a transaction that holds a
// row lock on the event. The lock serializes concurrent registrations for
// the same event, so the capacity re-check cannot race past the limit. The
// partial unique index on (user_id, event_id) backs the duplicate check.
func (r *PostgresRegistrationRepository) CreateReserving(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var capacity *int
	err = tx.QueryRow(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, reg.EventID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if capacity != nil {
		var current int
		err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, reg.EventID).Scan(&current)
		if err != nil {
			return err
		}
		if current+reg.TicketQuantity > *capacity {
			return ErrCapacityExceeded
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO registrations (id, event_id, user_id, ticket_quantity, payment_status,
			payment_amount, payment_reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		reg.ID,
		reg.EventID,
		reg.UserID,
		reg.TicketQuantity,
		reg.PaymentStatus,
		reg.PaymentAmount,
		nullIfEmpty(reg.PaymentReference),
		reg.CreatedAt,
		reg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyRegistered
		}
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a registration by ID
func (r *PostgresRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistrationRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return reg, nil
}

// ListByUser retrieves a user's registrations, newest first
func (r *PostgresRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations
		WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryRegistrations(ctx, query, userID)
}

// ListByEvent retrieves an event's registrations, newest first
func (r *PostgresRegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations
		WHERE event_id = $1 ORDER BY created_at DESC`
	return r.queryRegistrations(ctx, query, eventID)
}

func (r *PostgresRegistrationRepository) queryRegistrations(ctx context.Context, query string, args ...interface{}) ([]*domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistrationRow(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// List retrieves all registrations with pagination, newest first
func (r *PostgresRegistrationRepository) List(ctx context.Context, page, limit int) ([]*domain.Registration, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + registrationColumns + ` FROM registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	regs, err := r.queryRegistrations(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

// Delete deletes a registration
func (r *PostgresRegistrationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePaymentStatus sets the payment status and reference for a registration
func (r *PostgresRegistrationRepository) UpdatePaymentStatus(ctx context.Context, id, status, reference string) error {
	query := `
		UPDATE registrations
		SET payment_status = $2, payment_reference = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, id, status, nullIfEmpty(reference), time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
