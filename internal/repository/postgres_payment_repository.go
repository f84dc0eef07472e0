package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

const paymentColumns = `id, registration_id, user_id, amount, method, status, reference, created_at`

const insertPaymentQuery = `
	INSERT INTO payments (id, registration_id, user_id, amount, method, status, reference, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(pool *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{pool: pool}
}

func scanPaymentRow(row pgx.Row) (*domain.Payment, error) {
	payment := &domain.Payment{}
	err := row.Scan(
		&payment.ID,
		&payment.RegistrationID,
		&payment.UserID,
		&payment.Amount,
		&payment.Method,
		&payment.Status,
		&payment.Reference,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func insertPayment(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	_, err := tx.Exec(ctx, insertPaymentQuery,
		p.ID,
		p.RegistrationID,
		p.UserID,
		p.Amount,
		p.Method,
		p.Status,
		p.Reference,
		p.CreatedAt,
	)
	return err
}

// ProcessInTx records a charge and flips the registration to paid. Both
// writes commit together or not at all.
func (r *PostgresPaymentRepository) ProcessInTx(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertPayment(ctx, tx, payment); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `
		UPDATE registrations
		SET payment_status = $2, payment_reference = $3, updated_at = $4
		WHERE id = $1
	`, payment.RegistrationID, domain.PaymentStatusPaid, payment.Reference, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// RefundInTx records a refund row, marks the original ledger row refunded
// and flips the registration status, all in one transaction. The original
// amount stays untouched; the refund row carries the reversal.
func (r *PostgresPaymentRepository) RefundInTx(ctx context.Context, refund *domain.Payment, originalID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertPayment(ctx, tx, refund); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE payments SET status = $2 WHERE id = $1`,
		originalID, domain.PaymentStatusRefunded)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	result, err = tx.Exec(ctx, `
		UPDATE registrations
		SET payment_status = $2, updated_at = $3
		WHERE id = $1
	`, refund.RegistrationID, domain.PaymentStatusRefunded, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a payment by ID
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	payment, err := scanPaymentRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return payment, nil
}

// ListByRegistration retrieves the ledger rows for a registration, oldest first
func (r *PostgresPaymentRepository) ListByRegistration(ctx context.Context, registrationID string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE registration_id = $1 ORDER BY created_at ASC`
	return r.queryPayments(ctx, query, registrationID)
}

// ListByUser retrieves a user's ledger rows, newest first
func (r *PostgresPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryPayments(ctx, query, userID)
}

func (r *PostgresPaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPaymentRow(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// List retrieves all ledger rows with pagination, newest first
func (r *PostgresPaymentRepository) List(ctx context.Context, page, limit int) ([]*domain.Payment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	payments, err := r.queryPayments(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
