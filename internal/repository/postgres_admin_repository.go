package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

// PostgresAdminRepository implements AdminRepository using PostgreSQL
type PostgresAdminRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository
func NewPostgresAdminRepository(pool *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{pool: pool}
}

// GetByEmail retrieves an admin by email
func (r *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT id, email, password_hash, COALESCE(name, '') as name, created_at
		FROM admin_users WHERE email = $1`
	admin := &domain.Admin{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}

// EnsureDefault seeds the default admin account at boot. The insert is a
// no-op if an admin with the same email already exists.
func (r *PostgresAdminRepository) EnsureDefault(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admin_users (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.Name,
		admin.CreatedAt,
	)
	return err
}
