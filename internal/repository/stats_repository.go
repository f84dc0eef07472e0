package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

// StatsRepository defines the interface for platform-wide aggregates
type StatsRepository interface {
	// Stats collects counts and revenue for the admin dashboard
	Stats(ctx context.Context) (*domain.AdminStats, error)
}

// PostgresStatsRepository implements StatsRepository using PostgreSQL
type PostgresStatsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository
func NewPostgresStatsRepository(pool *pgxpool.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{pool: pool}
}

// Stats collects counts and revenue in one round-trip. Revenue sums the
// ledger, so refunds (negative rows) net out automatically.
func (r *PostgresStatsRepository) Stats(ctx context.Context) (*domain.AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = $1),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM registrations),
			(SELECT COALESCE(SUM(amount), 0) FROM payments)
	`
	stats := &domain.AdminStats{}
	err := r.pool.QueryRow(ctx, query, domain.RoleOrganizer).Scan(
		&stats.TotalUsers,
		&stats.TotalOrganizers,
		&stats.TotalEvents,
		&stats.TotalRegistrations,
		&stats.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
