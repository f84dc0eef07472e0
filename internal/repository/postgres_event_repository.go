package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cha17/gowra-sub000/internal/domain"
)

const eventColumns = `id, name, COALESCE(description, '') as description,
	COALESCE(organizer, '') as organizer, organizer_id::text,
	date, COALESCE(venue, '') as venue, status, price, capacity,
	registration_deadline, published_at, created_at, updated_at`

// recentRegistrationsLimit caps the recent-activity slice in analytics
const recentRegistrationsLimit = 10

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Organizer,
		&event.OrganizerID,
		&event.Date,
		&event.Venue,
		&event.Status,
		&event.Price,
		&event.Capacity,
		&event.RegistrationDeadline,
		&event.PublishedAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, name, description, organizer, organizer_id, date, venue,
			status, price, capacity, registration_deadline, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Name,
		nullIfEmpty(event.Description),
		event.Organizer,
		event.OrganizerID,
		event.Date,
		event.Venue,
		event.Status,
		event.Price,
		event.Capacity,
		event.RegistrationDeadline,
		event.PublishedAt,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return err
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

// List retrieves events matching the filter, soonest first
func (r *PostgresEventRepository) List(ctx context.Context, filter EventFilter) ([]*domain.Event, int, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR venue ILIKE %s OR COALESCE(description, '') ILIKE %s)", p, p, p))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events` + where +
		` ORDER BY date ASC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg((filter.Page-1)*filter.Limit)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	return events, total, nil
}

func scanEventRow(rows pgx.Rows) (*domain.Event, error) {
	event := &domain.Event{}
	err := rows.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Organizer,
		&event.OrganizerID,
		&event.Date,
		&event.Venue,
		&event.Status,
		&event.Price,
		&event.Capacity,
		&event.RegistrationDeadline,
		&event.PublishedAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Update updates an event
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, date = $4, venue = $5, status = $6,
			price = $7, capacity = $8, registration_deadline = $9, published_at = $10,
			updated_at = $11
		WHERE id = $1
	`
	event.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Name,
		nullIfEmpty(event.Description),
		event.Date,
		event.Venue,
		event.Status,
		event.Price,
		event.Capacity,
		event.RegistrationDeadline,
		event.PublishedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes an event
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRegistrations counts registrations for an event
func (r *PostgresEventRepository) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

// Count counts all events
func (r *PostgresEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}

// Analytics aggregates registration counts, payment-status breakdown and
// recent activity for an event. Capacity utilization is computed by the
// caller, which holds the event row.
func (r *PostgresEventRepository) Analytics(ctx context.Context, eventID string) (*domain.EventAnalytics, error) {
	analytics := &domain.EventAnalytics{
		RegistrationBreakdown: make(map[string]int),
	}

	query := `SELECT COUNT(*), COALESCE(SUM(ticket_quantity), 0)
		FROM registrations WHERE event_id = $1`
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&analytics.TotalRegistrations,
		&analytics.TotalTickets,
	); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT payment_status, COUNT(*) FROM registrations WHERE event_id = $1 GROUP BY payment_status`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		analytics.RegistrationBreakdown[status] = count
	}
	rows.Close()

	recentRows, err := r.pool.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
			WHERE event_id = $1 ORDER BY created_at DESC LIMIT $2`,
		eventID, recentRegistrationsLimit)
	if err != nil {
		return nil, err
	}
	defer recentRows.Close()
	for recentRows.Next() {
		reg, err := scanRegistrationRow(recentRows)
		if err != nil {
			return nil, err
		}
		analytics.RecentRegistrations = append(analytics.RecentRegistrations, reg)
	}
	return analytics, nil
}
