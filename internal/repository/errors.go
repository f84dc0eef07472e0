package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by repositories. Constraint violations from
// Postgres are mapped onto these so services never see raw driver errors
// for expected conflicts.
var (
	ErrEmailExists       = errors.New("email already exists")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrCapacityExceeded  = errors.New("event capacity exceeded")
	ErrNotFound          = errors.New("record not found")
)

// pgUniqueViolation is the Postgres error code for unique constraint violations
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
