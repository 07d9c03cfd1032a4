package postgres

import (
	"strings"

	"passage/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error class 23: integrity constraint violation.
const pgUniqueViolationCode = "23505"

func isUniqueConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}

	// Fallback for drivers that do not surface *pgconn.PgError.
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
