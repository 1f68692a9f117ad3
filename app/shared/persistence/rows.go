package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNoRowsAffected indicates a mutation matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrUnexpectedRowCount indicates a single-row mutation touched more than one row.
	ErrUnexpectedRowCount = errors.New("unexpected number of rows affected")
)

// uniqueViolation is the SQLSTATE Postgres reports for a unique constraint.
const uniqueViolation = "23505"

// ExpectOneRow enforces the post-condition of every single-row mutation:
// exactly one row must have been affected.
func ExpectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch {
	case n == 0:
		return ErrNoRowsAffected
	case n != 1:
		return fmt.Errorf("%w: %d", ErrUnexpectedRowCount, n)
	}
	return nil
}

// IsRowCountViolation reports whether err came from ExpectOneRow.
func IsRowCountViolation(err error) bool {
	return errors.Is(err, ErrNoRowsAffected) || errors.Is(err, ErrUnexpectedRowCount)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint rejection.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	return false
}
