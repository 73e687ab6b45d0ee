package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTableNotFound    = errors.New("table not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// SQLSTATE codes the store distinguishes.
const (
	codeUndefinedTable        = "42P01"
	codeInsufficientPrivilege = "42501"
)

// classify tags store failures with ErrTableNotFound or ErrPermissionDenied.
// Structured Postgres error codes are checked first; message text is only a
// fallback for drivers and proxies that return plain errors.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUndefinedTable:
			return fmt.Errorf("%w: %w", ErrTableNotFound, err)
		case codeInsufficientPrivilege:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Could not find the table"),
		strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		return fmt.Errorf("%w: %w", ErrTableNotFound, err)
	case strings.Contains(strings.ToLower(msg), "permission"):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}
