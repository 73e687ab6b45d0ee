package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"techmarket/internal/domain"
)

var (
	ErrAdminNotFound  = errors.New("admin not found")
	ErrAmbiguousAdmin = errors.New("more than one admin row matched")
)

// AdminRepository reads the usersadmin table. It never writes.
type AdminRepository interface {
	// FindByCredentials matches name and senha by plain equality and returns
	// only the name column.
	FindByCredentials(ctx context.Context, name, senha string) (*domain.AdminCredential, error)
	// FindByName returns the row for name including its stored senha.
	FindByName(ctx context.Context, name string) (*domain.AdminCredential, error)
}

type adminRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewAdminRepository creates a new instance of AdminRepository
func NewAdminRepository(db *sql.DB, timeout time.Duration) AdminRepository {
	return &adminRepository{db: db, timeout: timeout}
}

func (r *adminRepository) FindByCredentials(ctx context.Context, name, senha string) (*domain.AdminCredential, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT name FROM usersadmin WHERE name = $1 AND senha = $2 LIMIT 2`

	rows, err := r.db.QueryContext(ctx, query, name, senha)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", classify(err))
	}

	return scanSingleAdmin(rows, func(admin *domain.AdminCredential) []interface{} {
		return []interface{}{&admin.Name}
	})
}

func (r *adminRepository) FindByName(ctx context.Context, name string) (*domain.AdminCredential, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT name, senha FROM usersadmin WHERE name = $1 LIMIT 2`

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", classify(err))
	}

	return scanSingleAdmin(rows, func(admin *domain.AdminCredential) []interface{} {
		return []interface{}{&admin.Name, &admin.Senha}
	})
}

// scanSingleAdmin expects zero or one row.
func scanSingleAdmin(rows *sql.Rows, dest func(*domain.AdminCredential) []interface{}) (*domain.AdminCredential, error) {
	defer rows.Close()

	var found *domain.AdminCredential
	for rows.Next() {
		if found != nil {
			return nil, ErrAmbiguousAdmin
		}
		admin := &domain.AdminCredential{}
		if err := rows.Scan(dest(admin)...); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		found = admin
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admins: %w", classify(err))
	}

	if found == nil {
		return nil, ErrAdminNotFound
	}

	return found, nil
}
