// Package repository provides PostgreSQL persistence for inquiries,
// staff and admin credentials, and login sessions.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/AdmissionDesk/internal/models"
)

const (
	// Staff usernames are not unique; the earliest row wins.
	selectStaffQuery = `SELECT id, username, password_hash, created_at FROM staff_credentials WHERE username = $1 ORDER BY id LIMIT 1`
	selectAdminQuery = `SELECT id, username, password_hash, created_at FROM admin_credentials WHERE username = $1`
)

// PostgresCredentialRepository stores staff and admin credentials in PostgreSQL.
type PostgresCredentialRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCredentialRepository creates a repository over the given connection.
func NewPostgresCredentialRepository(db *sql.DB) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{DB: db}
}

// FindStaff returns the staff credential for username.
// It returns sql.ErrNoRows (wrapped) when no such user exists.
func (r *PostgresCredentialRepository) FindStaff(ctx context.Context, username string) (*models.Credential, error) {
	return r.find(ctx, selectStaffQuery, username)
}

// FindAdmin returns the admin credential for username.
// It returns sql.ErrNoRows (wrapped) when no such user exists.
func (r *PostgresCredentialRepository) FindAdmin(ctx context.Context, username string) (*models.Credential, error) {
	return r.find(ctx, selectAdminQuery, username)
}

func (r *PostgresCredentialRepository) find(ctx context.Context, query, username string) (*models.Credential, error) {
	var c models.Credential
	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&c.ID, &c.Username, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return &c, nil
}

// CreateStaff inserts a staff credential. Duplicate usernames are accepted.
func (r *PostgresCredentialRepository) CreateStaff(ctx context.Context, username string, passwordHash []byte) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO staff_credentials (username, password_hash) VALUES ($1, $2)`,
		username, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// CreateAdmin inserts an admin credential unless one with the same username
// exists. It reports whether a row was written.
func (r *PostgresCredentialRepository) CreateAdmin(ctx context.Context, username string, passwordHash []byte) (bool, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO admin_credentials (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
		username, passwordHash,
	)
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return n > 0, nil
}
