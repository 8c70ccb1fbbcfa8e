package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/AdmissionDesk/internal/models"
)

// PostgresSessionRepository persists login sessions in PostgreSQL.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a repository over the given connection.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// CreateSession stores a new session.
func (r *PostgresSessionRepository) CreateSession(ctx context.Context, s models.Session) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, role, username, expires_at) VALUES ($1, $2, $3, $4)`,
		s.ID, string(s.Role), s.Username, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("CreateSession: %w", err)
	}
	return nil
}

// GetSession fetches a session by ID, expired or not.
// It returns sql.ErrNoRows (wrapped) for unknown IDs.
func (r *PostgresSessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var (
		s    models.Session
		role string
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, role, username, expires_at FROM sessions WHERE id = $1`, id,
	).Scan(&s.ID, &role, &s.Username, &s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("GetSession: %w", err)
	}
	s.Role = models.Role(role)
	return &s, nil
}

// DeleteSession removes a session. Deleting an unknown ID is not an error.
func (r *PostgresSessionRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("DeleteSession: %w", err)
	}
	return nil
}
