package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/atinyakov/AdmissionDesk/internal/apperrors"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"github.com/google/uuid"
)

// DefaultSessionTTL is used when a non-positive TTL is configured.
const DefaultSessionTTL = 12 * time.Hour

// SessionRepository defines the persistence operations needed by the SessionService.
type SessionRepository interface {
	CreateSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// SessionService issues, resolves and revokes login sessions.
type SessionService struct {
	repo SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewSessionService constructs a SessionService whose sessions live for ttl.
func NewSessionService(repo SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{repo: repo, ttl: ttl, now: time.Now}
}

// Issue starts a session for username with the given role.
func (s *SessionService) Issue(ctx context.Context, role models.Role, username string) (*models.Session, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		Role:      role,
		Username:  username,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, apperrors.Storage("issue session", err)
	}
	return &sess, nil
}

// Resolve returns the live session for id. Unknown IDs yield
// apperrors.ErrNotFound and expired ones apperrors.ErrSessionExpired.
func (s *SessionService) Resolve(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, apperrors.ErrNotFound
	}
	sess, err := s.repo.GetSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Storage("resolve session", err)
	}
	if !s.now().Before(sess.ExpiresAt) {
		return nil, apperrors.ErrSessionExpired
	}
	return sess, nil
}

// Revoke ends the session with the given id. Empty IDs are ignored.
func (s *SessionService) Revoke(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return apperrors.Storage("revoke session", s.repo.DeleteSession(ctx, id))
}
