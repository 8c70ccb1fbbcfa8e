package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/atinyakov/AdmissionDesk/internal/apperrors"
	"github.com/atinyakov/AdmissionDesk/internal/models"
)

// memSessionRepo keeps sessions in a map.
type memSessionRepo struct {
	sessions map[string]models.Session
	err      error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]models.Session{}}
}

func (m *memSessionRepo) CreateSession(ctx context.Context, s models.Session) error {
	if m.err != nil {
		return m.err
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessionRepo) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *memSessionRepo) DeleteSession(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.sessions, id)
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, time.Hour)
	ctx := context.Background()

	sess, err := svc.Issue(ctx, models.RoleStaff, "clerk")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if sess.ID == "" || sess.Role != models.RoleStaff || sess.Username != "clerk" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	got, err := svc.Resolve(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Username != "clerk" {
		t.Errorf("Resolve username = %q; want clerk", got.Username)
	}

	if err := svc.Revoke(ctx, sess.ID); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if _, err := svc.Resolve(ctx, sess.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Resolve after revoke error = %v; want ErrNotFound", err)
	}
}

func TestResolve_Expired(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, time.Minute)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	sess, err := svc.Issue(context.Background(), models.RoleAdmin, "root")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = func() time.Time { return start.Add(time.Minute) }
	if _, err := svc.Resolve(context.Background(), sess.ID); !errors.Is(err, apperrors.ErrSessionExpired) {
		t.Errorf("Resolve error = %v; want ErrSessionExpired", err)
	}
}

func TestResolve_EmptyAndStorageErrors(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, 0)

	if svc.ttl != DefaultSessionTTL {
		t.Errorf("ttl = %v; want %v", svc.ttl, DefaultSessionTTL)
	}
	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Resolve(\"\") error = %v; want ErrNotFound", err)
	}

	repo.err = errors.New("db down")
	if _, err := svc.Resolve(context.Background(), "x"); !errors.Is(err, apperrors.ErrStorage) {
		t.Errorf("Resolve error = %v; want ErrStorage", err)
	}
	if _, err := svc.Issue(context.Background(), models.RoleStaff, "clerk"); !errors.Is(err, apperrors.ErrStorage) {
		t.Errorf("Issue error = %v; want ErrStorage", err)
	}
	if err := svc.Revoke(context.Background(), ""); err != nil {
		t.Errorf("Revoke(\"\") error = %v; want nil", err)
	}
}
