package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionMock(t *testing.T) (*PostgresSessionRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresSessionRepository(db), mock
}

func TestCreateSession(t *testing.T) {
	repo, mock := setupSessionMock(t)

	exp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (id, role, username, expires_at) VALUES ($1, $2, $3, $4)`)).
		WithArgs("sid", "staff", "clerk", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateSession(context.Background(), models.Session{
		ID: "sid", Role: models.RoleStaff, Username: "clerk", ExpiresAt: exp,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSession(t *testing.T) {
	repo, mock := setupSessionMock(t)

	exp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, role, username, expires_at FROM sessions WHERE id = $1`)).
		WithArgs("sid").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "username", "expires_at"}).
			AddRow("sid", "admin", "root", exp))

	s, err := repo.GetSession(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, models.Session{ID: "sid", Role: models.RoleAdmin, Username: "root", ExpiresAt: exp}, *s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSession_Unknown(t *testing.T) {
	repo, mock := setupSessionMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM sessions WHERE id = $1`)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSession(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteSession(t *testing.T) {
	repo, mock := setupSessionMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE id = $1`)).
		WithArgs("sid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE id = $1`)).
		WithArgs("gone").
		WillReturnError(errors.New("conn closed"))

	require.NoError(t, repo.DeleteSession(context.Background(), "sid"))
	assert.Error(t, repo.DeleteSession(context.Background(), "gone"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
