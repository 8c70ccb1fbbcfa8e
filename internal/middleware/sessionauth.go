package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/atinyakov/AdmissionDesk/internal/apperrors"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"go.uber.org/zap"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionResolver looks up a live session by ID.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*models.Session, error)
}

// SessionIDReader extracts the session ID from a request.
type SessionIDReader interface {
	ID(r *http.Request) string
}

// SessionAuth builds middleware that admits only requests carrying a live
// session whose role is one of roles.
//
// Rejected requests are redirected to loginPath with 303 when loginPath is
// non-empty, and answered with 401 otherwise. Storage faults answer 500.
// On success the session is stored in the request context.
func SessionAuth(
	ids SessionIDReader,
	sessions SessionResolver,
	log *zap.Logger,
	loginPath string,
	roles ...models.Role,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Resolve(r.Context(), ids.ID(r))
			switch {
			case err == nil && slices.Contains(roles, sess.Role):
				next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
				return
			case err != nil && !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrSessionExpired):
				log.Error("failed to resolve session", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if loginPath != "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			http.Error(w, "authentication required", http.StatusUnauthorized)
		})
	}
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session admitted by SessionAuth, or nil.
func SessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionKey).(*models.Session)
	return s
}
