// Package session carries the login session ID between requests in a signed
// and encrypted cookie.
package session

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// CookieName is the name of the session cookie.
const CookieName = "admissions-session"

const idKey = "sid"

// Cookies reads and writes the session ID cookie.
type Cookies struct {
	store *sessions.CookieStore
}

// NewCookies derives signing and encryption keys from secret and returns a
// cookie jar whose cookies live for maxAge. Secure cookies are only sent over HTTPS.
func NewCookies(secret string, maxAge time.Duration, secure bool) *Cookies {
	authKey := sha256.Sum256([]byte(secret + "auth"))
	encKey := sha256.Sum256([]byte(secret + "encryption"))

	store := sessions.NewCookieStore(authKey[:], encKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Cookies{store: store}
}

// ID returns the session ID carried by r, or "" if there is none or the
// cookie fails verification.
func (c *Cookies) ID(r *http.Request) string {
	s, err := c.store.Get(r, CookieName)
	if err != nil {
		return ""
	}
	id, _ := s.Values[idKey].(string)
	return id
}

// Set writes a cookie carrying id.
func (c *Cookies) Set(w http.ResponseWriter, r *http.Request, id string) error {
	// A stale or tampered cookie yields a fresh session alongside the error.
	s, _ := c.store.Get(r, CookieName)
	s.Values[idKey] = id
	return s.Save(r, w)
}

// Clear expires the session cookie.
func (c *Cookies) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := c.store.Get(r, CookieName)
	delete(s.Values, idKey)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
