// Package http provides the HTTP handlers, static page table and router of
// the admissions server.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/atinyakov/AdmissionDesk/internal/apperrors"
	"github.com/atinyakov/AdmissionDesk/internal/middleware"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"go.uber.org/zap"
)

// AuthService defines the credential operations required by the HTTP handlers.
type AuthService interface {
	// VerifyStaff returns nil when password matches the staff user,
	// apperrors.ErrNotFound for an unknown user and
	// apperrors.ErrUnauthorized for a wrong password.
	VerifyStaff(ctx context.Context, username, password string) error
	// VerifyAdmin has the same contract as VerifyStaff for admin users.
	VerifyAdmin(ctx context.Context, username, password string) error
	// AddStaff stores a new staff credential.
	AddStaff(ctx context.Context, username, password string) error
}

// SessionService issues, resolves and revokes login sessions.
type SessionService interface {
	Issue(ctx context.Context, role models.Role, username string) (*models.Session, error)
	Resolve(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string) error
}

// CookieJar carries the session ID between requests.
type CookieJar interface {
	ID(r *http.Request) string
	Set(w http.ResponseWriter, r *http.Request, id string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler handles staff and admin login, logout and staff creation.
type AuthHandler struct {
	AuthService AuthService
	Sessions    SessionService
	Cookies     CookieJar
	Logger      *zap.Logger
}

// CredentialsRequest is the login and add-user payload, posted either as a
// form or as JSON.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const (
	internalErrorMessage  = "Internal Server Error"
	wrongPasswordMessage  = "Login unsuccessful: Incorrect password"
	unknownStaffMessage   = "Login unsuccessful: Login Details not found"
	adminLoginFailMessage = "Login unsuccessful: Incorrect username or password"
	invalidRequestMessage = "invalid request"
	staffLandingPath      = "/admission_data"
	adminLandingPath      = "/adduser"
	afterLogoutPath       = "/"
)

// StaffLogin handles POST /staff_login.
// A correct pair starts a staff session and redirects to the admissions
// table; a wrong password answers 401 and an unknown user 404.
func (h *AuthHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, invalidRequestMessage, http.StatusBadRequest)
		return
	}

	err = h.AuthService.VerifyStaff(r.Context(), creds.Username, creds.Password)
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		http.Error(w, wrongPasswordMessage, http.StatusUnauthorized)
		return
	case errors.Is(err, apperrors.ErrNotFound):
		http.Error(w, unknownStaffMessage, http.StatusNotFound)
		return
	case err != nil:
		h.Logger.Error("error logging in", zap.String("role", string(models.RoleStaff)), zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	if !h.startSession(w, r, models.RoleStaff, creds.Username) {
		return
	}
	http.Redirect(w, r, staffLandingPath, http.StatusSeeOther)
}

// AdminLogin handles POST /admin.
// A correct pair starts an admin session and redirects to the add-user page;
// any unknown user or wrong password answers 401.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, invalidRequestMessage, http.StatusBadRequest)
		return
	}

	err = h.AuthService.VerifyAdmin(r.Context(), creds.Username, creds.Password)
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrNotFound):
		http.Error(w, adminLoginFailMessage, http.StatusUnauthorized)
		return
	case err != nil:
		h.Logger.Error("error logging in", zap.String("role", string(models.RoleAdmin)), zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	if !h.startSession(w, r, models.RoleAdmin, creds.Username) {
		return
	}
	http.Redirect(w, r, adminLandingPath, http.StatusSeeOther)
}

// AddUser handles POST /add: it stores a new staff credential and returns
// to the add-user page. Duplicate usernames are accepted.
func (h *AuthHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, invalidRequestMessage, http.StatusBadRequest)
		return
	}

	var addedBy string
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		addedBy = sess.Username
	}

	if err := h.AuthService.AddStaff(r.Context(), creds.Username, creds.Password); err != nil {
		h.Logger.Error("error adding user", zap.String("admin", addedBy), zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	h.Logger.Info("staff user added", zap.String("username", creds.Username), zap.String("admin", addedBy))
	http.Redirect(w, r, adminLandingPath, http.StatusSeeOther)
}

// Logout handles POST /logout: it revokes the current session, if any,
// clears the cookie and redirects home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Revoke(r.Context(), h.Cookies.ID(r)); err != nil {
		h.Logger.Error("error revoking session", zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	if err := h.Cookies.Clear(w, r); err != nil {
		h.Logger.Warn("error clearing session cookie", zap.Error(err))
	}
	http.Redirect(w, r, afterLogoutPath, http.StatusSeeOther)
}

// startSession replaces any session carried by r with a fresh one for
// username. It writes a 500 and returns false on failure.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, role models.Role, username string) bool {
	if err := h.Sessions.Revoke(r.Context(), h.Cookies.ID(r)); err != nil {
		h.Logger.Warn("error revoking previous session", zap.Error(err))
	}

	sess, err := h.Sessions.Issue(r.Context(), role, username)
	if err != nil {
		h.Logger.Error("error issuing session", zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return false
	}
	if err := h.Cookies.Set(w, r, sess.ID); err != nil {
		h.Logger.Error("error writing session cookie", zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return false
	}
	return true
}

func decodeCredentials(r *http.Request) (CredentialsRequest, error) {
	var req CredentialsRequest
	if isJSON(r) {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Username = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")
	return req, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
