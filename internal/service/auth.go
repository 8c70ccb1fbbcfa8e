// Package service provides the admissions business logic: credential
// verification, inquiry intake and export, and login sessions. Persistence
// is delegated to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/AdmissionDesk/internal/apperrors"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository defines the persistence operations
// required by the authentication service.
type CredentialRepository interface {
	// FindStaff returns the staff credential for username, or sql.ErrNoRows.
	FindStaff(ctx context.Context, username string) (*models.Credential, error)
	// FindAdmin returns the admin credential for username, or sql.ErrNoRows.
	FindAdmin(ctx context.Context, username string) (*models.Credential, error)
	// CreateStaff stores a staff credential without checking for duplicates.
	CreateStaff(ctx context.Context, username string, passwordHash []byte) error
	// CreateAdmin stores an admin credential unless the username is taken
	// and reports whether it did.
	CreateAdmin(ctx context.Context, username string, passwordHash []byte) (bool, error)
}

// ErrEmptyCredential is returned when a credential is created without a
// username or password.
var ErrEmptyCredential = errors.New("username and password are required")

// AuthService verifies and creates staff and admin credentials.
// Both roles store bcrypt hashes.
type AuthService struct {
	repo CredentialRepository
	cost int
}

// NewAuthService constructs an AuthService hashing at bcrypt.DefaultCost.
func NewAuthService(repo CredentialRepository) *AuthService {
	return NewAuthServiceWithCost(repo, bcrypt.DefaultCost)
}

// NewAuthServiceWithCost constructs an AuthService with an explicit bcrypt work factor.
func NewAuthServiceWithCost(repo CredentialRepository, cost int) *AuthService {
	return &AuthService{repo: repo, cost: cost}
}

// VerifyStaff checks password against the stored staff credential.
// It returns apperrors.ErrNotFound for an unknown username,
// apperrors.ErrUnauthorized for a wrong password and an apperrors.ErrStorage
// wrapped error when the lookup fails.
func (s *AuthService) VerifyStaff(ctx context.Context, username, password string) error {
	return verify(ctx, s.repo.FindStaff, username, password)
}

// VerifyAdmin checks password against the stored admin credential, with the
// same error contract as VerifyStaff.
func (s *AuthService) VerifyAdmin(ctx context.Context, username, password string) error {
	return verify(ctx, s.repo.FindAdmin, username, password)
}

func verify(
	ctx context.Context,
	find func(context.Context, string) (*models.Credential, error),
	username, password string,
) error {
	cred, err := find(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.Storage("lookup credential", err)
	}

	err = bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperrors.ErrUnauthorized
	default:
		return fmt.Errorf("stored hash for %q: %w", username, err)
	}
}

// AddStaff hashes password and stores a new staff credential.
// Usernames are not checked for uniqueness. Empty usernames and passwords
// are rejected with ErrEmptyCredential.
func (s *AuthService) AddStaff(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return apperrors.Storage("create staff", s.repo.CreateStaff(ctx, username, hash))
}

// EnsureAdmin provisions an admin credential if none exists for username.
// It reports whether a new admin was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, ErrEmptyCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	created, err := s.repo.CreateAdmin(ctx, username, hash)
	if err != nil {
		return false, apperrors.Storage("create admin", err)
	}
	return created, nil
}
