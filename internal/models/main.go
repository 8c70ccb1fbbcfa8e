// Package models defines the core data structures for inquiries, credentials and sessions.
package models

import "time"

// Inquiry is one prospective-student submission.
// JSON keys match the form field names posted by the admissions page.
type Inquiry struct {
	// ID is assigned on submission.
	ID string `json:"id"`
	// StudentName is the prospective student's name.
	StudentName string `json:"studname"`
	// ParentName is the parent or guardian's name.
	ParentName string `json:"parentname"`
	// Email is a contact address.
	Email string `json:"email"`
	// Phone is a contact number.
	Phone string `json:"phone"`
	// Grade is the grade applied for.
	Grade string `json:"grade"`
	// YearOfPassing is the year the student finishes their current grade.
	YearOfPassing string `json:"year_of_passing"`
	// PriorSchool is the school the student attends now.
	PriorSchool string `json:"pschool"`
	// ReferralSource records how the family heard about the school.
	ReferralSource string `json:"referral"`
	// CreatedAt is the submission time.
	CreatedAt time.Time `json:"created_at"`
}

// Credential is a stored username and one-way password hash.
// Staff and admin credentials share this shape but live in separate tables.
type Credential struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Role identifies which credential table authorized a session.
type Role string

const (
	// RoleStaff may view and export inquiries.
	RoleStaff Role = "staff"
	// RoleAdmin may additionally create staff credentials.
	RoleAdmin Role = "admin"
)

// Session is an authenticated login that outlives the request that created it.
type Session struct {
	// ID is the opaque token carried in the session cookie.
	ID string
	// Role is the role granted at login.
	Role Role
	// Username is the login name that authenticated.
	Username string
	// ExpiresAt is when the session stops being accepted.
	ExpiresAt time.Time
}
