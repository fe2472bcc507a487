package domain

import (
	"errors"
	"time"
)

// Role is the closed set of actor roles in the marketplace.
type Role string

const (
	RoleGardener  Role = "gardener"
	RoleLandowner Role = "landowner"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGardener, RoleLandowner, RoleAdmin:
		return true
	}
	return false
}

// VerificationStatus is the admin review state for users and plots.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Valid reports whether v is one of the known verification states.
func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")

// Document is a stored reference to an uploaded file. The marketplace only
// keeps the reference; file storage itself lives outside this service.
type Document struct {
	Name string `json:"name" bson:"name"`
	URL  string `json:"url" bson:"url"`
}

// User models a registered actor: a gardener, a landowner, or an admin.
type User struct {
	ID                 string             `json:"id" bson:"-"`
	Name               string             `json:"name" bson:"name"`
	Email              string             `json:"email" bson:"email"`
	PasswordHash       string             `json:"-" bson:"password_hash"`
	Role               Role               `json:"role" bson:"role"`
	Phone              string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address            string             `json:"address,omitempty" bson:"address,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status" bson:"verification_status"`
	RejectionReason    string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	Documents          []Document         `json:"documents" bson:"documents"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsVerified is derived from the verification status; it is never stored.
func (u *User) IsVerified() bool {
	return u.VerificationStatus == VerificationApproved
}
