package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// Role is a user's access role. Roles are assigned at registration and
// are not mutable through this service.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account with its profile fields
type User struct {
	ID           UserID
	Username     string
	PasswordHash string // bcrypt hash, never the plaintext
	Role         Role
	Height       float64
	Weight       float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate describes a partial update to a user. A nil field means
// "leave unchanged"; a non-nil field replaces the stored value. This keeps
// "clear to zero" distinguishable from "untouched".
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	Height       *float64
	Weight       *float64

	// UpdatedAt is stamped by the caller on every update
	UpdatedAt time.Time
}

// IsEmpty reports whether the update would touch no fields
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.PasswordHash == nil && u.Height == nil && u.Weight == nil
}

// LoginRecord is an append-only audit entry written on successful login
type LoginRecord struct {
	UserID UserID
	At     time.Time
}
