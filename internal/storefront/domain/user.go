package domain

import (
	"strings"
	"time"
)

// Role is the coarse authorization level attached to a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// RoleForEmail decides the role assigned at registration. An email
// containing "admin" gets the ADMIN role. A deliberate simplification
// carried over from the original system; replacing it needs an explicit
// role-assignment mechanism, not a quiet fix here.
func RoleForEmail(email string) Role {
	if strings.Contains(email, "admin") {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string     // bcrypt encoded
	Role         Role
	MFAEnabled   bool
	MFASecret    *string // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of a user that is safe to return to
// clients: no password hash, no MFA secret.
type PublicUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	MFAEnabled bool      `json:"mfaEnabled"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// Public returns the client-safe projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		MFAEnabled: u.MFAEnabled,
		CreatedAt:  u.CreatedAt,
	}
}
