package author

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. Unknown email and
	// wrong password both map here so callers cannot probe which emails
	// are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("email already registered")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrNotFound indicates a missing account.
	ErrNotFound = errors.New("author not found")
	// ErrInvalidRole indicates the provided role is not supported.
	ErrInvalidRole = errors.New("invalid role")
)

// Role identifies the privileges assigned to an account.
type Role string

const (
	// RoleAuthor represents a standard blog author.
	RoleAuthor Role = "author"
	// RoleAdmin represents an administrative account.
	RoleAdmin Role = "admin"
)

// Account models a registered author or admin identity.
// PasswordHash is never serialised; use cases additionally blank it before
// an Account leaves the service layer.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Credentials captures raw credential input for login and Basic auth.
type Credentials struct {
	Email    string
	Password string
}
