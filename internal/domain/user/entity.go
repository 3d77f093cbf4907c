// Package user defines the user domain entity
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account in the system.
type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
	lastLoginAt  *time.Time
}

// NewUser creates a new user with a hashed password.
func NewUser(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: string(hash),
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// RehydrateUser reconstructs a user from persisted state.
func RehydrateUser(
	id uuid.UUID,
	email, name, passwordHash string,
	isActive bool,
	createdAt, updatedAt time.Time,
	lastLoginAt *time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		lastLoginAt:  lastLoginAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID {
	return u.id
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// PasswordHash returns the bcrypt hash of the user's password.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// IsActive reports whether the account is active.
func (u *User) IsActive() bool {
	return u.isActive
}

// CreatedAt returns when the account was created.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the account was last updated.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// LastLoginAt returns the time of the last successful login, if any.
func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

// Authenticate verifies the given password against the stored hash.
func (u *User) Authenticate(password string) error {
	if !u.isActive {
		return ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// UpdateName changes the user's display name.
func (u *User) UpdateName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	u.name = name
	u.updatedAt = time.Now()
	return nil
}

// ChangePassword verifies the current password and installs a new one.
func (u *User) ChangePassword(current, next string) error {
	if err := u.Authenticate(current); err != nil {
		return err
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.passwordHash = string(hash)
	u.updatedAt = time.Now()
	return nil
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrNameTooShort
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}
