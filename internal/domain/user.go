package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
type User struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// MarkVerified flips email_verified to true. Calling it on an
	// already-verified user is a no-op, not an error.
	MarkVerified(ctx context.Context, id int64) error
}
