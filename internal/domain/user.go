package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
// ID is the durable numeric identifier carried on reservation messages;
// LoginID is the unique external identifier the user signs in with.
type User struct {
	ID           int64
	LoginID      string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Phone        string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByLoginID(ctx context.Context, loginID string) (*User, error)
}
