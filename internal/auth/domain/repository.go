package domain

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound signals that no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken signals a registration attempt with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository is the persistence port for users.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}
