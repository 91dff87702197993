package userRepo

import (
	"context"
	"errors"

	"bookwise/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrAuthNotFound = errors.New("auth record not found")
)

// UserRepository defines user and credential data access. The two collections
// are written together through WithTransaction.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error

	GetAuthByUserID(ctx context.Context, userID string) (*models.Auth, error)
	CreateAuth(ctx context.Context, auth *models.Auth) error
	SetPassword(ctx context.Context, userID, hashedPassword string) error
	SetRefreshTokenHash(ctx context.Context, userID, hash string) error
	DeleteAuth(ctx context.Context, userID string) error

	// WithTransaction runs fn inside one multi-document transaction. Repository
	// calls made with the ctx passed to fn join that transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
