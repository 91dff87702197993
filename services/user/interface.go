package user

import (
	"context"
	"time"

	userRepo "bookwise/database/repository/user"
	"bookwise/models"
	"bookwise/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserService covers registration, sessions and self-service account management.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID, accessToken string) error

	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) error
	DeleteAccount(ctx context.Context, userID string, req models.DeleteAccountRequest) error
	RegisterDevice(ctx context.Context, userID, fcmToken string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Blacklist utils.TokenBlacklist

	accessTTL  time.Duration
	refreshTTL time.Duration
	hashCost   int
	now        func() time.Time
}

func NewDefaultUserService(repo userRepo.UserRepository, blacklist utils.TokenBlacklist, accessTTL, refreshTTL time.Duration) *DefaultUserService {
	return &DefaultUserService{
		Repo:       repo,
		Blacklist:  blacklist,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		hashCost:   bcrypt.DefaultCost,
		now:        time.Now,
	}
}
