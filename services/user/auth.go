package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"

	userRepo "bookwise/database/repository/user"
	"bookwise/models"
	"bookwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if !emailPattern.MatchString(email) {
		return nil, invalid("Invalid email format")
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalid(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, invalid("Role must be one of admin, user")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again: %w", err)
	}
	if existing != nil {
		if existing.Status == models.UserDeleted {
			return nil, conflict(fmt.Sprintf("Email %s belonged to a deleted account", email))
		}
		return nil, conflict(fmt.Sprintf("Email %s is already in use", email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Status:    models.UserActive,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	auth := &models.Auth{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		HashedPassword: string(hashed),
	}

	err = s.Repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Repo.Create(ctx, user); err != nil {
			return err
		}
		return s.Repo.CreateAuth(ctx, auth)
	})
	if err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.GetLogger().Info("User registered", zap.String("userId", user.ID))
	return user, nil
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again: %w", err)
	}
	if user == nil {
		return nil, unauthorized("Invalid email or password")
	}
	if err := checkActive(user); err != nil {
		return nil, err
	}

	auth, err := s.Repo.GetAuthByUserID(ctx, user.ID)
	if errors.Is(err, userRepo.ErrAuthNotFound) {
		return nil, conflict("Account auth data not found")
	}
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(auth.HashedPassword), []byte(req.Password)) != nil {
		return nil, unauthorized("Invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token must be the one
// most recently issued to the user.
func (s *DefaultUserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, unauthorized("Invalid refresh token")
	}

	user, err := s.Repo.GetByID(ctx, claims.Subject)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, unauthorized("User is signed out or has an invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	if err := checkActive(user); err != nil {
		return nil, err
	}

	auth, err := s.Repo.GetAuthByUserID(ctx, user.ID)
	if errors.Is(err, userRepo.ErrAuthNotFound) {
		return nil, unauthorized("User is signed out or has an invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	if auth.HashedRefreshToken == "" {
		return nil, unauthorized("Refresh token has been revoked. Please log in again.")
	}
	if subtle.ConstantTimeCompare([]byte(auth.HashedRefreshToken), []byte(utils.HashToken(refreshToken))) != 1 {
		return nil, unauthorized("Invalid refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token and blacklists the access token for the rest
// of its lifetime.
func (s *DefaultUserService) Logout(ctx context.Context, userID, accessToken string) error {
	auth, err := s.Repo.GetAuthByUserID(ctx, userID)
	if errors.Is(err, userRepo.ErrAuthNotFound) {
		return notFound("User auth data not found")
	}
	if err != nil {
		return err
	}
	if auth.HashedRefreshToken == "" {
		return invalid("User refresh token does not exist")
	}
	if err := s.Repo.SetRefreshTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	if accessToken == "" || s.Blacklist == nil {
		return nil
	}
	claims, err := utils.ParseToken(accessToken, utils.TokenTypeAccess)
	if err != nil {
		return nil
	}
	remaining := s.secondsUntil(claims.ExpiresAt)
	if err := s.Blacklist.Revoke(ctx, accessToken, remaining); err != nil {
		utils.GetLogger().Warn("Logout: failed to blacklist access token", zap.String("userId", userID), zap.Error(err))
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	return nil
}

func (s *DefaultUserService) issueTokens(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	access, _, err := utils.GenerateToken(user.ID, user.Email, utils.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, _, err := utils.GenerateToken(user.ID, user.Email, utils.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.Repo.SetRefreshTokenHash(ctx, user.ID, utils.HashToken(refresh)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &models.AuthResponse{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func checkActive(user *models.User) error {
	switch user.Status {
	case models.UserSuspended:
		return unauthorized("User account is deactivated")
	case models.UserDeleted:
		return unauthorized("User account is deleted")
	}
	return nil
}
