package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "bookwise/database/repository/user"
	"bookwise/models"
	"bookwise/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const deleteConfirmation = "DELETE"

func (s *DefaultUserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, notFound("User not found")
	}
	return user, err
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if !emailPattern.MatchString(email) {
				return nil, invalid("Invalid email format")
			}
			other, err := s.Repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, conflict("Email is already in use")
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Location != nil {
		user.Location = strings.TrimSpace(*req.Location)
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *DefaultUserService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return invalid("New passwords do not match")
	}
	if len(req.NewPassword) < minPasswordLength {
		return invalid(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	auth, err := s.Repo.GetAuthByUserID(ctx, userID)
	if errors.Is(err, userRepo.ErrAuthNotFound) {
		return notFound("User not found")
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(auth.HashedPassword), []byte(req.CurrentPassword)) != nil {
		return unauthorized("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.Repo.SetPassword(ctx, userID, string(hashed))
}

// DeleteAccount marks the user deleted and drops its credentials in one transaction.
func (s *DefaultUserService) DeleteAccount(ctx context.Context, userID string, req models.DeleteAccountRequest) error {
	if req.Confirmation != deleteConfirmation {
		return invalid(`Confirmation text must be "DELETE" to proceed`)
	}

	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	auth, err := s.Repo.GetAuthByUserID(ctx, userID)
	if errors.Is(err, userRepo.ErrAuthNotFound) {
		return notFound("User not found")
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(auth.HashedPassword), []byte(req.Password)) != nil {
		return unauthorized("Password is incorrect")
	}

	user.Status = models.UserDeleted
	user.FCMToken = ""
	err = s.Repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Repo.Update(ctx, user); err != nil {
			return err
		}
		return s.Repo.DeleteAuth(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	utils.GetLogger().Info("Account deleted", zap.String("userId", userID))
	return nil
}

func (s *DefaultUserService) RegisterDevice(ctx context.Context, userID, fcmToken string) error {
	fcmToken = strings.TrimSpace(fcmToken)
	if fcmToken == "" {
		return invalid("FCM token is required")
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	user.FCMToken = fcmToken
	return s.Repo.Update(ctx, user)
}

func (s *DefaultUserService) secondsUntil(unix int64) time.Duration {
	return time.Unix(unix, 0).Sub(s.now())
}
