package authService

import (
	"ShopAssistant/internal/api/auth"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"strings"
	"time"
)

func (s *userDomainImpl) RegisterUser(c context.Context, req auth.CreateUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginUserResponse{}, err
	}
	defer repo.Rollback()

	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	if err := ensureFree(c, repo.Users.GetByUsername, username, auth.ErrUsernameAlreadyExists); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   username,
			"error":      err.Error(),
		}).Warn("Username check failed")
		return auth.LoginUserResponse{}, err
	}

	if err := ensureFree(c, repo.Users.GetByEmail, email, auth.ErrEmailAlreadyExists); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Email check failed")
		return auth.LoginUserResponse{}, err
	}

	hashedPass, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return auth.LoginUserResponse{}, err
	}

	now := time.Now()
	userID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return auth.LoginUserResponse{}, err
	}

	user := entity.User{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: hashedPass,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.Users.CreateUser(c, user); err != nil {
		return auth.LoginUserResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.LoginUserResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User registered")

	return s.tokens.issue(user, "User registered successfully")
}

func (s *userDomainImpl) GetProfile(c context.Context, userID string) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to get user")
		}
		return auth.UserResponse{}, err
	}

	return MakeUserResponse(user), nil
}

// UpdateProfile changes only the fields present in req, rejecting values
// that belong to another user.
func (s *userDomainImpl) UpdateProfile(c context.Context, userID string, req auth.UpdateProfileRequest) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}
	defer repo.Rollback()

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != user.Username {
			if err := ensureFree(c, repo.Users.GetByUsername, username, auth.ErrUsernameAlreadyExists); err != nil {
				return auth.UserResponse{}, err
			}
			user.Username = username
		}
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if err := ensureFree(c, repo.Users.GetByEmail, email, auth.ErrEmailAlreadyExists); err != nil {
				return auth.UserResponse{}, err
			}
			user.Email = email
		}
	}

	if err := repo.Users.UpdateProfile(c, user); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to update profile")
		return auth.UserResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.UserResponse{}, err
	}

	return MakeUserResponse(user), nil
}

// ensureFree returns taken when lookup finds a user for value.
func ensureFree(c context.Context, lookup func(context.Context, string) (entity.User, error), value string, taken error) error {
	_, err := lookup(c, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, auth.ErrUserNotFound):
		return nil
	default:
		return err
	}
}
