package authService

import (
	"ShopAssistant/internal/api/auth"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	jwtPkg "ShopAssistant/pkg/jwt"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"strings"
	"time"
)

func (s *authDomainImpl) Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByLogin(c, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Login for unknown user")
			return auth.LoginUserResponse{}, auth.ErrInvalidCredentials
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get user by login")
		return auth.LoginUserResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.PasswordHash, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Password comparison failed")
		return auth.LoginUserResponse{}, auth.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
		}).Warn("Login for deactivated account")
		return auth.LoginUserResponse{}, auth.ErrAccountInactive
	}

	res, err := s.tokens.issue(user, "Login successful")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.LoginUserResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Token created")

	return res, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authDomainImpl) Logout(c context.Context, user entity.UserLoginData) error {
	requestID := contextPkg.GetRequestID(c)

	if user.TokenID == "" {
		return auth.ErrInvalidToken
	}

	ttl := time.Until(user.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.redisServer.Set(c, jwtPkg.RevokedKey(user.TokenID), user.ID, ttl); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to revoke token")
		return auth.ErrLogout
	}

	return nil
}
