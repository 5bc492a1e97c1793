package authService

import (
	"ShopAssistant/internal/api/auth"
	contextPkg "ShopAssistant/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *passwordDomainImpl) ChangePassword(c context.Context, userID string, req auth.ChangePasswordRequest) error {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		return err
	}

	if err := s.bcryptUtils.ComparePassword(user.PasswordHash, req.CurrentPassword); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Current password mismatch")
		return auth.ErrWrongPassword
	}

	if req.NewPassword == req.CurrentPassword {
		return auth.ErrPasswordSame
	}

	hashedPass, err := s.bcryptUtils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return err
	}

	if err := repo.Users.UpdatePassword(c, userID, hashedPass); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update user password")
		return err
	}

	return nil
}
