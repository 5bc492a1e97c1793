package authService

import (
	"ShopAssistant/internal/api/auth"
	"ShopAssistant/internal/entity"
	jwtPkg "ShopAssistant/pkg/jwt"
	"strings"
)

func (t tokenIssuer) issue(user entity.User, message string) (auth.LoginUserResponse, error) {
	token, expiresAt, err := jwtPkg.Sign(MakeUserData(user), t.tokenTTL)
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	return auth.LoginUserResponse{
		Message:     message,
		User:        MakeUserResponse(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func MakeUserData(user entity.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
	}
}

func MakeUserResponse(user entity.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
