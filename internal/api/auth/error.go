package auth

import (
	"ShopAssistant/pkg/response"
	"net/http"
)

var (
	ErrUsernameAlreadyExists = response.NewError(http.StatusConflict, "username already exists")
	ErrEmailAlreadyExists    = response.NewError(http.StatusConflict, "email already registered")
	ErrInvalidCredentials    = response.NewError(http.StatusUnauthorized, "invalid username or password")
	ErrAccountInactive       = response.NewError(http.StatusUnauthorized, "account is deactivated")
	ErrUserNotFound          = response.NewError(http.StatusNotFound, "user not found")
	ErrWrongPassword         = response.NewError(http.StatusUnauthorized, "current password is incorrect")
	ErrPasswordSame          = response.NewError(http.StatusBadRequest, "new password must differ from the current one")
	ErrInvalidToken          = response.NewError(http.StatusUnauthorized, "invalid token")
	ErrLogout                = response.NewError(http.StatusInternalServerError, "logout failed")
)
