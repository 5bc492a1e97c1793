package authService

import (
	"ShopAssistant/internal/api/auth"
	authRepository "ShopAssistant/internal/api/auth/repository"
	"ShopAssistant/internal/entity"
	"ShopAssistant/pkg/bcrypt"
	"ShopAssistant/pkg/redis"
	"ShopAssistant/pkg/utils"
	"context"
	"github.com/sirupsen/logrus"
	"time"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
	Password() PasswordDomain
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) (auth.LoginUserResponse, error)
	GetProfile(c context.Context, userID string) (auth.UserResponse, error)
	UpdateProfile(c context.Context, userID string, req auth.UpdateProfileRequest) (auth.UserResponse, error)
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
	Logout(c context.Context, user entity.UserLoginData) error
}

type PasswordDomain interface {
	ChangePassword(c context.Context, userID string, req auth.ChangePasswordRequest) error
}

type authService struct {
	userDomain     UserDomain
	authDomain     AuthDomain
	passwordDomain PasswordDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

func (a *authService) Password() PasswordDomain {
	return a.passwordDomain
}

type tokenIssuer struct {
	log      *logrus.Logger
	tokenTTL time.Duration
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
	tokens      tokenIssuer
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
	tokens      tokenIssuer
}

type passwordDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	tokenTTL time.Duration,
) AuthService {
	tokens := tokenIssuer{log: log, tokenTTL: tokenTTL}

	return &authService{
		userDomain:     &userDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, utils: utils, tokens: tokens},
		authDomain:     &authDomainImpl{log: log, repo: authRepo, redisServer: redisServer, bcryptUtils: bcryptUtils, tokens: tokens},
		passwordDomain: &passwordDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils},
	}
}
