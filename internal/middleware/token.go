package middleware

import (
	jwtPkg "ShopAssistant/pkg/jwt"
	redisPkg "ShopAssistant/pkg/redis"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"strings"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

type tokenMiddleware struct {
	revocations redisPkg.IRedis
}

func newTokenMiddleware(revocations redisPkg.IRedis) *tokenMiddleware {
	return &tokenMiddleware{
		revocations: revocations,
	}
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	m.log.WithFields(logrus.Fields{
		"path":      ctx.Path(),
		"method":    ctx.Method(),
		"client_ip": ctx.IP(),
	}).Debug("Incoming authenticated request")

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"error": "Authorization header is missing or malformed",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(ctx)
	}

	user, err := jwtPkg.LoginDataFromClaims(claims)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	if m.token.revocations != nil {
		revoked, err := m.token.revocations.Exists(ctx.UserContext(), jwtPkg.RevokedKey(user.TokenID))
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Error("Token revocation lookup failed")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Authentication temporarily unavailable",
			})
		}
		if revoked {
			m.log.WithFields(logrus.Fields{
				"user_id": user.ID,
			}).Warn("Revoked token presented")
			return unauthorized(ctx)
		}
	}

	ctx.Locals("user", user)
	return ctx.Next()
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}
