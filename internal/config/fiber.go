package config

import (
	"ShopAssistant/internal/middleware"
	"ShopAssistant/pkg/handlerUtil"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"os"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           "Shop Assistant",
			BodyLimit:         1 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: os.Getenv("APP_ENV") != "test",
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	return app
}

func corsOrigins() string {
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		return origins
	}
	return "*"
}

// newErrorHandler answers errors that escape a handler, such as unknown
// routes, in the same shape the handlers use.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(handlerUtil.ErrorResponse{Error: fiberErr.Message})
		}

		requestID, _ := ctx.Locals(middleware.RequestIDKey).(string)
		return handlerUtil.New(logger).Handle(ctx, requestID, err, ctx.Path(), "unhandled")
	}
}
