package handlerUtil

import (
	"ShopAssistant/internal/api/auth"
	"ShopAssistant/internal/api/chatbot"
	"ShopAssistant/internal/api/product"
	"ShopAssistant/pkg/log"
	"ShopAssistant/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

var errorCodes = []struct {
	err  error
	code string
}{
	// Auth domain errors
	{auth.ErrUsernameAlreadyExists, "USERNAME_ALREADY_EXISTS"},
	{auth.ErrEmailAlreadyExists, "EMAIL_ALREADY_EXISTS"},
	{auth.ErrInvalidCredentials, "INVALID_CREDENTIALS"},
	{auth.ErrAccountInactive, "ACCOUNT_INACTIVE"},
	{auth.ErrUserNotFound, "USER_NOT_FOUND"},
	{auth.ErrWrongPassword, "WRONG_PASSWORD"},
	{auth.ErrPasswordSame, "PASSWORD_SAME"},
	{auth.ErrInvalidToken, "UNAUTHORIZED"},

	// Product domain errors
	{product.ErrProductNotFound, "PRODUCT_NOT_FOUND"},
	{product.ErrCategoryNotFound, "CATEGORY_NOT_FOUND"},
	{product.ErrSearchQueryEmpty, "SEARCH_QUERY_REQUIRED"},
	{product.ErrInvalidPriceRange, "INVALID_PRICE_RANGE"},

	// Chatbot domain errors
	{chatbot.ErrEmptyMessage, "EMPTY_MESSAGE"},
	{chatbot.ErrMessageNotFound, "MESSAGE_NOT_FOUND"},
	{chatbot.ErrProcessMessage, "PROCESS_MESSAGE_FAILED"},
}

func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ""
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		entry := h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		})
		if respErr.Code >= fiber.StatusInternalServerError {
			entry.Error("Operation failed with error response")
		} else {
			entry.Warn("Operation failed with error response")
		}

		return c.Status(respErr.Code).JSON(ErrorResponse{
			Error: err.Error(),
			Code:  errorCode(err),
		})
	}

	if errors.Is(err, fiber.ErrUnauthorized) {
		return h.HandleUnauthorized(c, requestID, "Unauthorized")
	}

	traceID := requestID
	if traceID == "" || traceID == "unknown" {
		traceID = uuid.NewString()
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"trace_id":   traceID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":    "An unexpected error occurred",
		"trace_id": traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
