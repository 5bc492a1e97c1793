package chatbotHandler

import (
	chatbotService "ShopAssistant/internal/api/chatbot/service"
	"ShopAssistant/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatbotHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	chatbotService chatbotService.IChatbotService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatbotService.IChatbotService,
) *ChatbotHandler {
	return &ChatbotHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		chatbotService: cs,
	}
}

func (h *ChatbotHandler) Start(srv fiber.Router) {
	chatbot := srv.Group("/chatbot")

	chatbot.Get("/quick-actions", h.HandleQuickActions)

	chatbot.Post("/message", h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter, h.HandleMessage)
	chatbot.Delete("/message/:id", h.middleware.NewTokenMiddleware, h.HandleDeleteMessage)
	chatbot.Get("/history", h.middleware.NewTokenMiddleware, h.HandleGetHistory)
	chatbot.Get("/sessions", h.middleware.NewTokenMiddleware, h.HandleGetSessions)
	chatbot.Delete("/clear-history", h.middleware.NewTokenMiddleware, h.HandleClearHistory)
	chatbot.Post("/feedback", h.middleware.NewTokenMiddleware, h.HandleFeedback)
}
