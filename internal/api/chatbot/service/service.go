package chatbotService

import (
	"ShopAssistant/internal/api/chatbot"
	chatbotRepository "ShopAssistant/internal/api/chatbot/repository"
	"ShopAssistant/pkg/assistant"
	"ShopAssistant/pkg/metrics"
	"ShopAssistant/pkg/utils"
	"context"
	"github.com/sirupsen/logrus"
)

// Assistant answers a single chat message.
type Assistant interface {
	Process(ctx context.Context, message string, userID string) (*assistant.Result, error)
}

type IChatbotService interface {
	ProcessMessage(ctx context.Context, userID string, req chatbot.MessageRequest) (*chatbot.MessageResponse, error)
	GetHistory(ctx context.Context, userID string, req chatbot.HistoryRequest) (*chatbot.HistoryResponse, error)
	GetSessions(ctx context.Context, userID string) (*chatbot.SessionListResponse, error)
	ClearHistory(ctx context.Context, userID string, sessionID string) (*chatbot.ClearHistoryResponse, error)
	DeleteMessage(ctx context.Context, userID string, id string) error
	SubmitFeedback(ctx context.Context, userID string, req chatbot.FeedbackRequest) (*chatbot.FeedbackSubmittedResponse, error)
	QuickActions() chatbot.QuickActionsResponse
}

type chatbotService struct {
	log         *logrus.Logger
	chatbotRepo chatbotRepository.Repository
	assistant   Assistant
	utils       utils.IUtils
	metrics     *metrics.Metrics
}

func NewChatbotService(
	log *logrus.Logger,
	chatbotRepo chatbotRepository.Repository,
	assistant Assistant,
	utils utils.IUtils,
	metrics *metrics.Metrics,
) IChatbotService {
	return &chatbotService{
		log:         log,
		chatbotRepo: chatbotRepo,
		assistant:   assistant,
		utils:       utils,
		metrics:     metrics,
	}
}
