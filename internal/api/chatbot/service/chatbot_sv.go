package chatbotService

import (
	"ShopAssistant/internal/api/chatbot"
	"ShopAssistant/internal/api/product"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	"ShopAssistant/pkg/nlp"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

const (
	defaultHistoryPerPage = 50
	maxHistoryPerPage     = 100
)

var quickActions = []chatbot.QuickAction{
	{Text: "Show me laptops under $1000", Intent: nlp.IntentProductSearch, Description: "Search for affordable laptops"},
	{Text: "What are the latest smartphones?", Intent: nlp.IntentProductSearch, Description: "Browse newest smartphones"},
	{Text: "I need running shoes", Intent: nlp.IntentProductSearch, Description: "Find athletic footwear"},
	{Text: "Show me top rated products", Intent: nlp.IntentRecommendation, Description: "Browse best-rated items"},
	{Text: "What books do you recommend?", Intent: nlp.IntentRecommendation, Description: "Get book recommendations"},
	{Text: "Help me find a gift under $50", Intent: nlp.IntentProductSearch, Description: "Find affordable gifts"},
}

func (s *chatbotService) ProcessMessage(ctx context.Context, userID string, req chatbot.MessageRequest) (*chatbot.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, chatbot.ErrEmptyMessage
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = s.utils.NewSessionID()
	}

	start := time.Now()
	result, err := s.assistant.Process(ctx, message, userID)
	if err != nil {
		s.metrics.MessagesFailed.WithLabelValues("assistant").Inc()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to process message")
		return nil, chatbot.ErrProcessMessage
	}
	s.metrics.ProcessDuration.WithLabelValues(result.Intent.String()).Observe(time.Since(start).Seconds())

	now := time.Now()
	messageID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, chatbot.ErrProcessMessage
	}

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, chatbot.ErrProcessMessage
	}

	record := entity.ChatMessage{
		ID:        messageID,
		UserID:    userID,
		SessionID: sessionID,
		Message:   message,
		Response:  result.Response,
		Intent:    result.Intent,
		Entities:  result.Entities,
		CreatedAt: now,
	}

	if err := repo.Messages.CreateMessage(ctx, record); err != nil {
		s.metrics.MessagesFailed.WithLabelValues("store").Inc()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to save chat message")
		return nil, chatbot.ErrProcessMessage
	}

	s.metrics.MessagesProcessed.WithLabelValues(result.Intent.String()).Inc()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"intent":     result.Intent,
		"products":   len(result.Products),
	}).Debug("Message answered")

	return &chatbot.MessageResponse{
		MessageID:   messageID,
		UserMessage: message,
		BotResponse: result.Response,
		Intent:      result.Intent,
		Entities:    result.Entities,
		Products:    makeProductResponses(result.Products),
		SessionID:   sessionID,
		Timestamp:   now,
	}, nil
}

func (s *chatbotService) GetHistory(ctx context.Context, userID string, req chatbot.HistoryRequest) (*chatbot.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = defaultHistoryPerPage
	}
	if perPage > maxHistoryPerPage {
		perPage = maxHistoryPerPage
	}

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	total, err := repo.Messages.CountMessages(ctx, userID, req.SessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to count chat messages")
		return nil, chatbot.ErrGetHistory
	}

	messages, err := repo.Messages.ListMessages(ctx, userID, req.SessionID, perPage, (page-1)*perPage)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list chat messages")
		return nil, chatbot.ErrGetHistory
	}

	resp := &chatbot.HistoryResponse{
		ChatHistory: make([]chatbot.ChatMessageResponse, 0, len(messages)),
		SessionID:   req.SessionID,
	}
	for _, msg := range messages {
		resp.ChatHistory = append(resp.ChatHistory, makeChatMessageResponse(msg))
	}

	pages := (total + perPage - 1) / perPage
	resp.Pagination = chatbot.HistoryPagination{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}

	return resp, nil
}

func (s *chatbotService) GetSessions(ctx context.Context, userID string) (*chatbot.SessionListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	sessions, err := repo.Messages.ListSessions(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list chat sessions")
		return nil, chatbot.ErrGetHistory
	}

	resp := &chatbot.SessionListResponse{
		Sessions:      make([]chatbot.SessionResponse, 0, len(sessions)),
		TotalSessions: len(sessions),
	}
	for _, session := range sessions {
		resp.Sessions = append(resp.Sessions, chatbot.SessionResponse{
			SessionID:    session.SessionID,
			MessageCount: session.MessageCount,
			FirstMessage: session.FirstMessage,
			LastMessage:  session.LastMessage,
		})
	}

	return resp, nil
}

func (s *chatbotService) ClearHistory(ctx context.Context, userID string, sessionID string) (*chatbot.ClearHistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	deleted, err := repo.Messages.DeleteMessages(ctx, userID, sessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to clear chat history")
		return nil, chatbot.ErrClearHistory
	}

	message := "All chat history cleared"
	if sessionID != "" {
		message = "Chat history cleared for session " + sessionID
	}

	return &chatbot.ClearHistoryResponse{
		Message:      message,
		DeletedCount: deleted,
	}, nil
}

func (s *chatbotService) DeleteMessage(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Messages.DeleteMessage(ctx, userID, id); err != nil {
		if !errors.Is(err, chatbot.ErrMessageNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to delete chat message")
		}
		return err
	}

	return nil
}

func (s *chatbotService) SubmitFeedback(ctx context.Context, userID string, req chatbot.FeedbackRequest) (*chatbot.FeedbackSubmittedResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	msg, err := repo.Messages.GetMessage(ctx, userID, req.MessageID)
	if err != nil {
		return nil, err
	}

	feedback := entity.Feedback{
		Rating:      req.Rating,
		Text:        strings.TrimSpace(req.Feedback),
		SubmittedAt: time.Now(),
	}

	if err := repo.Messages.SaveFeedback(ctx, userID, msg.ID, feedback); err != nil {
		if errors.Is(err, chatbot.ErrMessageNotFound) {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         msg.ID,
			"error":      err.Error(),
		}).Error("Failed to save feedback")
		return nil, chatbot.ErrSubmitFeedback
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, chatbot.ErrSubmitFeedback
	}

	s.metrics.FeedbackRatings.WithLabelValues(msg.Intent.String()).Observe(float64(req.Rating))

	return &chatbot.FeedbackSubmittedResponse{
		Message:   "Feedback submitted successfully",
		MessageID: msg.ID,
		Rating:    req.Rating,
	}, nil
}

func (s *chatbotService) QuickActions() chatbot.QuickActionsResponse {
	actions := make([]chatbot.QuickAction, len(quickActions))
	copy(actions, quickActions)
	return chatbot.QuickActionsResponse{QuickActions: actions}
}

func makeChatMessageResponse(msg entity.ChatMessage) chatbot.ChatMessageResponse {
	resp := chatbot.ChatMessageResponse{
		ID:        msg.ID,
		Message:   msg.Message,
		Response:  msg.Response,
		Intent:    msg.Intent,
		Entities:  msg.Entities,
		SessionID: msg.SessionID,
		Timestamp: msg.CreatedAt,
	}

	if msg.FeedbackRating != nil {
		resp.Feedback = &chatbot.FeedbackResponse{
			Rating: *msg.FeedbackRating,
			Text:   msg.FeedbackText,
		}
		if msg.FeedbackAt != nil {
			resp.Feedback.Timestamp = *msg.FeedbackAt
		}
	}

	return resp
}

func makeProductResponses(products []entity.Product) []product.ProductResponse {
	resp := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, product.ProductResponse{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Price:         p.Price,
			Category:      p.CategoryName,
			CategoryID:    p.CategoryID,
			Brand:         p.Brand,
			ImageURL:      p.ImageURL,
			StockQuantity: p.StockQuantity,
			IsAvailable:   p.IsAvailable,
			Rating:        p.Rating,
			Attributes:    p.Attributes,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	return resp
}
