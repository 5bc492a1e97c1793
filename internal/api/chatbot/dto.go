package chatbot

import (
	"ShopAssistant/internal/api/product"
	"ShopAssistant/pkg/nlp"
	"time"
)

type MessageRequest struct {
	Message   string `json:"message" validate:"required,max=1000"`
	SessionID string `json:"session_id" validate:"omitempty,max=100"`
}

type MessageResponse struct {
	MessageID   string                    `json:"message_id"`
	UserMessage string                    `json:"user_message"`
	BotResponse string                    `json:"bot_response"`
	Intent      nlp.Intent                `json:"intent"`
	Entities    nlp.EntitySet             `json:"entities"`
	Products    []product.ProductResponse `json:"products"`
	SessionID   string                    `json:"session_id"`
	Timestamp   time.Time                 `json:"timestamp"`
}

type HistoryRequest struct {
	Page      int    `query:"page" validate:"min=1"`
	PerPage   int    `query:"per_page" validate:"min=1,max=100"`
	SessionID string `query:"session_id" validate:"omitempty,max=100"`
}

type FeedbackResponse struct {
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatMessageResponse struct {
	ID        string            `json:"id"`
	Message   string            `json:"message"`
	Response  string            `json:"response"`
	Intent    nlp.Intent        `json:"intent"`
	Entities  nlp.EntitySet     `json:"entities"`
	Feedback  *FeedbackResponse `json:"feedback,omitempty"`
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
}

type HistoryPagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

type HistoryResponse struct {
	ChatHistory []ChatMessageResponse `json:"chat_history"`
	Pagination  HistoryPagination     `json:"pagination"`
	SessionID   string                `json:"session_id,omitempty"`
}

type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	MessageCount int       `json:"message_count"`
	FirstMessage time.Time `json:"first_message"`
	LastMessage  time.Time `json:"last_message"`
}

type SessionListResponse struct {
	Sessions      []SessionResponse `json:"sessions"`
	TotalSessions int               `json:"total_sessions"`
}

type ClearHistoryRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=100"`
}

type ClearHistoryResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

type FeedbackRequest struct {
	MessageID string `json:"message_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback  string `json:"feedback" validate:"omitempty,max=2000"`
}

type FeedbackSubmittedResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
	Rating    int    `json:"rating"`
}

type QuickAction struct {
	Text        string     `json:"text"`
	Intent      nlp.Intent `json:"intent"`
	Description string     `json:"description"`
}

type QuickActionsResponse struct {
	QuickActions []QuickAction `json:"quick_actions"`
}
