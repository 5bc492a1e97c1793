package entity

import (
	"ShopAssistant/pkg/nlp"
	"time"
)

// ChatMessage is one user message together with the assistant's reply.
type ChatMessage struct {
	ID             string
	UserID         string
	SessionID      string
	Message        string
	Response       string
	Intent         nlp.Intent
	Entities       nlp.EntitySet
	FeedbackRating *int
	FeedbackText   string
	FeedbackAt     *time.Time
	CreatedAt      time.Time
}

type ChatSession struct {
	SessionID    string
	MessageCount int
	FirstMessage time.Time
	LastMessage  time.Time
}

type Feedback struct {
	Rating      int
	Text        string
	SubmittedAt time.Time
}
