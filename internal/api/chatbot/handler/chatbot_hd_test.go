package chatbotHandler

import (
	"ShopAssistant/internal/api/chatbot"
	"ShopAssistant/internal/entity"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMiddleware struct{}

func (stubMiddleware) NewRateLimiter(ctx *fiber.Ctx) error { return ctx.Next() }

func (stubMiddleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	ctx.Locals("user", entity.UserLoginData{ID: "u1", Username: "alice"})
	return ctx.Next()
}

func (stubMiddleware) NewRequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error { return ctx.Next() }
}

func (stubMiddleware) GetRequestID(*fiber.Ctx) string { return "test" }

type fakeService struct {
	userID    string
	message   chatbot.MessageRequest
	sessionID string
	err       error
}

func (f *fakeService) ProcessMessage(_ context.Context, userID string, req chatbot.MessageRequest) (*chatbot.MessageResponse, error) {
	f.userID, f.message = userID, req
	if f.err != nil {
		return nil, f.err
	}
	return &chatbot.MessageResponse{MessageID: "m1", UserMessage: req.Message, SessionID: "s1"}, nil
}

func (f *fakeService) GetHistory(_ context.Context, userID string, req chatbot.HistoryRequest) (*chatbot.HistoryResponse, error) {
	f.userID = userID
	return &chatbot.HistoryResponse{
		ChatHistory: []chatbot.ChatMessageResponse{},
		Pagination:  chatbot.HistoryPagination{Page: req.Page, PerPage: req.PerPage},
	}, nil
}

func (f *fakeService) GetSessions(context.Context, string) (*chatbot.SessionListResponse, error) {
	return &chatbot.SessionListResponse{Sessions: []chatbot.SessionResponse{}}, nil
}

func (f *fakeService) ClearHistory(_ context.Context, _ string, sessionID string) (*chatbot.ClearHistoryResponse, error) {
	f.sessionID = sessionID
	return &chatbot.ClearHistoryResponse{Message: "All chat history cleared"}, nil
}

func (f *fakeService) DeleteMessage(context.Context, string, string) error {
	return f.err
}

func (f *fakeService) SubmitFeedback(_ context.Context, _ string, req chatbot.FeedbackRequest) (*chatbot.FeedbackSubmittedResponse, error) {
	return &chatbot.FeedbackSubmittedResponse{Message: "Feedback submitted successfully", MessageID: req.MessageID, Rating: req.Rating}, nil
}

func (f *fakeService) QuickActions() chatbot.QuickActionsResponse {
	return chatbot.QuickActionsResponse{QuickActions: []chatbot.QuickAction{{Text: "hi"}}}
}

func newTestApp(svc *fakeService) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	New(log, validator.New(), stubMiddleware{}, svc).Start(app.Group("/api/v1"))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, authed bool) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer token")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestHandleMessage(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(svc)

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/message", `{"message":"laptops under $500"}`, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", svc.userID)
	assert.Equal(t, "laptops under $500", svc.message.Message)
	assert.Equal(t, "m1", body["message_id"])
}

func TestHandleMessageRequiresToken(t *testing.T) {
	app := newTestApp(&fakeService{})

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/message", `{"message":"hi"}`, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleMessageValidation(t *testing.T) {
	app := newTestApp(&fakeService{})

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/message", `{"message":""}`, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestHandleMessageServiceError(t *testing.T) {
	app := newTestApp(&fakeService{err: chatbot.ErrEmptyMessage})

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/message", `{"message":"   "}`, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "message cannot be empty", body["error"])
	assert.Equal(t, "EMPTY_MESSAGE", body["code"])
}

func TestHandleGetHistoryDefaults(t *testing.T) {
	app := newTestApp(&fakeService{})

	resp, body := doRequest(t, app, http.MethodGet, "/api/v1/chatbot/history", "", true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, 1.0, pagination["page"])
	assert.Equal(t, 50.0, pagination["per_page"])
}

func TestHandleGetHistoryRejectsLargePage(t *testing.T) {
	app := newTestApp(&fakeService{})

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/chatbot/history?per_page=500", "", true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleClearHistory(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		session string
	}{
		{"without body", "", ""},
		{"with session", `{"session_id":"s1"}`, "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			app := newTestApp(svc)

			resp, _ := doRequest(t, app, http.MethodDelete, "/api/v1/chatbot/clear-history", tt.body, true)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.session, svc.sessionID)
		})
	}
}

func TestHandleDeleteMessageNotFound(t *testing.T) {
	app := newTestApp(&fakeService{err: chatbot.ErrMessageNotFound})

	resp, body := doRequest(t, app, http.MethodDelete, "/api/v1/chatbot/message/m9", "", true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "MESSAGE_NOT_FOUND", body["code"])
}

func TestHandleFeedbackRatingRange(t *testing.T) {
	app := newTestApp(&fakeService{})

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/feedback", `{"message_id":"m1","rating":6}`, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/feedback", `{"message_id":"m1","rating":5}`, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 5.0, body["rating"])
}

func TestHandleQuickActionsIsPublic(t *testing.T) {
	app := newTestApp(&fakeService{})

	resp, body := doRequest(t, app, http.MethodGet, "/api/v1/chatbot/quick-actions", "", false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["quick_actions"], 1)
}
