package chatbotRepository

import (
	"ShopAssistant/internal/api/chatbot"
	"ShopAssistant/internal/entity"
	"ShopAssistant/pkg/nlp"
	"context"
	"database/sql"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageColumns = []string{
	"id", "user_id", "session_id", "message", "response", "intent", "entities",
	"feedback_rating", "feedback_text", "feedback_at", "created_at",
}

func newTestClient(t *testing.T) (Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	client, err := New(sqlx.NewDb(db, "postgres"), log).NewClient(false)
	require.NoError(t, err)
	return client, mock
}

func TestCreateMessageEncodesEntities(t *testing.T) {
	client, mock := newTestClient(t)

	maxPrice := 1000.0
	now := time.Now()
	msg := entity.ChatMessage{
		ID:        "m1",
		UserID:    "u1",
		SessionID: "s1",
		Message:   "laptops under $1000",
		Response:  "Here are some laptops",
		Intent:    nlp.IntentProductSearch,
		Entities:  nlp.EntitySet{Category: "Electronics", MaxPrice: &maxPrice},
		CreatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chat_messages")).
		WithArgs("m1", "u1", "s1", msg.Message, msg.Response, "product_search",
			`{"category":"Electronics","max_price":1000}`, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, client.Messages.CreateMessage(context.Background(), msg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMessageNotFound(t *testing.T) {
	client, mock := newTestClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs("missing", "u1").
		WillReturnError(sql.ErrNoRows)

	_, err := client.Messages.GetMessage(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, chatbot.ErrMessageNotFound)
}

func TestListMessagesDecodesFeedback(t *testing.T) {
	client, mock := newTestClient(t)

	now := time.Now()
	rows := sqlmock.NewRows(messageColumns).
		AddRow("m2", "u1", "s1", "hi", "Hello!", "greeting", `{}`, 5, "great", now, now).
		AddRow("m1", "u1", "s1", "books", "Some books", "product_search", `{"category":"Books"}`, nil, nil, nil, now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs("u1", "s1", "s1", 10, 0).
		WillReturnRows(rows)

	messages, err := client.Messages.ListMessages(context.Background(), "u1", "s1", 10, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	require.NotNil(t, messages[0].FeedbackRating)
	assert.Equal(t, 5, *messages[0].FeedbackRating)
	assert.Equal(t, "great", messages[0].FeedbackText)
	assert.Equal(t, nlp.IntentGreeting, messages[0].Intent)

	assert.Nil(t, messages[1].FeedbackRating)
	assert.Nil(t, messages[1].FeedbackAt)
	assert.Equal(t, "Books", messages[1].Entities.Category)
}

func TestDeleteMessagesAcrossSessions(t *testing.T) {
	client, mock := newTestClient(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM chat_messages")).
		WithArgs("u1", "", "").
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := client.Messages.DeleteMessages(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}

func TestDeleteMessageNotOwned(t *testing.T) {
	client, mock := newTestClient(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs("m1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.Messages.DeleteMessage(context.Background(), "u2", "m1")
	assert.ErrorIs(t, err, chatbot.ErrMessageNotFound)
}

func TestSaveFeedback(t *testing.T) {
	client, mock := newTestClient(t)

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("SET feedback_rating = $1")).
		WithArgs(4, "useful", at, "m1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := client.Messages.SaveFeedback(context.Background(), "u1", "m1", entity.Feedback{
		Rating:      4,
		Text:        "useful",
		SubmittedAt: at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSessions(t *testing.T) {
	client, mock := newTestClient(t)

	first := time.Now().Add(-time.Hour)
	last := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY session_id")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "message_count", "first_message", "last_message"}).
			AddRow("s1", 3, first, last))

	sessions, err := client.Messages.ListSessions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].SessionID)
	assert.Equal(t, 3, sessions[0].MessageCount)
	assert.Equal(t, last, sessions[0].LastMessage)
}
