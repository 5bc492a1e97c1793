package chatbotRepository

import (
	"ShopAssistant/internal/api/chatbot"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	"ShopAssistant/pkg/nlp"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type ChatMessageDB struct {
	ID             sql.NullString `db:"id"`
	UserID         sql.NullString `db:"user_id"`
	SessionID      sql.NullString `db:"session_id"`
	Message        sql.NullString `db:"message"`
	Response       sql.NullString `db:"response"`
	Intent         sql.NullString `db:"intent"`
	Entities       sql.NullString `db:"entities"`
	FeedbackRating sql.NullInt64  `db:"feedback_rating"`
	FeedbackText   sql.NullString `db:"feedback_text"`
	FeedbackAt     sql.NullTime   `db:"feedback_at"`
	CreatedAt      sql.NullTime   `db:"created_at"`
}

type ChatSessionDB struct {
	SessionID    sql.NullString `db:"session_id"`
	MessageCount sql.NullInt64  `db:"message_count"`
	FirstMessage sql.NullTime   `db:"first_message"`
	LastMessage  sql.NullTime   `db:"last_message"`
}

func (r *messageRepository) CreateMessage(c context.Context, msg entity.ChatMessage) error {
	requestID := contextPkg.GetRequestID(c)

	entities, err := jsoniter.MarshalToString(msg.Entities)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode message entities")
		return err
	}

	argsKV := map[string]interface{}{
		"id":         msg.ID,
		"user_id":    msg.UserID,
		"session_id": msg.SessionID,
		"message":    msg.Message,
		"response":   msg.Response,
		"intent":     string(msg.Intent),
		"entities":   entities,
		"created_at": msg.CreatedAt,
	}

	_, err = r.exec(c, queryCreateMessage, argsKV, "CreateMessage")
	return err
}

func (r *messageRepository) GetMessage(c context.Context, userID, id string) (entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ChatMessageDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetMessage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMessage named query preparation err")
		return entity.ChatMessage{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ChatMessage{}, chatbot.ErrMessageNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMessage execution err")
		return entity.ChatMessage{}, err
	}

	return r.makeMessage(row), nil
}

// ListMessages returns the newest messages first. An empty sessionID spans
// every session of the user.
func (r *messageRepository) ListMessages(c context.Context, userID, sessionID string, limit, offset int) ([]entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"user_id":    userID,
		"session_id": sessionID,
		"limit":      limit,
		"offset":     offset,
	}

	query, args, err := sqlx.Named(queryListMessages, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListMessages named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []ChatMessageDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListMessages execution err")
		return nil, err
	}

	messages := make([]entity.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, r.makeMessage(row))
	}

	return messages, nil
}

func (r *messageRepository) CountMessages(c context.Context, userID, sessionID string) (int, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"user_id":    userID,
		"session_id": sessionID,
	}

	query, args, err := sqlx.Named(queryCountMessages, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountMessages named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	var total int
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountMessages execution err")
		return 0, err
	}

	return total, nil
}

func (r *messageRepository) ListSessions(c context.Context, userID string) ([]entity.ChatSession, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryListSessions, map[string]interface{}{"user_id": userID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListSessions named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []ChatSessionDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListSessions execution err")
		return nil, err
	}

	sessions := make([]entity.ChatSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, entity.ChatSession{
			SessionID:    row.SessionID.String,
			MessageCount: int(row.MessageCount.Int64),
			FirstMessage: row.FirstMessage.Time,
			LastMessage:  row.LastMessage.Time,
		})
	}

	return sessions, nil
}

func (r *messageRepository) DeleteMessages(c context.Context, userID, sessionID string) (int64, error) {
	argsKV := map[string]interface{}{
		"user_id":    userID,
		"session_id": sessionID,
	}
	return r.exec(c, queryDeleteMessages, argsKV, "DeleteMessages")
}

func (r *messageRepository) DeleteMessage(c context.Context, userID, id string) error {
	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	affected, err := r.exec(c, queryDeleteMessage, argsKV, "DeleteMessage")
	if err != nil {
		return err
	}
	if affected == 0 {
		return chatbot.ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) SaveFeedback(c context.Context, userID, id string, feedback entity.Feedback) error {
	argsKV := map[string]interface{}{
		"id":              id,
		"user_id":         userID,
		"feedback_rating": feedback.Rating,
		"feedback_text":   feedback.Text,
		"feedback_at":     feedback.SubmittedAt,
	}

	affected, err := r.exec(c, querySaveFeedback, argsKV, "SaveFeedback")
	if err != nil {
		return err
	}
	if affected == 0 {
		return chatbot.ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) exec(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) (int64, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return 0, err
	}

	return res.RowsAffected()
}

func (r *messageRepository) makeMessage(row ChatMessageDB) entity.ChatMessage {
	msg := entity.ChatMessage{
		ID:           row.ID.String,
		UserID:       row.UserID.String,
		SessionID:    row.SessionID.String,
		Message:      row.Message.String,
		Response:     row.Response.String,
		Intent:       nlp.Intent(row.Intent.String),
		FeedbackText: row.FeedbackText.String,
		CreatedAt:    row.CreatedAt.Time,
	}

	if row.Entities.Valid && row.Entities.String != "" {
		if err := jsoniter.UnmarshalFromString(row.Entities.String, &msg.Entities); err != nil {
			r.log.WithFields(logrus.Fields{
				"message_id": msg.ID,
				"error":      err.Error(),
			}).Warn("Invalid message entities")
		}
	}

	if row.FeedbackRating.Valid {
		rating := int(row.FeedbackRating.Int64)
		msg.FeedbackRating = &rating
	}
	if row.FeedbackAt.Valid {
		at := row.FeedbackAt.Time
		msg.FeedbackAt = &at
	}

	return msg
}
