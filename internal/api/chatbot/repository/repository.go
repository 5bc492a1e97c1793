package chatbotRepository

import (
	"ShopAssistant/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Messages: &messageRepository{q: db, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Messages interface {
		CreateMessage(ctx context.Context, msg entity.ChatMessage) error
		GetMessage(ctx context.Context, userID, id string) (entity.ChatMessage, error)
		ListMessages(ctx context.Context, userID, sessionID string, limit, offset int) ([]entity.ChatMessage, error)
		CountMessages(ctx context.Context, userID, sessionID string) (int, error)
		ListSessions(ctx context.Context, userID string) ([]entity.ChatSession, error)
		DeleteMessages(ctx context.Context, userID, sessionID string) (int64, error)
		DeleteMessage(ctx context.Context, userID, id string) error
		SaveFeedback(ctx context.Context, userID, id string, feedback entity.Feedback) error
	}

	Commit   func() error
	Rollback func() error
}

type messageRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
