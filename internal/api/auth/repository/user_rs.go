package authRepository

import (
	"ShopAssistant/internal/api/auth"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"time"
)

const uniqueViolation = "23505"

type UserDB struct {
	ID           sql.NullString `db:"id"`
	Username     sql.NullString `db:"username"`
	Email        sql.NullString `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

func (r *userRepository) CreateUser(c context.Context, user entity.User) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"is_active":     user.IsActive,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUser")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		if dup := duplicateError(err); dup != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("User already exists")
			return dup
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating user")
		return err
	}

	return nil
}

func (r *userRepository) GetByID(c context.Context, id string) (entity.User, error) {
	return r.getOne(c, queryGetByID, map[string]interface{}{"id": id}, "GetByID")
}

func (r *userRepository) GetByUsername(c context.Context, username string) (entity.User, error) {
	return r.getOne(c, queryGetByUsername, map[string]interface{}{"username": username}, "GetByUsername")
}

func (r *userRepository) GetByEmail(c context.Context, email string) (entity.User, error) {
	return r.getOne(c, queryGetByEmail, map[string]interface{}{"email": email}, "GetByEmail")
}

// GetByLogin finds a user whose username or email equals login.
func (r *userRepository) GetByLogin(c context.Context, login string) (entity.User, error) {
	return r.getOne(c, queryGetByLogin, map[string]interface{}{"login": login}, "GetByLogin")
}

func (r *userRepository) UpdateProfile(c context.Context, user entity.User) error {
	argsKV := map[string]interface{}{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"updated_at": time.Now(),
	}
	return r.exec(c, queryUpdateProfile, argsKV, "UpdateProfile")
}

func (r *userRepository) UpdatePassword(c context.Context, id string, passwordHash string) error {
	argsKV := map[string]interface{}{
		"id":            id,
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	}
	return r.exec(c, queryUpdatePassword, argsKV, "UpdatePassword")
}

func (r *userRepository) getOne(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	var user UserDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.User{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Debug(op + " no rows found")
			return entity.User{}, auth.ErrUserNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.User{}, err
	}

	return makeUser(user), nil
}

func (r *userRepository) exec(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}

// duplicateError maps a unique violation on users to the matching domain
// error, or returns nil.
func duplicateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case "users_username_key":
		return auth.ErrUsernameAlreadyExists
	case "users_email_key":
		return auth.ErrEmailAlreadyExists
	}
	return nil
}

func makeUser(user UserDB) entity.User {
	return entity.User{
		ID:           user.ID.String,
		Username:     user.Username.String,
		Email:        user.Email.String,
		PasswordHash: user.PasswordHash.String,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt.Time,
		UpdatedAt:    user.UpdatedAt.Time,
	}
}
