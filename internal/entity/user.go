package entity

import "time"

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserLoginData is the authenticated caller as read from the access token.
type UserLoginData struct {
	ID        string
	Username  string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
