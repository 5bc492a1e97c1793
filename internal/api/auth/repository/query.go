package authRepository

const (
	queryCreateUser = `
INSERT INTO users (id, username, email, password_hash, is_active, created_at, updated_at)
VALUES (:id, :username, :email, :password_hash, :is_active, :created_at, :updated_at)`

	queryUserColumns = `
SELECT id, username, email, password_hash, is_active, created_at, updated_at
FROM users`

	queryGetByID = queryUserColumns + `
    WHERE id = :id`

	queryGetByUsername = queryUserColumns + `
    WHERE username = :username`

	queryGetByEmail = queryUserColumns + `
    WHERE email = :email`

	queryGetByLogin = queryUserColumns + `
    WHERE username = :login OR email = LOWER(:login)
    LIMIT 1`

	queryUpdateProfile = `
UPDATE users
SET username = :username,
    email = :email,
    updated_at = :updated_at
WHERE id = :id`

	queryUpdatePassword = `
UPDATE users
SET password_hash = :password_hash,
    updated_at = :updated_at
WHERE id = :id`
)
