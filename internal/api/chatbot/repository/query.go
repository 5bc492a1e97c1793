package chatbotRepository

const (
	queryCreateMessage = `
INSERT INTO chat_messages (id, user_id, session_id, message, response, intent, entities, created_at)
VALUES (:id, :user_id, :session_id, :message, :response, :intent, :entities, :created_at)`

	queryMessageColumns = `
SELECT id, user_id, session_id, message, response, intent, entities,
       feedback_rating, feedback_text, feedback_at, created_at
FROM chat_messages`

	queryGetMessage = queryMessageColumns + `
WHERE id = :id AND user_id = :user_id`

	querySessionFilter = `
  AND (CAST(:session_id AS TEXT) = '' OR session_id = :session_id)`

	queryListMessages = queryMessageColumns + `
WHERE user_id = :user_id` + querySessionFilter + `
ORDER BY created_at DESC, id DESC
LIMIT :limit OFFSET :offset`

	queryCountMessages = `
SELECT COUNT(*)
FROM chat_messages
WHERE user_id = :user_id` + querySessionFilter

	queryListSessions = `
SELECT session_id,
       COUNT(id) AS message_count,
       MIN(created_at) AS first_message,
       MAX(created_at) AS last_message
FROM chat_messages
WHERE user_id = :user_id
GROUP BY session_id
ORDER BY MAX(created_at) DESC`

	queryDeleteMessages = `
DELETE FROM chat_messages
WHERE user_id = :user_id` + querySessionFilter

	queryDeleteMessage = `
DELETE FROM chat_messages
WHERE id = :id AND user_id = :user_id`

	querySaveFeedback = `
UPDATE chat_messages
SET feedback_rating = :feedback_rating,
    feedback_text = :feedback_text,
    feedback_at = :feedback_at
WHERE id = :id AND user_id = :user_id`
)
