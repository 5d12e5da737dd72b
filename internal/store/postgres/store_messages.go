package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	db_models "shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/store"
)

const messageColumns = `id, user_id, whatsapp_message_id, content, sender, metadata, created_at`

const createMessage = `-- name: CreateMessage :one
INSERT INTO messages (user_id, whatsapp_message_id, content, sender, metadata)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + messageColumns + `;
`

// CreateMessage persists one message. Referential integrity to users is
// enforced by the foreign key at write time; the sender check constraint
// restricts the role to the two defined values.
func (s *PostgresStore) CreateMessage(ctx context.Context, arg store.CreateMessageParams) (*db_models.Message, error) {
	row := s.db.QueryRow(ctx, createMessage,
		arg.UserID,
		arg.WhatsAppMessageID,
		arg.Content,
		arg.Sender,
		arg.Metadata,
	)
	var m db_models.Message
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.WhatsAppMessageID,
		&m.Content,
		&m.Sender,
		&m.Metadata,
		&m.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create message",
			zap.Int64("user_id", arg.UserID),
			zap.String("whatsapp_message_id", arg.WhatsAppMessageID),
			zap.Error(err))
		return nil, fmt.Errorf("database error creating message: %w", err)
	}
	return &m, nil
}

const getUserMessages = `-- name: GetUserMessages :many
SELECT ` + messageColumns + `
FROM messages
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2;
`

// GetUserMessages retrieves the latest messages for a user, newest first.
// Creation-timestamp ties are broken by insertion order (id).
func (s *PostgresStore) GetUserMessages(ctx context.Context, userID int64, limit int) ([]db_models.Message, error) {
	rows, err := s.db.Query(ctx, getUserMessages, userID, limit)
	if err != nil {
		s.logger.Error("failed to fetch user messages",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("database error fetching messages: %w", err)
	}
	defer rows.Close()

	messages := []db_models.Message{}
	for rows.Next() {
		var m db_models.Message
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.WhatsAppMessageID,
			&m.Content,
			&m.Sender,
			&m.Metadata,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return messages, nil
}

const hasUserMessage = `-- name: HasUserMessage :one
SELECT EXISTS (
    SELECT 1 FROM messages
    WHERE whatsapp_message_id = $1 AND sender = 'user'
);
`

// HasUserMessage reports whether an inbound message with the given provider
// id was already persisted. Webhook providers deliver at least once; the
// pipeline probes this before any write.
func (s *PostgresStore) HasUserMessage(ctx context.Context, whatsappMessageID string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, hasUserMessage, whatsappMessageID).Scan(&exists); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		s.logger.Error("failed to probe message existence",
			zap.String("whatsapp_message_id", whatsappMessageID), zap.Error(err))
		return false, fmt.Errorf("database error probing message: %w", err)
	}
	return exists, nil
}
