package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Doudousmyle42/Vibezone/internal/domain/model"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, tx pgx.Tx, senderUserID, recipientUserID int64, body string, now time.Time) (model.Message, error) {
	if senderUserID <= 0 || recipientUserID <= 0 || strings.TrimSpace(body) == "" {
		return model.Message{}, fmt.Errorf("invalid message payload")
	}
	if tx == nil {
		return model.Message{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var msg model.Message
	err := tx.QueryRow(ctx, `
INSERT INTO messages (
	sender_user_id,
	recipient_user_id,
	body,
	created_at
) VALUES ($1, $2, $3, $4)
RETURNING id, sender_user_id, recipient_user_id, body, created_at
`, senderUserID, recipientUserID, body, now.UTC()).Scan(
		&msg.ID,
		&msg.SenderUserID,
		&msg.RecipientUserID,
		&msg.Body,
		&msg.CreatedAt,
	)
	if err != nil {
		return model.Message{}, fmt.Errorf("create message: %w", err)
	}

	return msg, nil
}

// ListBetween returns the full history between two users, oldest first.
func (r *MessageRepo) ListBetween(ctx context.Context, userID, otherID int64) ([]model.Message, error) {
	if userID <= 0 || otherID <= 0 {
		return nil, fmt.Errorf("invalid message lookup payload")
	}
	if r.pool == nil {
		return []model.Message{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, sender_user_id, recipient_user_id, body, created_at
FROM messages
WHERE
	(sender_user_id = $1 AND recipient_user_id = $2)
	OR (sender_user_id = $2 AND recipient_user_id = $1)
ORDER BY created_at ASC, id ASC
`, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]model.Message, 0, 32)
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.SenderUserID,
			&msg.RecipientUserID,
			&msg.Body,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, msg)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}

	return items, nil
}
