package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tastebase/tastebase/internal/model"
)

// Common errors for contact message repository operations.
var (
	ErrContactNotFound = errors.New("contact message not found")
)

// CreateContactMessage inserts a new contact message.
func (r *Repository) CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, user_id, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.UserID,
		msg.Subject,
		msg.Message,
		msg.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

// ListContactMessages retrieves all contact messages, newest first.
func (r *Repository) ListContactMessages(ctx context.Context) ([]*model.ContactMessage, error) {
	query := `
		SELECT id, user_id, COALESCE(subject, ''), message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*model.ContactMessage, 0)
	for rows.Next() {
		var msg model.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contact messages: %w", err)
	}

	return messages, nil
}

// DeleteContactMessage removes a contact message.
func (r *Repository) DeleteContactMessage(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}
