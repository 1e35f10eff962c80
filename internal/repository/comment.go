package repository

import (
	"context"
	"fmt"

	"github.com/tastebase/tastebase/internal/model"
)

// CreateComment inserts a new comment.
// Comments are append-only; there is no update or delete method.
func (r *Repository) CreateComment(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, recipe_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.UserID,
		comment.RecipeID,
		comment.Content,
		comment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListCommentsByRecipe retrieves a recipe's comments with author names,
// oldest first.
func (r *Repository) ListCommentsByRecipe(ctx context.Context, recipeID string) ([]*model.Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.recipe_id, c.content, c.created_at, u.name, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.recipe_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.RecipeID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.AuthorName,
			&comment.AuthorUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}
