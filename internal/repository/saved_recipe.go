package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/tastebase/tastebase/internal/model"
)

// SaveRecipe records that a user bookmarked a recipe.
// The (user_id, recipe_id) pair is unique; saving an already-saved recipe
// is a no-op rather than a duplicate row.
func (r *Repository) SaveRecipe(ctx context.Context, saved *model.SavedRecipe) error {
	query := `
		INSERT INTO saved_recipes (id, user_id, recipe_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, recipe_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		saved.ID,
		saved.UserID,
		saved.RecipeID,
		saved.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}

	return nil
}

// ListSavedRecipes retrieves a user's saved recipes with the recipe rows
// expanded, newest save first.
func (r *Repository) ListSavedRecipes(ctx context.Context, userID string) ([]*model.SavedRecipe, error) {
	query := `
		SELECT s.id, s.user_id, s.recipe_id, s.created_at,
		       r.id, r.created_by, r.title, r.ingredients, COALESCE(r.description, ''), r.instructions, COALESCE(r.image_url, ''), r.is_ai_generated, r.created_at, r.updated_at
		FROM saved_recipes s
		JOIN recipes r ON r.id = s.recipe_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	defer rows.Close()

	saved := make([]*model.SavedRecipe, 0)
	for rows.Next() {
		var (
			s      model.SavedRecipe
			recipe model.Recipe
		)
		if err := scanSavedRecipe(rows, &s, &recipe); err != nil {
			return nil, fmt.Errorf("failed to scan saved recipe: %w", err)
		}
		s.Recipe = &recipe
		saved = append(saved, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read saved recipes: %w", err)
	}

	return saved, nil
}

func scanSavedRecipe(row pgx.Row, s *model.SavedRecipe, recipe *model.Recipe) error {
	return row.Scan(
		&s.ID,
		&s.UserID,
		&s.RecipeID,
		&s.CreatedAt,
		&recipe.ID,
		&recipe.CreatedBy,
		&recipe.Title,
		pq.Array(&recipe.Ingredients),
		&recipe.Description,
		&recipe.Instructions,
		&recipe.ImageURL,
		&recipe.IsAIGenerated,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
}
