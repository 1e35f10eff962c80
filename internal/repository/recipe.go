package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/tastebase/tastebase/internal/model"
)

// Common errors for recipe repository operations.
var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// CreateRecipe inserts a new recipe into the database.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	query := `
		INSERT INTO recipes (id, created_by, title, ingredients, description, instructions, image_url, is_ai_generated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		recipe.ID,
		recipe.CreatedBy,
		recipe.Title,
		pq.Array(recipe.Ingredients),
		recipe.Description,
		recipe.Instructions,
		recipe.ImageURL,
		recipe.IsAIGenerated,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	return nil
}

// GetRecipeByID retrieves a recipe by its ID.
func (r *Repository) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error) {
	query := `
		SELECT id, created_by, title, ingredients, COALESCE(description, ''), instructions, COALESCE(image_url, ''), is_ai_generated, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`

	recipe, err := scanRecipe(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	return recipe, nil
}

// GetRecipeDetail retrieves a recipe with its comments and their authors.
func (r *Repository) GetRecipeDetail(ctx context.Context, id string) (*model.RecipeDetail, error) {
	recipe, err := r.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := r.ListCommentsByRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.RecipeDetail{Recipe: *recipe, Comments: comments}, nil
}

// ListRecipes retrieves all recipes, newest first.
func (r *Repository) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	query := `
		SELECT id, created_by, title, ingredients, COALESCE(description, ''), instructions, COALESCE(image_url, ''), is_ai_generated, created_at, updated_at
		FROM recipes
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// ListRecipesByOwner retrieves all recipes created by a user, newest first.
func (r *Repository) ListRecipesByOwner(ctx context.Context, ownerID string) ([]*model.Recipe, error) {
	query := `
		SELECT id, created_by, title, ingredients, COALESCE(description, ''), instructions, COALESCE(image_url, ''), is_ai_generated, created_at, updated_at
		FROM recipes
		WHERE created_by = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by owner: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// UpdateRecipe updates the mutable fields of a recipe.
// Ownership must be checked by the caller before this runs.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	query := `
		UPDATE recipes
		SET title = $2, ingredients = $3, description = $4, instructions = $5, image_url = $6, is_ai_generated = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		recipe.ID,
		recipe.Title,
		pq.Array(recipe.Ingredients),
		recipe.Description,
		recipe.Instructions,
		recipe.ImageURL,
		recipe.IsAIGenerated,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// DeleteRecipe removes a recipe. Comments, saved recipes and reports
// referencing it cascade through foreign keys.
func (r *Repository) DeleteRecipe(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// scanRecipe scans a single recipe row.
func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var recipe model.Recipe
	err := row.Scan(
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
	return &recipe, err
}

func scanRecipes(rows pgx.Rows) ([]*model.Recipe, error) {
	recipes := make([]*model.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}
	return recipes, nil
}
