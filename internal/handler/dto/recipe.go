package dto

import (
	"time"

	"github.com/tastebase/tastebase/internal/model"
)

// RecipeResponse is the public representation of a recipe.
type RecipeResponse struct {
	ID            string    `json:"id"`
	CreatedBy     string    `json:"created_by"`
	Title         string    `json:"title"`
	Ingredients   []string  `json:"ingredients"`
	Description   string    `json:"description,omitempty"`
	Instructions  string    `json:"instructions"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsAIGenerated bool      `json:"is_ai_generated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromRecipe converts a model.Recipe to RecipeResponse.
func FromRecipe(r *model.Recipe) *RecipeResponse {
	return &RecipeResponse{
		ID:            r.ID,
		CreatedBy:     r.CreatedBy,
		Title:         r.Title,
		Ingredients:   r.Ingredients,
		Description:   r.Description,
		Instructions:  r.Instructions,
		ImageURL:      r.ImageURL,
		IsAIGenerated: r.IsAIGenerated,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromRecipes converts a slice of recipes.
func FromRecipes(recipes []*model.Recipe) []*RecipeResponse {
	out := make([]*RecipeResponse, len(recipes))
	for i, r := range recipes {
		out[i] = FromRecipe(r)
	}
	return out
}

// CommentResponse is a comment with its author expanded.
type CommentResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	RecipeID       string    `json:"recipe_id"`
	Content        string    `json:"content"`
	AuthorName     string    `json:"author_name,omitempty"`
	AuthorUsername string    `json:"author_username,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromComment converts a model.Comment to CommentResponse.
func FromComment(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		RecipeID:       c.RecipeID,
		Content:        c.Content,
		AuthorName:     c.AuthorName,
		AuthorUsername: c.AuthorUsername,
		CreatedAt:      c.CreatedAt,
	}
}

// RecipeDetailResponse is a recipe with its comments.
type RecipeDetailResponse struct {
	RecipeResponse
	Comments []*CommentResponse `json:"comments"`
}

// FromRecipeDetail converts a model.RecipeDetail to RecipeDetailResponse.
func FromRecipeDetail(d *model.RecipeDetail) *RecipeDetailResponse {
	comments := make([]*CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = FromComment(c)
	}
	return &RecipeDetailResponse{
		RecipeResponse: *FromRecipe(&d.Recipe),
		Comments:       comments,
	}
}

// SavedRecipeResponse is a bookmark with its recipe expanded.
type SavedRecipeResponse struct {
	ID        string          `json:"id"`
	RecipeID  string          `json:"recipe_id"`
	CreatedAt time.Time       `json:"created_at"`
	Recipe    *RecipeResponse `json:"recipe,omitempty"`
}

// FromSavedRecipes converts a slice of saved recipes.
func FromSavedRecipes(saved []*model.SavedRecipe) []*SavedRecipeResponse {
	out := make([]*SavedRecipeResponse, len(saved))
	for i, s := range saved {
		resp := &SavedRecipeResponse{
			ID:        s.ID,
			RecipeID:  s.RecipeID,
			CreatedAt: s.CreatedAt,
		}
		if s.Recipe != nil {
			resp.Recipe = FromRecipe(s.Recipe)
		}
		out[i] = resp
	}
	return out
}

// SaveRecipeRequest bookmarks a recipe.
type SaveRecipeRequest struct {
	RecipeID string `json:"recipe_id"`
}

// DeleteRecipeRequest deletes a recipe the caller owns.
type DeleteRecipeRequest struct {
	RecipeID string `json:"recipe_id"`
}

// CreateCommentRequest appends a comment to a recipe.
type CreateCommentRequest struct {
	RecipeID string `json:"recipe_id"`
	Content  string `json:"content"`
}

// ReportRecipeRequest files a report against a recipe.
type ReportRecipeRequest struct {
	RecipeID string `json:"recipe_id"`
	Reason   string `json:"reason"`
}
