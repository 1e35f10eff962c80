package model

import "time"

// Recipe represents a shared recipe.
// CreatedBy is the owning user id and is immutable after creation;
// only the owner may update or delete the recipe.
type Recipe struct {
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

// IsOwnedBy reports whether userID is the recipe owner.
func (r *Recipe) IsOwnedBy(userID string) bool {
	return r.CreatedBy == userID
}

// RecipeDetail is a recipe with its comments expanded.
// Served by the public recipe detail endpoint.
type RecipeDetail struct {
	Recipe
	Comments []*Comment `json:"comments"`
}
