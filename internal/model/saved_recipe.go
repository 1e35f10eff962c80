package model

import "time"

// SavedRecipe associates a user with a recipe they bookmarked.
// The (user_id, recipe_id) pair is unique; saving twice is a no-op.
type SavedRecipe struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	// Recipe is populated on nested reads only.
	Recipe *Recipe `json:"recipe,omitempty"`
}
