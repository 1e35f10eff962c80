package model

import "time"

// Comment represents a comment on a recipe.
// Comments are append-only: there is no update or delete path.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Author fields are populated on nested reads only.
	AuthorName     string `json:"author_name,omitempty"`
	AuthorUsername string `json:"author_username,omitempty"`
}
