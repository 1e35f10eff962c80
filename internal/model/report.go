package model

import "time"

// Report is a user-submitted report against a recipe.
// Read and deleted by admins only.
type Report struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RecipeID   string    `json:"recipe_id"`
	Reason     string    `json:"reason"`
	ReportedAt time.Time `json:"reported_at"`

	// Reporter and Recipe are populated on nested reads only.
	Reporter *ReportUser   `json:"reporter,omitempty"`
	Recipe   *ReportRecipe `json:"recipe,omitempty"`
}

// ReportUser is the reporter summary embedded in report listings.
type ReportUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// ReportRecipe is the recipe summary embedded in report listings.
type ReportRecipe struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
