package dto

import (
	"time"

	"github.com/tastebase/tastebase/internal/model"
)

// UserResponse is the public representation of a user profile.
type UserResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	IsAdmin           bool      `json:"is_admin"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// FromUser converts a model.User to UserResponse.
func FromUser(u *model.User) *UserResponse {
	return &UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Username:          u.Username,
		Email:             u.Email,
		IsAdmin:           u.IsAdmin,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
	}
}

// FromUsers converts a slice of users.
func FromUsers(users []*model.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = FromUser(u)
	}
	return out
}

// UpdateProfileRequest updates the caller's display fields.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// UploadResponse is returned after a successful media upload.
type UploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ContactRequest is a free-form message to the site operators.
type ContactRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SearchUserRequest is the admin username search body.
type SearchUserRequest struct {
	Username string `json:"username"`
}
