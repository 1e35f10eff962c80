// Package model defines domain entities for the application.
package model

import "time"

// User represents an application user profile.
// The row id matches the subject id issued by the identity gateway.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	IsAdmin           bool      `json:"is_admin"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Identity is the resolved caller identity produced by the auth middleware.
// It carries only what the identity gateway asserts about the bearer token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
