package model

import "time"

// ContactMessage is a free-form message submitted by a user.
// Read and deleted by admins only.
type ContactMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
