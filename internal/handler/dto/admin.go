package dto

import (
	"time"

	"github.com/tastebase/tastebase/internal/model"
)

// ContactMessageResponse is a contact message as listed to admins.
type ContactMessageResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FromContactMessages converts a slice of contact messages.
func FromContactMessages(msgs []*model.ContactMessage) []*ContactMessageResponse {
	out := make([]*ContactMessageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = &ContactMessageResponse{
			ID:        m.ID,
			UserID:    m.UserID,
			Subject:   m.Subject,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		}
	}
	return out
}

// ReportUserResponse is the reporter summary in report listings.
type ReportUserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// ReportRecipeResponse is the recipe summary in report listings.
type ReportRecipeResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ReportResponse is a report with reporter and recipe expanded.
type ReportResponse struct {
	ID         string                `json:"id"`
	Reason     string                `json:"reason"`
	ReportedAt time.Time             `json:"reported_at"`
	Reporter   *ReportUserResponse   `json:"reporter,omitempty"`
	Recipe     *ReportRecipeResponse `json:"recipe,omitempty"`
}

// FromReports converts a slice of reports.
func FromReports(reports []*model.Report) []*ReportResponse {
	out := make([]*ReportResponse, len(reports))
	for i, r := range reports {
		resp := &ReportResponse{
			ID:         r.ID,
			Reason:     r.Reason,
			ReportedAt: r.ReportedAt,
		}
		if r.Reporter != nil {
			resp.Reporter = &ReportUserResponse{
				ID:       r.Reporter.ID,
				Name:     r.Reporter.Name,
				Username: r.Reporter.Username,
			}
		}
		if r.Recipe != nil {
			resp.Recipe = &ReportRecipeResponse{
				ID:    r.Recipe.ID,
				Title: r.Recipe.Title,
			}
		}
		out[i] = resp
	}
	return out
}
