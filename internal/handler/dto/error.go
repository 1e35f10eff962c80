// Package dto defines request and response types for the HTTP API.
package dto

// ErrorResponse is the standard error body.
// Details carries upstream diagnostics and is never used for flow control.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
