// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// Service errors.
var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrContactNotFound = errors.New("contact message not found")
	ErrReportNotFound  = errors.New("report not found")

	// ErrNotOwner means the caller is authenticated but does not own the
	// resource it tried to mutate.
	ErrNotOwner = errors.New("caller does not own the resource")

	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")
)

// MissingFieldsError reports which required input fields were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// requireFields returns a MissingFieldsError naming every empty field.
// The fields map preserves insertion order through the names slice.
func requireFields(names []string, values []string) error {
	var missing []string
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, names[i])
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
