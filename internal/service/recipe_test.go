package service

import (
	"errors"
	"testing"

	"github.com/tastebase/tastebase/internal/model"
)

func TestCheckOwnership(t *testing.T) {
	recipe := &model.Recipe{ID: "r1", CreatedBy: "owner-1"}

	tests := []struct {
		name     string
		callerID string
		wantErr  error
	}{
		{"owner", "owner-1", nil},
		{"other user", "user-2", ErrNotOwner},
		{"empty caller", "", ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOwnership(recipe, tt.callerID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckOwnership() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecipeFields(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		ingredients  []string
		instructions string
		wantMissing  []string
	}{
		{
			name:         "all present",
			title:        "Pho",
			ingredients:  []string{"noodles", "broth"},
			instructions: "Simmer.",
		},
		{
			name:         "missing title",
			ingredients:  []string{"noodles"},
			instructions: "Simmer.",
			wantMissing:  []string{"title"},
		},
		{
			name:        "missing instructions and ingredients",
			title:       "Pho",
			wantMissing: []string{"ingredients", "instructions"},
		},
		{
			name:        "all missing",
			wantMissing: []string{"title", "ingredients", "instructions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecipeFields(tt.title, tt.ingredients, tt.instructions)

			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("validateRecipeFields() = %v, want nil", err)
				}
				return
			}

			var missing *MissingFieldsError
			if !errors.As(err, &missing) {
				t.Fatalf("validateRecipeFields() = %v, want MissingFieldsError", err)
			}
			if len(missing.Fields) != len(tt.wantMissing) {
				t.Fatalf("Fields = %v, want %v", missing.Fields, tt.wantMissing)
			}
			for i, f := range tt.wantMissing {
				if missing.Fields[i] != f {
					t.Errorf("Fields[%d] = %q, want %q", i, missing.Fields[i], f)
				}
			}
		})
	}
}
