package service

import (
	"errors"
	"testing"
)

func TestRequireFields(t *testing.T) {
	tests := []struct {
		name        string
		names       []string
		values      []string
		wantMissing []string
	}{
		{
			name:   "all present",
			names:  []string{"email", "password"},
			values: []string{"a@b.com", "hunter22"},
		},
		{
			name:        "one missing",
			names:       []string{"email", "password"},
			values:      []string{"", "hunter22"},
			wantMissing: []string{"email"},
		},
		{
			name:        "whitespace counts as missing",
			names:       []string{"email", "password"},
			values:      []string{"a@b.com", "   "},
			wantMissing: []string{"password"},
		},
		{
			name:        "order preserved",
			names:       []string{"name", "username", "email"},
			values:      []string{"", "", ""},
			wantMissing: []string{"name", "username", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireFields(tt.names, tt.values)

			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("requireFields() = %v, want nil", err)
				}
				return
			}

			var missing *MissingFieldsError
			if !errors.As(err, &missing) {
				t.Fatalf("requireFields() = %v, want MissingFieldsError", err)
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

func TestMissingFieldsErrorMessage(t *testing.T) {
	err := &MissingFieldsError{Fields: []string{"title", "instructions"}}
	want := "missing required fields: title, instructions"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
