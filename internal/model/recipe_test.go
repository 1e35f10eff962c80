package model

import "testing"

func TestRecipeIsOwnedBy(t *testing.T) {
	recipe := &Recipe{ID: "r1", CreatedBy: "owner-1"}

	if !recipe.IsOwnedBy("owner-1") {
		t.Error("IsOwnedBy(owner) = false, want true")
	}
	if recipe.IsOwnedBy("user-2") {
		t.Error("IsOwnedBy(other) = true, want false")
	}
	if recipe.IsOwnedBy("") {
		t.Error("IsOwnedBy(empty) = true, want false")
	}
}
