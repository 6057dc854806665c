package entities

import "testing"

func TestSlugFromName(t *testing.T) {
	testCases := []struct {
		name string
		want CategoryID
	}{
		{"Carts", "carts"},
		{"Control Units", "control-units"},
		{"  Heavy Duty Carts ", "heavy-duty-carts"},
		{"Line  A", "line--a"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := SlugFromName(tc.name); got != tc.want {
			t.Errorf("SlugFromName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCategory_Validation(t *testing.T) {
	category, err := NewCategory("", "Control Units")
	if err != nil {
		t.Fatalf("Expected valid category creation to succeed: %v", err)
	}
	if category.ID != "control-units" {
		t.Errorf("Expected derived id control-units, got %s", category.ID)
	}

	explicit, err := NewCategory("cu", "Control Units")
	if err != nil {
		t.Fatalf("Expected explicit id to be accepted: %v", err)
	}
	if explicit.ID != "cu" {
		t.Errorf("Expected explicit id cu, got %s", explicit.ID)
	}

	_, err = NewCategory("", "   ")
	if err == nil {
		t.Fatal("Expected error for empty category name")
	}
	if err.Error() != "name: category name cannot be empty" {
		t.Errorf("Expected 'name: category name cannot be empty', got '%s'", err.Error())
	}
}

func TestStatusDef_Validation(t *testing.T) {
	if _, err := NewStatusDef("done", "Done", "#00ff00", true); err != nil {
		t.Fatalf("Expected valid status creation to succeed: %v", err)
	}
	if _, err := NewStatusDef("", "Done", "", false); err == nil {
		t.Error("Expected error for empty status id")
	}
	if _, err := NewStatusDef("done", "", "", false); err == nil {
		t.Error("Expected error for empty status name")
	}

	terminal := 0
	for _, status := range DefaultStatuses() {
		if status.Terminal {
			terminal++
		}
	}
	if terminal != 1 {
		t.Errorf("Expected exactly one terminal default status, got %d", terminal)
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsNotFound(NewNotFoundError("component", "comp-9")) {
		t.Error("Expected IsNotFound to match NotFoundError")
	}
	if IsNotFound(NewValidationError("name", "bad")) {
		t.Error("Expected IsNotFound not to match ValidationError")
	}
	conflict := &ConflictError{Resource: "category", Key: "carts"}
	if !IsConflict(conflict) {
		t.Error("Expected IsConflict to match ConflictError")
	}
	if conflict.Error() != "category already exists: carts" {
		t.Errorf("Unexpected conflict message: %s", conflict.Error())
	}
}
