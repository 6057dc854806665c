package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComponent_Validation(t *testing.T) {
	valid, err := NewComponent("comp-1", "  Motor 24V ", 12, 28, decimal.NewFromFloat(42.5))
	if err != nil {
		t.Fatalf("Expected valid component creation to succeed: %v", err)
	}
	if valid.Name != "Motor 24V" {
		t.Errorf("Expected trimmed name 'Motor 24V', got '%s'", valid.Name)
	}

	testCases := []struct {
		name        string
		id          ComponentID
		compName    string
		stock       Quantity
		leadTime    int
		unitCost    decimal.Decimal
		expectError string
	}{
		{"empty id", "", "Motor", 1, 1, decimal.Zero, "id: component id cannot be empty"},
		{"empty name", "comp-1", "  ", 1, 1, decimal.Zero, "name: component name cannot be empty"},
		{"negative stock", "comp-1", "Motor", -1, 1, decimal.Zero, "stock: stock cannot be negative, got -1"},
		{"negative lead time", "comp-1", "Motor", 1, -3, decimal.Zero, "lead_time_days: lead time cannot be negative, got -3"},
		{"negative cost", "comp-1", "Motor", 1, 1, decimal.NewFromInt(-2), "unit_cost: unit cost cannot be negative, got -2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewComponent(tc.id, tc.compName, tc.stock, tc.leadTime, tc.unitCost)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !IsValidation(err) {
				t.Errorf("Expected a validation error, got %T", err)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestComponentPatch_Apply(t *testing.T) {
	original := Component{ID: "comp-1", Name: "Motor 24V", Stock: 12, LeadTimeDays: 28}

	stock := Quantity(40)
	updated, err := ComponentPatch{Stock: &stock}.Apply(original)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated.Stock != 40 {
		t.Errorf("Expected stock 40, got %d", updated.Stock)
	}
	if updated.Name != "Motor 24V" || updated.LeadTimeDays != 28 {
		t.Errorf("Expected unspecified fields to be retained, got %+v", updated)
	}

	empty := ""
	if _, err := (ComponentPatch{Name: &empty}).Apply(original); err == nil {
		t.Error("Expected error when patching an empty name")
	}
}

func TestSameName(t *testing.T) {
	testCases := []struct {
		a, b string
		want bool
	}{
		{"Motor 24V", "motor 24v", true},
		{" Motor 24V ", "MOTOR 24V", true},
		{"Straße", "STRASSE", true},
		{"Motor 24V", "Motor 12V", false},
	}
	for _, tc := range testCases {
		if got := SameName(tc.a, tc.b); got != tc.want {
			t.Errorf("SameName(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}

	if !NameContains("Control unit SA-10000111", "contro") {
		t.Error("Expected 'contro' to match 'Control unit SA-10000111'")
	}
}
