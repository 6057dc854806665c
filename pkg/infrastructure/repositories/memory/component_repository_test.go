package memory

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func sequentialIDs() func() entities.ComponentID {
	next := 0
	return func() entities.ComponentID {
		next++
		return entities.ComponentID(fmt.Sprintf("comp-%d", next))
	}
}

func TestComponentRepository_AddAndGet(t *testing.T) {
	repo := NewComponentRepository(4)
	repo.newID = sequentialIDs()

	added, err := repo.Add(" Motor 24V ", 12, 28, decimal.RequireFromString("41.50"))
	if err != nil {
		t.Fatalf("Failed to add component: %v", err)
	}
	if added.ID != "comp-1" {
		t.Errorf("Expected id comp-1, got %s", added.ID)
	}
	if added.Name != "Motor 24V" {
		t.Errorf("Expected trimmed name, got %q", added.Name)
	}

	got, err := repo.Get("comp-1")
	if err != nil {
		t.Fatalf("Failed to get component: %v", err)
	}
	if got.Stock != 12 || got.LeadTimeDays != 28 {
		t.Errorf("Expected stock 12 lead 28, got stock %d lead %d", got.Stock, got.LeadTimeDays)
	}

	if _, err := repo.Get("comp-9"); err == nil || err.Error() != "component not found: comp-9" {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestComponentRepository_AddValidation(t *testing.T) {
	tests := []struct {
		name        string
		compName    string
		stock       entities.Quantity
		lead        int
		expectedErr string
	}{
		{
			name:        "empty name",
			compName:    "",
			expectedErr: "name: component name cannot be empty",
		},
		{
			name:        "negative stock",
			compName:    "Bolt",
			stock:       -1,
			expectedErr: "stock: stock cannot be negative, got -1",
		},
		{
			name:        "negative lead time",
			compName:    "Bolt",
			lead:        -3,
			expectedErr: "lead_time_days: lead time cannot be negative, got -3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewComponentRepository(1)
			_, err := repo.Add(tt.compName, tt.stock, tt.lead, decimal.Zero)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if err.Error() != tt.expectedErr {
				t.Errorf("Expected error %q, got %q", tt.expectedErr, err.Error())
			}
			if len(repo.List()) != 0 {
				t.Error("Expected rejected component not to be stored")
			}
		})
	}
}

func TestComponentRepository_UpdateMerges(t *testing.T) {
	repo := NewComponentRepository(2)
	repo.newID = sequentialIDs()
	if _, err := repo.Add("Motor 24V", 12, 28, decimal.Zero); err != nil {
		t.Fatalf("Failed to add component: %v", err)
	}

	stock := entities.Quantity(30)
	updated, err := repo.Update("comp-1", entities.ComponentPatch{Stock: &stock})
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if updated.Stock != 30 || updated.Name != "Motor 24V" || updated.LeadTimeDays != 28 {
		t.Errorf("Expected merge update, got %+v", updated)
	}

	if _, err := repo.Update("comp-2", entities.ComponentPatch{}); !entities.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestComponentRepository_FindByNameFirstMatchWins(t *testing.T) {
	repo := NewComponentRepository(3)
	repo.newID = sequentialIDs()
	for _, name := range []string{"Wheel", "wheel", "Axle"} {
		if _, err := repo.Add(name, 1, 1, decimal.Zero); err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
	}

	found, ok := repo.FindByName("WHEEL")
	if !ok {
		t.Fatal("Expected a match")
	}
	if found.ID != "comp-1" {
		t.Errorf("Expected first inserted component, got %s", found.ID)
	}

	if !repo.SetStock("wHeEl", 99) {
		t.Fatal("Expected SetStock to match")
	}
	first, _ := repo.Get("comp-1")
	second, _ := repo.Get("comp-2")
	if first.Stock != 99 || second.Stock != 1 {
		t.Errorf("Expected only first match updated, got %d and %d", first.Stock, second.Stock)
	}
	if repo.SetStock("Gearbox", 5) {
		t.Error("Expected unknown name to report false")
	}
}

func TestComponentRepository_DeleteAndRevision(t *testing.T) {
	repo := NewComponentRepository(2)
	repo.newID = sequentialIDs()
	repo.Add("Wheel", 1, 1, decimal.Zero)
	repo.Add("Axle", 1, 1, decimal.Zero)

	before := repo.Revision()
	if err := repo.Delete("comp-1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if repo.Revision() <= before {
		t.Error("Expected revision to advance")
	}

	axle, err := repo.Get("comp-2")
	if err != nil {
		t.Fatalf("Expected remaining component to be reindexed: %v", err)
	}
	if axle.Name != "Axle" {
		t.Errorf("Expected Axle, got %s", axle.Name)
	}
}

func TestComponentRepository_ReplaceRejectsDuplicates(t *testing.T) {
	repo := NewComponentRepository(2)

	err := repo.Replace([]entities.Component{
		{ID: "comp-1", Name: "Wheel"},
		{ID: "comp-1", Name: "Axle"},
	})
	if err == nil || err.Error() != "component already exists: comp-1" {
		t.Errorf("Expected conflict error, got %v", err)
	}
}
