package services

import (
	"testing"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func node(id entities.NodeID, children ...entities.NodeID) entities.Subassembly {
	return entities.Subassembly{ID: id, Name: string(id), Category: "line", TargetQuantity: 1, Children: children}
}

func TestGraphValidator_DetectSimpleCycle(t *testing.T) {
	nodes := []entities.Subassembly{node("A", "B"), node("B", "A")}

	result := NewGraphValidator().ValidateGraph(nodes, nil)

	if !result.HasCycles {
		t.Fatal("Expected cycle to be detected")
	}
	if len(result.CyclePaths) != 1 {
		t.Fatalf("Expected one cycle path, got %d", len(result.CyclePaths))
	}
	expected := []entities.NodeID{"A", "B", "A"}
	for i, id := range expected {
		if result.CyclePaths[0][i] != id {
			t.Errorf("Cycle position %d: expected %s, got %s", i, id, result.CyclePaths[0][i])
		}
	}
	if result.Valid() {
		t.Error("Expected cyclic graph to be reported invalid")
	}
}

func TestGraphValidator_DetectLongerCycle(t *testing.T) {
	nodes := []entities.Subassembly{node("A", "B"), node("B", "C"), node("C", "A")}

	result := NewGraphValidator().ValidateGraph(nodes, nil)

	if !result.HasCycles {
		t.Fatal("Expected cycle to be detected")
	}
	if got := len(result.CyclePaths[0]); got != 4 {
		t.Errorf("Expected closed cycle of length 4, got %d", got)
	}
}

func TestGraphValidator_DiamondIsNotACycle(t *testing.T) {
	nodes := []entities.Subassembly{
		node("A", "B", "C"),
		node("B", "D"),
		node("C", "D"),
		node("D"),
	}

	result := NewGraphValidator().ValidateGraph(nodes, nil)

	if result.HasCycles {
		t.Errorf("Expected no cycle in a diamond, got %v", result.CyclePaths)
	}
	if !result.Valid() {
		t.Errorf("Expected a valid graph, got errors %v", result.Errors)
	}
}

func TestGraphValidator_DanglingReferences(t *testing.T) {
	parent := node("A", "ghost")
	parent.Components = []entities.ComponentRequirement{
		{ComponentID: "comp-1", RequiredQuantity: 1},
		{ComponentID: "comp-404", RequiredQuantity: 2},
		{ComponentID: "comp-1", RequiredQuantity: 3},
	}
	components := []entities.Component{{ID: "comp-1", Name: "Motor 24V"}}

	result := NewGraphValidator().ValidateGraph([]entities.Subassembly{parent}, components)

	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{name: "dangling children", got: len(result.DanglingChildren), expected: 1},
		{name: "dangling components", got: len(result.DanglingComponents), expected: 1},
		{name: "duplicate requirements", got: len(result.DuplicateRequirements), expected: 1},
		{name: "errors", got: len(result.Errors), expected: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, tt.got)
			}
		})
	}

	if result.DanglingComponents[0].ComponentID != "comp-404" {
		t.Errorf("Expected comp-404 to be flagged, got %s", result.DanglingComponents[0].ComponentID)
	}
}

func TestGraphValidator_SelfReference(t *testing.T) {
	result := NewGraphValidator().ValidateGraph([]entities.Subassembly{node("A", "A")}, nil)

	if len(result.SelfReferences) != 1 {
		t.Fatalf("Expected one self reference, got %d", len(result.SelfReferences))
	}
	if result.HasCycles {
		t.Error("Expected self references to be reported separately from cycles")
	}
	if result.Errors[0] != "node lists itself as a child: A" {
		t.Errorf("Unexpected error message %q", result.Errors[0])
	}
}
