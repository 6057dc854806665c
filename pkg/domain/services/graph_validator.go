package services

import (
	"fmt"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// GraphValidator reports structural problems in the subassembly graph. None of them
// block planning; the resolver tolerates all of them.
type GraphValidator struct{}

// NewGraphValidator creates a new graph validator
func NewGraphValidator() *GraphValidator {
	return &GraphValidator{}
}

// DanglingChild is a children entry that names no existing node
type DanglingChild struct {
	ParentID entities.NodeID `json:"parent_id"`
	ChildID  entities.NodeID `json:"child_id"`
}

// DanglingComponent is a requirement whose component id is unknown
type DanglingComponent struct {
	NodeID      entities.NodeID      `json:"node_id"`
	ComponentID entities.ComponentID `json:"component_id"`
}

// ValidationResult contains the results of graph validation
type ValidationResult struct {
	HasCycles             bool                `json:"has_cycles"`
	CyclePaths            [][]entities.NodeID `json:"cycle_paths"`
	DanglingChildren      []DanglingChild     `json:"dangling_children"`
	DanglingComponents    []DanglingComponent `json:"dangling_components"`
	DuplicateRequirements []DanglingComponent `json:"duplicate_requirements"`
	SelfReferences        []entities.NodeID   `json:"self_references"`
	Errors                []string            `json:"errors"`
}

// Valid reports whether no problem was found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateGraph inspects nodes in the given order against the known component ids
func (v *GraphValidator) ValidateGraph(nodes []entities.Subassembly, components []entities.Component) *ValidationResult {
	result := &ValidationResult{
		CyclePaths:            make([][]entities.NodeID, 0),
		DanglingChildren:      make([]DanglingChild, 0),
		DanglingComponents:    make([]DanglingComponent, 0),
		DuplicateRequirements: make([]DanglingComponent, 0),
		SelfReferences:        make([]entities.NodeID, 0),
		Errors:                make([]string, 0),
	}

	known := make(map[entities.NodeID]bool, len(nodes))
	for _, node := range nodes {
		known[node.ID] = true
	}
	stocked := make(map[entities.ComponentID]bool, len(components))
	for _, c := range components {
		stocked[c.ID] = true
	}

	order, adjacency := v.buildAdjacency(nodes)

	for _, node := range nodes {
		for _, child := range node.Children {
			if child == node.ID {
				result.SelfReferences = append(result.SelfReferences, node.ID)
				continue
			}
			if !known[child] {
				result.DanglingChildren = append(result.DanglingChildren, DanglingChild{ParentID: node.ID, ChildID: child})
			}
		}

		seen := make(map[entities.ComponentID]bool, len(node.Components))
		for _, req := range node.Components {
			if seen[req.ComponentID] {
				result.DuplicateRequirements = append(result.DuplicateRequirements, DanglingComponent{NodeID: node.ID, ComponentID: req.ComponentID})
			}
			seen[req.ComponentID] = true
			if !stocked[req.ComponentID] {
				result.DanglingComponents = append(result.DanglingComponents, DanglingComponent{NodeID: node.ID, ComponentID: req.ComponentID})
			}
		}
	}

	result.CyclePaths = v.detectCycles(order, adjacency)
	result.HasCycles = len(result.CyclePaths) > 0

	for _, cycle := range result.CyclePaths {
		result.Errors = append(result.Errors, fmt.Sprintf("cycle detected: %v", cycle))
	}
	for _, id := range result.SelfReferences {
		result.Errors = append(result.Errors, fmt.Sprintf("node lists itself as a child: %s", id))
	}
	if n := len(result.DanglingChildren); n > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("found %d dangling child references", n))
	}
	if n := len(result.DanglingComponents); n > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("found %d unknown component references", n))
	}
	if n := len(result.DuplicateRequirements); n > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("found %d duplicate component requirements", n))
	}

	return result
}

// buildAdjacency keeps only edges between existing, distinct nodes
func (v *GraphValidator) buildAdjacency(nodes []entities.Subassembly) ([]entities.NodeID, map[entities.NodeID][]entities.NodeID) {
	known := make(map[entities.NodeID]bool, len(nodes))
	for _, node := range nodes {
		known[node.ID] = true
	}

	order := make([]entities.NodeID, 0, len(nodes))
	adjacency := make(map[entities.NodeID][]entities.NodeID, len(nodes))
	for _, node := range nodes {
		order = append(order, node.ID)
		children := make([]entities.NodeID, 0, len(node.Children))
		for _, child := range node.Children {
			if child != node.ID && known[child] {
				children = append(children, child)
			}
		}
		adjacency[node.ID] = children
	}
	return order, adjacency
}

// detectCycles uses DFS to find back edges, starting from nodes in order
func (v *GraphValidator) detectCycles(order []entities.NodeID, adjacency map[entities.NodeID][]entities.NodeID) [][]entities.NodeID {
	visited := make(map[entities.NodeID]bool, len(order))
	onStack := make(map[entities.NodeID]bool)
	cycles := make([][]entities.NodeID, 0)

	for _, id := range order {
		if !visited[id] {
			v.dfsDetectCycle(id, adjacency, visited, onStack, nil, &cycles)
		}
	}
	return cycles
}

func (v *GraphValidator) dfsDetectCycle(
	current entities.NodeID,
	adjacency map[entities.NodeID][]entities.NodeID,
	visited map[entities.NodeID]bool,
	onStack map[entities.NodeID]bool,
	path []entities.NodeID,
	cycles *[][]entities.NodeID,
) {
	visited[current] = true
	onStack[current] = true
	path = append(path, current)

	for _, child := range adjacency[current] {
		if !visited[child] {
			v.dfsDetectCycle(child, adjacency, visited, onStack, path, cycles)
			continue
		}
		if !onStack[child] {
			continue
		}
		for i, id := range path {
			if id == child {
				cycle := make([]entities.NodeID, 0, len(path)-i+1)
				cycle = append(cycle, path[i:]...)
				cycle = append(cycle, child)
				*cycles = append(*cycles, cycle)
				break
			}
		}
	}

	onStack[current] = false
}
