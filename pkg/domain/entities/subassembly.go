package entities

import (
	"strings"
)

// NodeID identifies a subassembly node. Ids are globally unique across categories.
type NodeID string

// ComponentRequirement is the quantity of a component consumed by ONE unit of a node
type ComponentRequirement struct {
	ComponentID      ComponentID `json:"component_id" yaml:"component_id"`
	RequiredQuantity Quantity    `json:"required_quantity" yaml:"required_quantity"`
}

// Position is the canvas coordinate of a node. It has no effect on planning.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Subassembly is a node of the production graph. Children may point into other
// categories, may dangle and may form cycles; traversals defend against all three.
type Subassembly struct {
	ID             NodeID                 `json:"id" yaml:"id"`
	Name           string                 `json:"name" yaml:"name"`
	Category       CategoryID             `json:"category" yaml:"category"`
	Quantity       Quantity               `json:"quantity" yaml:"quantity"`
	TargetQuantity Quantity               `json:"target_quantity" yaml:"target_quantity"`
	Status         StatusID               `json:"status" yaml:"status"`
	Children       []NodeID               `json:"children" yaml:"children"`
	Components     []ComponentRequirement `json:"components" yaml:"components"`
	Comments       []string               `json:"comments" yaml:"comments"`
	Position       Position               `json:"position" yaml:"position"`
}

// Validate checks the node invariants
func (s *Subassembly) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return NewValidationError("name", "subassembly name cannot be empty")
	}
	if s.Category == "" {
		return NewValidationError("category", "category cannot be empty")
	}
	if s.Quantity < 0 {
		return NewValidationError("quantity", "quantity cannot be negative, got %d", s.Quantity)
	}
	if s.TargetQuantity < 1 {
		return NewValidationError("target_quantity", "target quantity must be at least 1, got %d", s.TargetQuantity)
	}
	for _, child := range s.Children {
		if child == s.ID {
			return NewValidationError("children", "subassembly cannot be its own child: %s", s.ID)
		}
	}
	for _, req := range s.Components {
		if req.ComponentID == "" {
			return NewValidationError("components", "component id cannot be empty")
		}
		if req.RequiredQuantity < 0 {
			return NewValidationError("components", "required quantity cannot be negative, got %d", req.RequiredQuantity)
		}
	}
	return nil
}

// HasChild reports whether id is a direct child of the node
func (s *Subassembly) HasChild(id NodeID) bool {
	for _, child := range s.Children {
		if child == id {
			return true
		}
	}
	return false
}

// RemoveChild filters id out of the children list and reports whether it was present
func (s *Subassembly) RemoveChild(id NodeID) bool {
	kept := s.Children[:0]
	removed := false
	for _, child := range s.Children {
		if child == id {
			removed = true
			continue
		}
		kept = append(kept, child)
	}
	s.Children = kept
	return removed
}

// Clone returns a deep copy so callers never share slices with the store
func (s Subassembly) Clone() Subassembly {
	out := s
	out.Children = append([]NodeID{}, s.Children...)
	out.Components = append([]ComponentRequirement{}, s.Components...)
	out.Comments = append([]string{}, s.Comments...)
	return out
}

// NewSubassembly holds the fields needed to create a node
type NewSubassembly struct {
	Category       CategoryID             `json:"category"`
	Name           string                 `json:"name"`
	Quantity       Quantity               `json:"quantity"`
	TargetQuantity Quantity               `json:"target_quantity"`
	Status         StatusID               `json:"status"`
	Comments       []string               `json:"comments"`
	Children       []NodeID               `json:"children"`
	Components     []ComponentRequirement `json:"components"`
	Position       Position               `json:"position"`
}

// SubassemblyPatch carries a partial node update. Nil fields are retained; a non-nil
// empty slice clears the list. The owning category is never patched.
type SubassemblyPatch struct {
	Name           *string                 `json:"name,omitempty"`
	Quantity       *Quantity               `json:"quantity,omitempty"`
	TargetQuantity *Quantity               `json:"target_quantity,omitempty"`
	Status         *StatusID               `json:"status,omitempty"`
	Children       *[]NodeID               `json:"children,omitempty"`
	Components     *[]ComponentRequirement `json:"components,omitempty"`
	Comments       *[]string               `json:"comments,omitempty"`
	Position       *Position               `json:"position,omitempty"`
}

// Apply merges the patch into a copy of s and validates the result
func (p SubassemblyPatch) Apply(s Subassembly) (Subassembly, error) {
	out := s.Clone()
	if p.Name != nil {
		out.Name = strings.TrimSpace(*p.Name)
	}
	if p.Quantity != nil {
		out.Quantity = *p.Quantity
	}
	if p.TargetQuantity != nil {
		out.TargetQuantity = *p.TargetQuantity
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Children != nil {
		out.Children = append([]NodeID{}, (*p.Children)...)
	}
	if p.Components != nil {
		out.Components = append([]ComponentRequirement{}, (*p.Components)...)
	}
	if p.Comments != nil {
		out.Comments = append([]string{}, (*p.Comments)...)
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	if err := out.Validate(); err != nil {
		return Subassembly{}, err
	}
	return out, nil
}
