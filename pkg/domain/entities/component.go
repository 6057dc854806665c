package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ComponentID identifies a leaf inventory component
type ComponentID string

// Quantity represents an integer quantity value for discrete manufacturing units
type Quantity int64

// Component is a leaf inventory item with on-hand stock and a replenishment lead time.
// It is never decomposed further.
type Component struct {
	ID           ComponentID     `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Stock        Quantity        `json:"stock" yaml:"stock"`
	LeadTimeDays int             `json:"lead_time_days" yaml:"lead_time_days"`
	UnitCost     decimal.Decimal `json:"unit_cost" yaml:"unit_cost"`
}

// NewComponent creates a validated Component
func NewComponent(id ComponentID, name string, stock Quantity, leadTimeDays int, unitCost decimal.Decimal) (*Component, error) {
	if string(id) == "" {
		return nil, NewValidationError("id", "component id cannot be empty")
	}
	c := &Component{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Stock:        stock,
		LeadTimeDays: leadTimeDays,
		UnitCost:     unitCost,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the component invariants
func (c *Component) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "component name cannot be empty")
	}
	if c.Stock < 0 {
		return NewValidationError("stock", "stock cannot be negative, got %d", c.Stock)
	}
	if c.LeadTimeDays < 0 {
		return NewValidationError("lead_time_days", "lead time cannot be negative, got %d", c.LeadTimeDays)
	}
	if c.UnitCost.IsNegative() {
		return NewValidationError("unit_cost", "unit cost cannot be negative, got %s", c.UnitCost)
	}
	return nil
}

// String renders the component for logs and CLI output
func (c Component) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// ComponentPatch carries a partial component update. Nil fields are retained.
type ComponentPatch struct {
	Name         *string          `json:"name,omitempty"`
	Stock        *Quantity        `json:"stock,omitempty"`
	LeadTimeDays *int             `json:"lead_time_days,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
}

// Apply merges the patch into a copy of c and validates the result
func (p ComponentPatch) Apply(c Component) (Component, error) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Stock != nil {
		c.Stock = *p.Stock
	}
	if p.LeadTimeDays != nil {
		c.LeadTimeDays = *p.LeadTimeDays
	}
	if p.UnitCost != nil {
		c.UnitCost = *p.UnitCost
	}
	if err := c.Validate(); err != nil {
		return Component{}, err
	}
	return c, nil
}
