package entities

import "github.com/shopspring/decimal"

// PlanTarget asks for Quantity units of one root node, or of every root owned by a
// category when CategoryID is set instead of RootID
type PlanTarget struct {
	RootID     NodeID     `json:"root_id,omitempty"`
	CategoryID CategoryID `json:"category,omitempty"`
	Quantity   Quantity   `json:"quantity"`
}

// PlanItem is one visited node of a flattened production plan
type PlanItem struct {
	NodeID         NodeID                 `json:"node_id"`
	Name           string                 `json:"name"`
	Category       CategoryID             `json:"category"`
	TargetQuantity Quantity               `json:"target_quantity"`
	Children       []NodeID               `json:"children"`
	Components     []ComponentRequirement `json:"components"`
}

// ComponentDemand is the aggregated requirement for one component
type ComponentDemand struct {
	ComponentID ComponentID `json:"component_id"`
	Name        string      `json:"name"`
	Required    Quantity    `json:"required"`
}

// Urgency classifies how soon a short component has to be ordered
type Urgency string

const (
	InStock     Urgency = "in_stock"
	Critical    Urgency = "critical"
	Urgent      Urgency = "urgent"
	SafeToOrder Urgency = "safe_to_order"
)

// String method for Urgency
func (u Urgency) String() string {
	return string(u)
}

// ShortfallRow compares the demand for one component with its stock
type ShortfallRow struct {
	ComponentID   ComponentID     `json:"component_id"`
	Name          string          `json:"name"`
	Required      Quantity        `json:"required"`
	Stock         Quantity        `json:"stock"`
	Shortfall     Quantity        `json:"shortfall"`
	LeadTimeDays  int             `json:"lead_time_days"`
	OrderDeadline *int            `json:"order_deadline,omitempty"` // nil when nothing is short
	Urgency       Urgency         `json:"urgency"`
	OrderCost     decimal.Decimal `json:"order_cost"`
}
