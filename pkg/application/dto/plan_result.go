package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// ResolveResult contains the complete output of a BOM resolution
type ResolveResult struct {
	// Found is false when a requested root or category could not be resolved.
	// Missing and AvailableRoots are then set and nothing else is.
	Found          bool     `json:"found"`
	Missing        []string `json:"missing,omitempty"`
	AvailableRoots []string `json:"available_roots,omitempty"`

	Plan              []entities.PlanItem          `json:"plan"`
	Demand            map[string]entities.Quantity `json:"demand"`
	ComponentDemand   []entities.ComponentDemand   `json:"component_demand"`
	UnknownComponents []entities.ComponentID       `json:"unknown_components,omitempty"`
}

// Clone returns a deep copy of the result, used when serving cached resolutions
func (r *ResolveResult) Clone() *ResolveResult {
	if r == nil {
		return nil
	}
	out := &ResolveResult{
		Found:             r.Found,
		Missing:           append([]string(nil), r.Missing...),
		AvailableRoots:    append([]string(nil), r.AvailableRoots...),
		ComponentDemand:   append([]entities.ComponentDemand(nil), r.ComponentDemand...),
		UnknownComponents: append([]entities.ComponentID(nil), r.UnknownComponents...),
	}
	if r.Plan != nil {
		out.Plan = make([]entities.PlanItem, len(r.Plan))
		for i, item := range r.Plan {
			item.Children = append([]entities.NodeID{}, item.Children...)
			item.Components = append([]entities.ComponentRequirement{}, item.Components...)
			out.Plan[i] = item
		}
	}
	if r.Demand != nil {
		out.Demand = make(map[string]entities.Quantity, len(r.Demand))
		for name, qty := range r.Demand {
			out.Demand[name] = qty
		}
	}
	return out
}

// PlanCacheKey identifies a memoized resolution. Any graph or inventory mutation
// advances a revision and so invalidates every older key.
type PlanCacheKey struct {
	Targets           string
	GraphRevision     uint64
	InventoryRevision uint64
}

// ShortfallReport lists demand against stock for every demanded component
type ShortfallReport struct {
	ProductionCycleDays int                     `json:"production_cycle_days"`
	Rows                []entities.ShortfallRow `json:"rows"`
	ShortCount          int                     `json:"short_count"`
	TotalOrderCost      decimal.Decimal         `json:"total_order_cost"`
}

// Short returns the rows that need ordering
func (r *ShortfallReport) Short() []entities.ShortfallRow {
	var out []entities.ShortfallRow
	for _, row := range r.Rows {
		if row.Shortfall > 0 {
			out = append(out, row)
		}
	}
	return out
}

// ProductionReport is the answer to "produce N units of X"
type ProductionReport struct {
	Resolve   *ResolveResult   `json:"resolve"`
	Shortfall *ShortfallReport `json:"shortfall,omitempty"`
}

// ProductionAnswer is the answer to "produce N units of X": the root the query
// matched and, when it matched, the plan for N units
type ProductionAnswer struct {
	Match    NodeMatch         `json:"match"`
	Quantity entities.Quantity `json:"quantity"`
	Report   *ProductionReport `json:"report,omitempty"`
}
