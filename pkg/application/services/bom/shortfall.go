package bom

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// urgentWindowDays is the last order deadline still classified as urgent
const urgentWindowDays = 5

// Classify derives the urgency of a component from its shortfall and order deadline.
// The deadline is nil when nothing is short.
func Classify(shortfall entities.Quantity, productionCycleDays, leadTimeDays int) (entities.Urgency, *int) {
	if shortfall <= 0 {
		return entities.InStock, nil
	}
	deadline := productionCycleDays - leadTimeDays
	switch {
	case deadline < 0:
		return entities.Critical, &deadline
	case deadline <= urgentWindowDays:
		return entities.Urgent, &deadline
	default:
		return entities.SafeToOrder, &deadline
	}
}

// Shortfalls compares the demand of a resolution with current stock. Rows are sorted
// by ascending order deadline; components with nothing short sort last.
func (r *Resolver) Shortfalls(result *dto.ResolveResult, productionCycleDays int) (*dto.ShortfallReport, error) {
	if productionCycleDays < 0 {
		return nil, entities.NewValidationError("production_cycle_days", "production cycle cannot be negative, got %d", productionCycleDays)
	}

	report := &dto.ShortfallReport{
		ProductionCycleDays: productionCycleDays,
		Rows:                make([]entities.ShortfallRow, 0),
		TotalOrderCost:      decimal.Zero,
	}
	if result == nil || !result.Found {
		return report, nil
	}

	for _, demand := range result.ComponentDemand {
		component, err := r.inventory.Get(demand.ComponentID)
		if err != nil {
			r.logger.Debug("component vanished before shortfall check",
				zap.String("component", string(demand.ComponentID)))
			continue
		}

		shortfall := demand.Required - component.Stock
		if shortfall < 0 {
			shortfall = 0
		}
		urgency, deadline := Classify(shortfall, productionCycleDays, component.LeadTimeDays)

		row := entities.ShortfallRow{
			ComponentID:   component.ID,
			Name:          component.Name,
			Required:      demand.Required,
			Stock:         component.Stock,
			Shortfall:     shortfall,
			LeadTimeDays:  component.LeadTimeDays,
			OrderDeadline: deadline,
			Urgency:       urgency,
			OrderCost:     component.UnitCost.Mul(decimal.NewFromInt(int64(shortfall))),
		}
		if shortfall > 0 {
			report.ShortCount++
			report.TotalOrderCost = report.TotalOrderCost.Add(row.OrderCost)
		}
		report.Rows = append(report.Rows, row)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		a, b := report.Rows[i].OrderDeadline, report.Rows[j].OrderDeadline
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return report, nil
}

// Plan resolves targets and checks the result against stock in one call
func (r *Resolver) Plan(targets []entities.PlanTarget, productionCycleDays int) (*dto.ProductionReport, error) {
	if productionCycleDays < 0 {
		return nil, entities.NewValidationError("production_cycle_days", "production cycle cannot be negative, got %d", productionCycleDays)
	}
	resolved, err := r.Resolve(targets)
	if err != nil {
		return nil, err
	}
	report := &dto.ProductionReport{Resolve: resolved}
	if !resolved.Found {
		return report, nil
	}
	shortfall, err := r.Shortfalls(resolved, productionCycleDays)
	if err != nil {
		return nil, err
	}
	report.Shortfall = shortfall
	return report, nil
}
