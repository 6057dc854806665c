package workspace

import (
	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/application/services/query"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/services"
)

// Resolve flattens the plan for targets and aggregates component demand
func (w *Workspace) Resolve(targets []entities.PlanTarget) (*dto.ResolveResult, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.resolver.Resolve(targets)
}

// Plan resolves targets and classifies every demanded component against stock.
// A nil productionCycleDays uses the configured cycle.
func (w *Workspace) Plan(targets []entities.PlanTarget, productionCycleDays *int) (*dto.ProductionReport, error) {
	cycle := w.options.ProductionCycleDays
	if productionCycleDays != nil {
		cycle = *productionCycleDays
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.resolver.Plan(targets, cycle)
}

// ValidateGraph reports cycles, dangling references and duplicate requirements
func (w *Workspace) ValidateGraph() *services.ValidationResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.validator.ValidateGraph(w.subassemblies.List(), w.components.List())
}

// Issues returns nodes below target whose status is not terminal
func (w *Workspace) Issues() []entities.Subassembly {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.query.Issues()
}

// FindNode runs a fuzzy, case-insensitive substring search over node names
func (w *Workspace) FindNode(q string) dto.NodeMatch {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.query.FindNodeByFuzzyName(q)
}

// FindComponentFuzzy runs a fuzzy search over component names
func (w *Workspace) FindComponentFuzzy(q string) dto.ComponentMatch {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.query.FindComponentByFuzzyName(q)
}

// RequirementsOf lists what one unit of a node consumes
func (w *Workspace) RequirementsOf(id entities.NodeID) ([]dto.RequirementView, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.query.RequirementsOf(id)
}

// ResolveName tells whether a name refers to a component or a subassembly
func (w *Workspace) ResolveName(name string) dto.NameRef {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.query.ResolveName(name)
}

// DescribeComposition answers "what is X made of"
func (w *Workspace) DescribeComposition(q string) dto.Composition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.query.Describe(q)
}

// ProduceUnits answers "produce n units of X": X is matched fuzzily among the roots
// and n defaults to 1. A miss carries the root names as suggestions.
func (w *Workspace) ProduceUnits(rootQuery string, n entities.Quantity) (*dto.ProductionAnswer, error) {
	if n <= 0 {
		n = 1
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	match := query.FindNodeAmong(rootQuery, w.subassemblies.Roots())
	answer := &dto.ProductionAnswer{Match: match, Quantity: n}
	if !match.Found {
		return answer, nil
	}

	report, err := w.resolver.Plan(
		[]entities.PlanTarget{{RootID: match.Node.ID, Quantity: n}},
		w.options.ProductionCycleDays,
	)
	if err != nil {
		return nil, err
	}
	answer.Report = report
	return answer, nil
}
