package query

import (
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

// Engine answers point lookups over the graph and the inventory
type Engine struct {
	graph     repositories.SubassemblyRepository
	inventory repositories.ComponentRepository
	statuses  repositories.StatusRepository
	logger    *zap.Logger
}

// NewEngine creates a query engine
func NewEngine(
	graph repositories.SubassemblyRepository,
	inventory repositories.ComponentRepository,
	statuses repositories.StatusRepository,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{graph: graph, inventory: inventory, statuses: statuses, logger: logger}
}

// FindNodeByFuzzyName returns the first node whose name contains query, ignoring case.
// A miss carries every node name as a suggestion.
func (e *Engine) FindNodeByFuzzyName(query string) dto.NodeMatch {
	return FindNodeAmong(query, e.graph.List())
}

// FindNodeAmong runs the fuzzy node match over a caller-chosen node set
func FindNodeAmong(query string, nodes []entities.Subassembly) dto.NodeMatch {
	if strings.TrimSpace(query) != "" {
		for i := range nodes {
			if entities.NameContains(nodes[i].Name, query) {
				node := nodes[i].Clone()
				return dto.NodeMatch{Found: true, Node: &node}
			}
		}
	}

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	return dto.NodeMatch{Found: false, Suggestions: names}
}

// FindComponentByFuzzyName is the inventory counterpart of FindNodeByFuzzyName
func (e *Engine) FindComponentByFuzzyName(query string) dto.ComponentMatch {
	components := e.inventory.List()
	if strings.TrimSpace(query) != "" {
		for i := range components {
			if entities.NameContains(components[i].Name, query) {
				c := components[i]
				return dto.ComponentMatch{Found: true, Component: &c}
			}
		}
	}

	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name)
	}
	return dto.ComponentMatch{Found: false, Suggestions: names}
}

// RequirementsOf lists what one unit of a node consumes, joined with inventory.
// Unknown component ids are kept and marked Known=false.
func (e *Engine) RequirementsOf(id entities.NodeID) ([]dto.RequirementView, error) {
	node, ok := e.graph.Lookup(id)
	if !ok {
		return nil, entities.NewNotFoundError("subassembly", string(id))
	}
	return e.requirementViews(node), nil
}

func (e *Engine) requirementViews(node *entities.Subassembly) []dto.RequirementView {
	views := make([]dto.RequirementView, 0, len(node.Components))
	for _, req := range node.Components {
		view := dto.RequirementView{
			ComponentID:      req.ComponentID,
			Name:             string(req.ComponentID),
			RequiredQuantity: req.RequiredQuantity,
		}
		if component, err := e.inventory.Get(req.ComponentID); err == nil {
			view.Name = component.Name
			view.Stock = component.Stock
			view.LeadTimeDays = component.LeadTimeDays
			view.Known = true
		} else {
			e.logger.Debug("requirement references unknown component",
				zap.String("node", string(node.ID)),
				zap.String("component", string(req.ComponentID)))
		}
		views = append(views, view)
	}
	return views
}

// Describe answers "what is X made of" for a fuzzy node name
func (e *Engine) Describe(query string) dto.Composition {
	match := e.FindNodeByFuzzyName(query)
	if !match.Found {
		return dto.Composition{Match: match}
	}

	composition := dto.Composition{
		Match:        match,
		Requirements: e.requirementViews(match.Node),
	}
	for _, child := range match.Node.Children {
		if node, ok := e.graph.Lookup(child); ok {
			composition.Children = append(composition.Children, node.Name)
		}
	}
	return composition
}

// Roots returns every root, or only the roots owned by categoryID when it is set
func (e *Engine) Roots(categoryID entities.CategoryID) []entities.Subassembly {
	roots := e.graph.Roots()
	if categoryID == "" {
		return roots
	}
	filtered := make([]entities.Subassembly, 0, len(roots))
	for _, root := range roots {
		if root.Category == categoryID {
			filtered = append(filtered, root)
		}
	}
	return filtered
}

// ResolveName looks name up as a component first, then as a subassembly.
// Both lookups are exact and case-insensitive; the first match in insertion order wins.
func (e *Engine) ResolveName(name string) dto.NameRef {
	if component, ok := e.inventory.FindByName(name); ok {
		return dto.NameRef{Kind: dto.NameKindComponent, ID: string(component.ID)}
	}
	if node, ok := e.graph.FindByName(name); ok {
		return dto.NameRef{Kind: dto.NameKindSubassembly, ID: string(node.ID)}
	}
	return dto.NameRef{Kind: dto.NameKindNone}
}

// BulkApplyQuantities sets component stock or node quantity for each update by name.
// A name shared by a component and a subassembly always updates the component.
func (e *Engine) BulkApplyQuantities(updates []dto.QuantityUpdate) dto.BulkUpdateResult {
	var result dto.BulkUpdateResult
	for _, update := range updates {
		if update.Quantity < 0 {
			result.Invalid++
			continue
		}

		ref := e.ResolveName(update.Name)
		switch ref.Kind {
		case dto.NameKindComponent:
			e.inventory.SetStock(update.Name, update.Quantity)
			result.ComponentsTouched = true
			result.Updated++
		case dto.NameKindSubassembly:
			e.graph.SetQuantity(update.Name, update.Quantity)
			result.SubassembliesTouched = true
			result.Updated++
		default:
			result.NotFound++
			result.NotFoundNames = append(result.NotFoundNames, update.Name)
		}
	}
	return result
}

// Issues returns nodes still below target whose status is not terminal
func (e *Engine) Issues() []entities.Subassembly {
	var issues []entities.Subassembly
	for _, node := range e.graph.List() {
		if node.Quantity < node.TargetQuantity && !e.statuses.IsTerminal(node.Status) {
			issues = append(issues, node)
		}
	}
	return issues
}
