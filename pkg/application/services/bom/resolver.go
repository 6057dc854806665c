package bom

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

// Config holds resolver tuning
type Config struct {
	// CacheEntries bounds the memoized resolutions (0 disables caching)
	CacheEntries int
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() Config {
	return Config{CacheEntries: 256}
}

// Resolver walks the subassembly graph from a set of targets and rolls up component
// demand. It never fails on malformed graphs: cycles terminate through the visited
// set, dangling children and unknown components are skipped.
type Resolver struct {
	graph     repositories.SubassemblyRepository
	inventory repositories.ComponentRepository
	logger    *zap.Logger
	config    Config

	// Memoization cache for resolutions
	cache      map[dto.PlanCacheKey]*dto.ResolveResult
	cacheOrder []dto.PlanCacheKey
	cacheMutex sync.Mutex
}

// NewResolver creates a resolver over the given stores
func NewResolver(
	graph repositories.SubassemblyRepository,
	inventory repositories.ComponentRepository,
	logger *zap.Logger,
	config Config,
) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		graph:     graph,
		inventory: inventory,
		logger:    logger,
		config:    config,
		cache:     make(map[dto.PlanCacheKey]*dto.ResolveResult),
	}
}

// queued is a node waiting in the BFS queue with the quantity of the root that reached it
type queued struct {
	id       entities.NodeID
	quantity entities.Quantity
}

// Validate checks that targets are well formed
func (r *Resolver) Validate(targets []entities.PlanTarget) error {
	if len(targets) == 0 {
		return entities.NewValidationError("targets", "at least one target is required")
	}
	for _, target := range targets {
		if (target.RootID == "") == (target.CategoryID == "") {
			return entities.NewValidationError("targets", "target needs exactly one of root id or category")
		}
		if target.Quantity < 1 {
			return entities.NewValidationError("quantity", "target quantity must be at least 1, got %d", target.Quantity)
		}
	}
	return nil
}

// Resolve produces the flattened plan and the aggregated component demand for targets.
// A root or category that cannot be found yields Found=false with the available
// root names instead of an error.
func (r *Resolver) Resolve(targets []entities.PlanTarget) (*dto.ResolveResult, error) {
	if err := r.Validate(targets); err != nil {
		return nil, err
	}

	key := dto.PlanCacheKey{
		Targets:           targetsKey(targets),
		GraphRevision:     r.graph.Revision(),
		InventoryRevision: r.inventory.Revision(),
	}
	if cached, ok := r.cached(key); ok {
		return cached, nil
	}

	seeds, missing := r.expandTargets(targets)
	if len(missing) > 0 {
		result := &dto.ResolveResult{
			Found:          false,
			Missing:        missing,
			AvailableRoots: r.rootNames(),
		}
		r.store(key, result)
		return result.Clone(), nil
	}

	result := r.traverse(seeds)
	r.store(key, result)
	return result.Clone(), nil
}

// expandTargets turns targets into BFS seeds. Category targets become every root
// whose own category matches, in insertion order.
func (r *Resolver) expandTargets(targets []entities.PlanTarget) ([]queued, []string) {
	var seeds []queued
	var missing []string
	var roots []entities.Subassembly

	for _, target := range targets {
		if target.RootID != "" {
			if _, ok := r.graph.Lookup(target.RootID); !ok {
				missing = append(missing, string(target.RootID))
				continue
			}
			seeds = append(seeds, queued{id: target.RootID, quantity: target.Quantity})
			continue
		}

		if roots == nil {
			roots = r.graph.Roots()
		}
		matched := false
		for _, root := range roots {
			if root.Category == target.CategoryID {
				seeds = append(seeds, queued{id: root.ID, quantity: target.Quantity})
				matched = true
			}
		}
		if !matched {
			missing = append(missing, string(target.CategoryID))
		}
	}
	return seeds, missing
}

// traverse runs one breadth-first walk seeded with every root. Each node is visited
// once globally and carries the quantity of whichever root reached it first.
func (r *Resolver) traverse(seeds []queued) *dto.ResolveResult {
	result := &dto.ResolveResult{
		Found:  true,
		Plan:   make([]entities.PlanItem, 0, len(seeds)),
		Demand: make(map[string]entities.Quantity),
	}

	visited := make(map[entities.NodeID]bool)
	demandIndex := make(map[entities.ComponentID]int)
	unknown := make(map[entities.ComponentID]bool)

	queue := append([]queued{}, seeds...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.id] {
			continue
		}
		node, ok := r.graph.Lookup(current.id)
		if !ok {
			continue
		}
		visited[current.id] = true

		result.Plan = append(result.Plan, entities.PlanItem{
			NodeID:         node.ID,
			Name:           node.Name,
			Category:       node.Category,
			TargetQuantity: current.quantity,
			Children:       append([]entities.NodeID{}, node.Children...),
			Components:     append([]entities.ComponentRequirement{}, node.Components...),
		})

		// Flat multiplier: every visited node consumes at the target quantity of the
		// root that reached it; intermediate node quantities are NOT compounded.
		// This matches how the dashboard has always rolled up demand. Whether
		// requirements should cascade per level is open with the product owner.
		for _, req := range node.Components {
			component, err := r.inventory.Get(req.ComponentID)
			if err != nil {
				if !unknown[req.ComponentID] {
					unknown[req.ComponentID] = true
					result.UnknownComponents = append(result.UnknownComponents, req.ComponentID)
				}
				r.logger.Debug("skipping unknown component",
					zap.String("node", string(node.ID)),
					zap.String("component", string(req.ComponentID)))
				continue
			}

			needed := req.RequiredQuantity * current.quantity
			result.Demand[component.Name] += needed
			if i, seen := demandIndex[component.ID]; seen {
				result.ComponentDemand[i].Required += needed
				continue
			}
			demandIndex[component.ID] = len(result.ComponentDemand)
			result.ComponentDemand = append(result.ComponentDemand, entities.ComponentDemand{
				ComponentID: component.ID,
				Name:        component.Name,
				Required:    needed,
			})
		}

		for _, child := range node.Children {
			if visited[child] {
				continue
			}
			if _, ok := r.graph.Lookup(child); !ok {
				r.logger.Debug("skipping dangling child",
					zap.String("node", string(node.ID)),
					zap.String("child", string(child)))
				continue
			}
			queue = append(queue, queued{id: child, quantity: current.quantity})
		}
	}

	return result
}

func (r *Resolver) rootNames() []string {
	roots := r.graph.Roots()
	names := make([]string, 0, len(roots))
	for _, root := range roots {
		names = append(names, root.Name)
	}
	return names
}

func targetsKey(targets []entities.PlanTarget) string {
	var b strings.Builder
	for _, target := range targets {
		if target.RootID != "" {
			fmt.Fprintf(&b, "node:%s*%d;", target.RootID, target.Quantity)
		} else {
			fmt.Fprintf(&b, "category:%s*%d;", target.CategoryID, target.Quantity)
		}
	}
	return b.String()
}

func (r *Resolver) cached(key dto.PlanCacheKey) (*dto.ResolveResult, bool) {
	if r.config.CacheEntries <= 0 {
		return nil, false
	}
	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()

	result, ok := r.cache[key]
	if !ok {
		return nil, false
	}
	return result.Clone(), true
}

// store memoizes result, evicting the oldest entries past the configured bound
func (r *Resolver) store(key dto.PlanCacheKey, result *dto.ResolveResult) {
	if r.config.CacheEntries <= 0 {
		return
	}
	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()

	if _, exists := r.cache[key]; !exists {
		r.cacheOrder = append(r.cacheOrder, key)
	}
	r.cache[key] = result

	for len(r.cacheOrder) > r.config.CacheEntries {
		oldest := r.cacheOrder[0]
		r.cacheOrder = r.cacheOrder[1:]
		delete(r.cache, oldest)
	}
}

// CacheSize returns the number of memoized resolutions
func (r *Resolver) CacheSize() int {
	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()
	return len(r.cache)
}

// ClearCache drops every memoized resolution
func (r *Resolver) ClearCache() {
	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()
	r.cache = make(map[dto.PlanCacheKey]*dto.ResolveResult)
	r.cacheOrder = nil
}
