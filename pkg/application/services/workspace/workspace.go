package workspace

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/services/bom"
	"github.com/vsinha/prodtrack/pkg/application/services/query"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
	"github.com/vsinha/prodtrack/pkg/domain/services"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
	"github.com/vsinha/prodtrack/pkg/infrastructure/repositories/memory"
)

// Options configures a workspace
type Options struct {
	// ProductionCycleDays is used when a plan request does not name a cycle
	ProductionCycleDays int
	Resolver            bom.Config
}

// DefaultOptions returns the options used by the dashboard out of the box
func DefaultOptions() Options {
	return Options{ProductionCycleDays: 30, Resolver: bom.DefaultConfig()}
}

// Selection is the UI state the workspace keeps consistent with the graph
type Selection struct {
	ActiveCategory entities.CategoryID `json:"active_category"`
	SelectedNode   entities.NodeID     `json:"selected_node,omitempty"`
	EditingNode    entities.NodeID     `json:"editing_node,omitempty"`
}

// Workspace owns the authoritative in-memory state. One writer at a time mutates it;
// every mutation appends a change event carrying the full mutated aggregate once the
// lock is released. Events are published in the order the mutations happened.
type Workspace struct {
	mu sync.RWMutex
	// publishMu is taken before mu is released and held while events are appended
	publishMu sync.Mutex

	components    repositories.ComponentRepository
	categories    repositories.CategoryRepository
	subassemblies repositories.SubassemblyRepository
	statuses      repositories.StatusRepository

	resolver  *bom.Resolver
	query     *query.Engine
	validator *services.GraphValidator

	events    events.EventStore
	logger    *zap.Logger
	options   Options
	selection Selection
}

// New creates an empty workspace backed by in-memory repositories
func New(store events.EventStore, logger *zap.Logger, options Options) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = events.NewInMemoryEventStore(logger, 0)
	}

	w := &Workspace{
		validator: services.NewGraphValidator(),
		events:    store,
		logger:    logger,
		options:   options,
	}
	w.bind(
		memory.NewComponentRepository(64),
		memory.NewCategoryRepository(),
		memory.NewSubassemblyRepository(64),
		memory.NewStatusRepository(),
	)
	return w
}

// bind installs a set of repositories and the services reading them
func (w *Workspace) bind(
	components repositories.ComponentRepository,
	categories repositories.CategoryRepository,
	subassemblies repositories.SubassemblyRepository,
	statuses repositories.StatusRepository,
) {
	w.components = components
	w.categories = categories
	w.subassemblies = subassemblies
	w.statuses = statuses
	w.resolver = bom.NewResolver(subassemblies, components, w.logger.Named("resolver"), w.options.Resolver)
	w.query = query.NewEngine(subassemblies, components, statuses, w.logger.Named("query"))
}

// mutate runs fn under the write lock and publishes the events it returns after
// unlocking, so handlers may read the workspace. Handlers must not mutate it.
func (w *Workspace) mutate(fn func() ([]events.Event, error)) error {
	w.mu.Lock()
	pending, err := fn()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	w.publishMu.Lock()
	w.mu.Unlock()
	defer w.publishMu.Unlock()

	for _, event := range pending {
		if err := w.events.AppendEvent(event.StreamID(), event); err != nil {
			w.logger.Error("failed to record change", zap.String("type", event.Type()), zap.Error(err))
		}
	}
	return nil
}

// Load replaces the whole state with snapshot. Nothing changes when any aggregate
// fails to load. No change events are emitted.
func (w *Workspace) Load(snapshot *entities.Snapshot) error {
	statuses := memory.NewStatusRepository()
	if len(snapshot.Statuses) > 0 {
		if err := statuses.Replace(snapshot.Statuses); err != nil {
			return fmt.Errorf("failed to load statuses: %w", err)
		}
	}
	components := memory.NewComponentRepository(len(snapshot.Components))
	if err := components.Replace(snapshot.Components); err != nil {
		return fmt.Errorf("failed to load components: %w", err)
	}
	categories := memory.NewCategoryRepository()
	if err := categories.Replace(snapshot.Categories); err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	order := make([]entities.CategoryID, 0, len(snapshot.Categories))
	for _, c := range categories.List() {
		order = append(order, c.ID)
	}
	subassemblies := memory.NewSubassemblyRepository(len(snapshot.Subassemblies) * 8)
	if err := subassemblies.Replace(snapshot.Subassemblies, order); err != nil {
		return fmt.Errorf("failed to load subassemblies: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.bind(components, categories, subassemblies, statuses)
	w.selection = Selection{}
	if len(order) > 0 {
		w.selection.ActiveCategory = order[0]
	}

	w.logger.Info("workspace loaded",
		zap.Int("components", len(snapshot.Components)),
		zap.Int("categories", len(order)),
		zap.Int("subassemblies", len(subassemblies.List())))
	return nil
}

// Snapshot exports the full state
func (w *Workspace) Snapshot() *entities.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return &entities.Snapshot{
		Components:    w.components.List(),
		Categories:    w.categories.List(),
		Subassemblies: w.subassemblies.Partitions(),
		Statuses:      w.statuses.List(),
	}
}

// CategoryOrder returns category ids in registry order
func (w *Workspace) CategoryOrder() []entities.CategoryID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.categoryOrder()
}

// Changes returns the change log after position from
func (w *Workspace) Changes(from int) ([]events.Event, error) {
	return w.events.ReadAllEvents(from)
}

// Options returns the workspace configuration
func (w *Workspace) Options() Options {
	return w.options
}

func (w *Workspace) categoryOrder() []entities.CategoryID {
	categories := w.categories.List()
	order := make([]entities.CategoryID, 0, len(categories))
	for _, c := range categories {
		order = append(order, c.ID)
	}
	return order
}

func (w *Workspace) componentsEvent(action, subject string) events.Event {
	return events.NewEvent(events.ComponentsChangedEvent, events.ComponentsStream, events.ComponentsChanged{
		Action:     action,
		Subject:    subject,
		Components: w.components.List(),
	})
}

func (w *Workspace) categoriesEvent(action, subject string) events.Event {
	return events.NewEvent(events.CategoriesChangedEvent, events.CategoriesStream, events.CategoriesChanged{
		Action:     action,
		Subject:    subject,
		Categories: w.categories.List(),
	})
}

func (w *Workspace) subassembliesEvent(action, subject string) events.Event {
	return events.NewEvent(events.SubassembliesChangedEvent, events.SubassembliesStream, events.SubassembliesChanged{
		Action:     action,
		Subject:    subject,
		Partitions: w.subassemblies.Partitions(),
		Order:      w.categoryOrder(),
	})
}

func (w *Workspace) statusesEvent(action, subject string) events.Event {
	return events.NewEvent(events.StatusesChangedEvent, events.StatusesStream, events.StatusesChanged{
		Action:   action,
		Subject:  subject,
		Statuses: w.statuses.List(),
	})
}
