package memory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

// ComponentRepository provides in-memory component storage in insertion order
type ComponentRepository struct {
	components []entities.Component
	index      map[entities.ComponentID]int
	newID      func() entities.ComponentID
	revision   uint64
}

// NewComponentRepository creates a new in-memory component repository
func NewComponentRepository(expectedComponents int) *ComponentRepository {
	return &ComponentRepository{
		components: make([]entities.Component, 0, expectedComponents),
		index:      make(map[entities.ComponentID]int, expectedComponents),
		newID:      newComponentID,
	}
}

// Verify interface compliance
var _ repositories.ComponentRepository = (*ComponentRepository)(nil)

func newComponentID() entities.ComponentID {
	return entities.ComponentID("comp-" + uuid.New().String()[:8])
}

// Add validates and appends a component under a fresh id
func (r *ComponentRepository) Add(name string, stock entities.Quantity, leadTimeDays int, unitCost decimal.Decimal) (*entities.Component, error) {
	id := r.newID()
	for r.exists(id) {
		id = r.newID()
	}

	component, err := entities.NewComponent(id, name, stock, leadTimeDays, unitCost)
	if err != nil {
		return nil, err
	}

	r.index[component.ID] = len(r.components)
	r.components = append(r.components, *component)
	r.revision++

	out := *component
	return &out, nil
}

// Update merges patch into the component with the given id
func (r *ComponentRepository) Update(id entities.ComponentID, patch entities.ComponentPatch) (*entities.Component, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, entities.NewNotFoundError("component", string(id))
	}

	updated, err := patch.Apply(r.components[i])
	if err != nil {
		return nil, err
	}
	r.components[i] = updated
	r.revision++

	return &updated, nil
}

// Delete removes a component. Subassemblies referencing it keep the dangling id.
func (r *ComponentRepository) Delete(id entities.ComponentID) error {
	i, ok := r.index[id]
	if !ok {
		return entities.NewNotFoundError("component", string(id))
	}

	r.components = append(r.components[:i], r.components[i+1:]...)
	r.reindex()
	r.revision++
	return nil
}

// Get returns a copy of the component with the given id
func (r *ComponentRepository) Get(id entities.ComponentID) (*entities.Component, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, entities.NewNotFoundError("component", string(id))
	}
	out := r.components[i]
	return &out, nil
}

// FindByName returns the first component whose name matches case-insensitively
func (r *ComponentRepository) FindByName(name string) (*entities.Component, bool) {
	folded := entities.FoldName(name)
	for i := range r.components {
		if entities.FoldName(r.components[i].Name) == folded {
			out := r.components[i]
			return &out, true
		}
	}
	return nil, false
}

// SetStock sets the stock of the first component matching name
func (r *ComponentRepository) SetStock(name string, stock entities.Quantity) bool {
	folded := entities.FoldName(name)
	for i := range r.components {
		if entities.FoldName(r.components[i].Name) == folded {
			r.components[i].Stock = stock
			r.revision++
			return true
		}
	}
	return false
}

// List returns all components in insertion order
func (r *ComponentRepository) List() []entities.Component {
	return append([]entities.Component{}, r.components...)
}

// Replace swaps the whole collection, used when seeding from persisted state
func (r *ComponentRepository) Replace(components []entities.Component) error {
	loaded := make([]entities.Component, 0, len(components))
	seen := make(map[entities.ComponentID]bool, len(components))
	for _, c := range components {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.ID] {
			return &entities.ConflictError{Resource: "component", Key: string(c.ID)}
		}
		seen[c.ID] = true
		loaded = append(loaded, c)
	}

	r.components = loaded
	r.reindex()
	r.revision++
	return nil
}

// Revision increases on every mutation
func (r *ComponentRepository) Revision() uint64 {
	return r.revision
}

func (r *ComponentRepository) exists(id entities.ComponentID) bool {
	_, ok := r.index[id]
	return ok
}

func (r *ComponentRepository) reindex() {
	r.index = make(map[entities.ComponentID]int, len(r.components))
	for i, c := range r.components {
		r.index[c.ID] = i
	}
}
