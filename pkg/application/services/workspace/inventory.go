package workspace

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
)

// AddComponent creates a component under a fresh id
func (w *Workspace) AddComponent(name string, stock entities.Quantity, leadTimeDays int, unitCost decimal.Decimal) (*entities.Component, error) {
	var added *entities.Component
	err := w.mutate(func() ([]events.Event, error) {
		c, err := w.components.Add(name, stock, leadTimeDays, unitCost)
		if err != nil {
			return nil, err
		}
		added = c
		return []events.Event{w.componentsEvent("add", string(c.ID))}, nil
	})
	return added, err
}

// UpdateComponent merges patch into a component
func (w *Workspace) UpdateComponent(id entities.ComponentID, patch entities.ComponentPatch) (*entities.Component, error) {
	var updated *entities.Component
	err := w.mutate(func() ([]events.Event, error) {
		c, err := w.components.Update(id, patch)
		if err != nil {
			return nil, err
		}
		updated = c
		return []events.Event{w.componentsEvent("update", string(id))}, nil
	})
	return updated, err
}

// DeleteComponent removes a component. Requirements naming it are left dangling.
func (w *Workspace) DeleteComponent(id entities.ComponentID) error {
	return w.mutate(func() ([]events.Event, error) {
		if err := w.components.Delete(id); err != nil {
			return nil, err
		}
		return []events.Event{w.componentsEvent("delete", string(id))}, nil
	})
}

// SetStock sets the stock of the first component named name
func (w *Workspace) SetStock(name string, stock entities.Quantity) (bool, error) {
	if stock < 0 {
		return false, entities.NewValidationError("stock", "stock cannot be negative, got %d", stock)
	}
	matched := false
	err := w.mutate(func() ([]events.Event, error) {
		if !w.components.SetStock(name, stock) {
			return nil, nil
		}
		matched = true
		return []events.Event{w.componentsEvent("set_stock", name)}, nil
	})
	return matched, err
}

// Component returns one component
func (w *Workspace) Component(id entities.ComponentID) (*entities.Component, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.components.Get(id)
}

// FindComponent looks a component up by exact name, ignoring case
func (w *Workspace) FindComponent(name string) (*entities.Component, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.components.FindByName(name)
}

// Components returns the inventory in insertion order
func (w *Workspace) Components() []entities.Component {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.components.List()
}
