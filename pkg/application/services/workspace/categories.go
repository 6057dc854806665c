package workspace

import (
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
)

// AddCategory creates a category whose id is derived from name
func (w *Workspace) AddCategory(name string) (*entities.Category, error) {
	return w.AddCategoryWithID("", name)
}

// AddCategoryWithID creates a category with an explicit id. The first category
// becomes the active one.
func (w *Workspace) AddCategoryWithID(id entities.CategoryID, name string) (*entities.Category, error) {
	var added *entities.Category
	err := w.mutate(func() ([]events.Event, error) {
		c, err := w.categories.AddWithID(id, name)
		if err != nil {
			return nil, err
		}
		added = c
		if w.selection.ActiveCategory == "" {
			w.selection.ActiveCategory = c.ID
		}
		return []events.Event{w.categoriesEvent("add", string(c.ID))}, nil
	})
	return added, err
}

// RenameCategory changes a category's display name
func (w *Workspace) RenameCategory(id entities.CategoryID, name string) (*entities.Category, error) {
	var renamed *entities.Category
	err := w.mutate(func() ([]events.Event, error) {
		c, err := w.categories.Rename(id, name)
		if err != nil {
			return nil, err
		}
		renamed = c
		return []events.Event{w.categoriesEvent("rename", string(id))}, nil
	})
	return renamed, err
}

// DeleteCategory removes a category together with its whole partition and every
// edge into it. When it was active, the first remaining category is selected.
func (w *Workspace) DeleteCategory(id entities.CategoryID) ([]entities.NodeID, error) {
	var removed []entities.NodeID
	err := w.mutate(func() ([]events.Event, error) {
		if err := w.categories.Delete(id); err != nil {
			return nil, err
		}
		removed = w.subassemblies.DeleteCategory(id)
		for _, nodeID := range removed {
			w.clearSelection(nodeID)
		}
		if w.selection.ActiveCategory == id {
			w.selection.ActiveCategory = ""
			if remaining := w.categories.List(); len(remaining) > 0 {
				w.selection.ActiveCategory = remaining[0].ID
			}
		}
		return []events.Event{
			w.categoriesEvent("delete", string(id)),
			w.subassembliesEvent("delete_category", string(id)),
		}, nil
	})
	return removed, err
}

// Category returns one category
func (w *Workspace) Category(id entities.CategoryID) (*entities.Category, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.categories.Get(id)
}

// Categories returns the registry in insertion order
func (w *Workspace) Categories() []entities.Category {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.categories.List()
}

// SelectCategory makes a category the active one
func (w *Workspace) SelectCategory(id entities.CategoryID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.categories.Get(id); err != nil {
		return err
	}
	w.selection.ActiveCategory = id
	return nil
}

// SelectNode marks a node as selected; an empty id clears the selection
func (w *Workspace) SelectNode(id entities.NodeID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id != "" {
		if _, ok := w.subassemblies.Lookup(id); !ok {
			return entities.NewNotFoundError("subassembly", string(id))
		}
	}
	w.selection.SelectedNode = id
	return nil
}

// EditNode marks a node as being edited; an empty id ends editing
func (w *Workspace) EditNode(id entities.NodeID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id != "" {
		if _, ok := w.subassemblies.Lookup(id); !ok {
			return entities.NewNotFoundError("subassembly", string(id))
		}
	}
	w.selection.EditingNode = id
	return nil
}

// Selection returns the current UI selection
func (w *Workspace) Selection() Selection {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.selection
}

func (w *Workspace) clearSelection(id entities.NodeID) {
	if w.selection.SelectedNode == id {
		w.selection.SelectedNode = ""
	}
	if w.selection.EditingNode == id {
		w.selection.EditingNode = ""
	}
}
