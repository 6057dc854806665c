package workspace

import (
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
)

// AddNode creates a subassembly in an existing category. An empty status falls back
// to the first configured status.
func (w *Workspace) AddNode(input entities.NewSubassembly) (*entities.Subassembly, error) {
	var added *entities.Subassembly
	err := w.mutate(func() ([]events.Event, error) {
		if _, err := w.categories.Get(input.Category); err != nil {
			return nil, err
		}
		if input.Status == "" {
			input.Status = w.statuses.Default().ID
		}
		if err := w.checkStatus(input.Status); err != nil {
			return nil, err
		}

		node, err := w.subassemblies.Add(input)
		if err != nil {
			return nil, err
		}
		added = node
		return []events.Event{w.subassembliesEvent("add", string(node.ID))}, nil
	})
	return added, err
}

// UpdateNode merges patch into a node; its category never changes
func (w *Workspace) UpdateNode(id entities.NodeID, patch entities.SubassemblyPatch) (*entities.Subassembly, error) {
	var updated *entities.Subassembly
	err := w.mutate(func() ([]events.Event, error) {
		if patch.Status != nil {
			if err := w.checkStatus(*patch.Status); err != nil {
				return nil, err
			}
		}
		node, err := w.subassemblies.Update(id, patch)
		if err != nil {
			return nil, err
		}
		updated = node
		return []events.Event{w.subassembliesEvent("update", string(id))}, nil
	})
	return updated, err
}

// DeleteNode removes a node, every edge into it and any selection pointing at it
func (w *Workspace) DeleteNode(id entities.NodeID) error {
	return w.mutate(func() ([]events.Event, error) {
		if err := w.subassemblies.Delete(id); err != nil {
			return nil, err
		}
		w.clearSelection(id)
		return []events.Event{w.subassembliesEvent("delete", string(id))}, nil
	})
}

// Connect adds childID to parentID's children. It reports false when the edge was
// already there. Self loops are rejected without changing anything.
func (w *Workspace) Connect(parentID, childID entities.NodeID) (bool, error) {
	added := false
	err := w.mutate(func() ([]events.Event, error) {
		ok, err := w.subassemblies.Connect(parentID, childID)
		if err != nil || !ok {
			return nil, err
		}
		added = true
		return []events.Event{w.subassembliesEvent("connect", string(parentID)+">"+string(childID))}, nil
	})
	return added, err
}

// Disconnect removes one parent to child edge
func (w *Workspace) Disconnect(parentID, childID entities.NodeID) error {
	return w.mutate(func() ([]events.Event, error) {
		if err := w.subassemblies.DisconnectChild(parentID, childID); err != nil {
			return nil, err
		}
		return []events.Event{w.subassembliesEvent("disconnect", string(parentID)+">"+string(childID))}, nil
	})
}

// SetRequirement sets how many units of a component one unit of the node consumes
func (w *Workspace) SetRequirement(id entities.NodeID, componentID entities.ComponentID, quantity entities.Quantity) (*entities.Subassembly, error) {
	return w.mutateNode("set_requirement", id, func() (*entities.Subassembly, error) {
		return w.subassemblies.SetRequirement(id, componentID, quantity)
	})
}

// RemoveRequirement drops a component requirement from a node
func (w *Workspace) RemoveRequirement(id entities.NodeID, componentID entities.ComponentID) (*entities.Subassembly, error) {
	return w.mutateNode("remove_requirement", id, func() (*entities.Subassembly, error) {
		return w.subassemblies.RemoveRequirement(id, componentID)
	})
}

// AddComment appends a comment to a node
func (w *Workspace) AddComment(id entities.NodeID, text string) (*entities.Subassembly, error) {
	return w.mutateNode("add_comment", id, func() (*entities.Subassembly, error) {
		return w.subassemblies.AddComment(id, text)
	})
}

// RemoveComment removes the comment at index from a node
func (w *Workspace) RemoveComment(id entities.NodeID, index int) (*entities.Subassembly, error) {
	return w.mutateNode("remove_comment", id, func() (*entities.Subassembly, error) {
		return w.subassemblies.RemoveComment(id, index)
	})
}

func (w *Workspace) mutateNode(action string, id entities.NodeID, fn func() (*entities.Subassembly, error)) (*entities.Subassembly, error) {
	var node *entities.Subassembly
	err := w.mutate(func() ([]events.Event, error) {
		n, err := fn()
		if err != nil {
			return nil, err
		}
		node = n
		return []events.Event{w.subassembliesEvent(action, string(id))}, nil
	})
	return node, err
}

// Node returns one subassembly
func (w *Workspace) Node(id entities.NodeID) (*entities.Subassembly, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.subassemblies.Get(id)
}

// Nodes returns the partition of categoryID, or every node when it is empty
func (w *Workspace) Nodes(categoryID entities.CategoryID) []entities.Subassembly {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if categoryID == "" {
		return w.subassemblies.List()
	}
	return w.subassemblies.ListByCategory(categoryID)
}

// Roots returns the top-level products, optionally limited to one category
func (w *Workspace) Roots(categoryID entities.CategoryID) []entities.Subassembly {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.query.Roots(categoryID)
}

// AddStatus appends a status to the catalog
func (w *Workspace) AddStatus(status entities.StatusDef) (*entities.StatusDef, error) {
	var added *entities.StatusDef
	err := w.mutate(func() ([]events.Event, error) {
		s, err := w.statuses.Add(status)
		if err != nil {
			return nil, err
		}
		added = s
		return []events.Event{w.statusesEvent("add", string(s.ID))}, nil
	})
	return added, err
}

// UpdateStatus changes the label, colour or terminal flag of a status
func (w *Workspace) UpdateStatus(status entities.StatusDef) (*entities.StatusDef, error) {
	var updated *entities.StatusDef
	err := w.mutate(func() ([]events.Event, error) {
		s, err := w.statuses.Update(status)
		if err != nil {
			return nil, err
		}
		updated = s
		return []events.Event{w.statusesEvent("update", string(s.ID))}, nil
	})
	return updated, err
}

// RemoveStatus deletes a status. Nodes still carrying it keep the id.
func (w *Workspace) RemoveStatus(id entities.StatusID) error {
	return w.mutate(func() ([]events.Event, error) {
		if err := w.statuses.Remove(id); err != nil {
			return nil, err
		}
		return []events.Event{w.statusesEvent("remove", string(id))}, nil
	})
}

// Statuses returns the status catalog
func (w *Workspace) Statuses() []entities.StatusDef {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.statuses.List()
}

func (w *Workspace) checkStatus(id entities.StatusID) error {
	if _, err := w.statuses.Get(id); err != nil {
		return entities.NewValidationError("status", "unknown status: %s", id)
	}
	return nil
}
