package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

// SubassemblyRepository keeps every node in one map keyed by id. The category index
// only groups ids for display and persistence; lookups never scan partitions.
type SubassemblyRepository struct {
	nodes      map[entities.NodeID]*entities.Subassembly
	order      []entities.NodeID
	byCategory map[entities.CategoryID][]entities.NodeID
	categories []entities.CategoryID
	now        func() time.Time
	revision   uint64
}

// NewSubassemblyRepository creates an empty graph
func NewSubassemblyRepository(expectedNodes int) *SubassemblyRepository {
	return &SubassemblyRepository{
		nodes:      make(map[entities.NodeID]*entities.Subassembly, expectedNodes),
		order:      make([]entities.NodeID, 0, expectedNodes),
		byCategory: make(map[entities.CategoryID][]entities.NodeID),
		now:        time.Now,
	}
}

// Verify interface compliance
var _ repositories.SubassemblyRepository = (*SubassemblyRepository)(nil)

// Add creates a node under an id scoped by category and creation time
func (r *SubassemblyRepository) Add(input entities.NewSubassembly) (*entities.Subassembly, error) {
	node := entities.Subassembly{
		ID:             r.nextID(input.Category),
		Name:           strings.TrimSpace(input.Name),
		Category:       input.Category,
		Quantity:       input.Quantity,
		TargetQuantity: input.TargetQuantity,
		Status:         input.Status,
		Children:       append([]entities.NodeID{}, input.Children...),
		Components:     append([]entities.ComponentRequirement{}, input.Components...),
		Comments:       append([]string{}, input.Comments...),
		Position:       input.Position,
	}
	if err := node.Validate(); err != nil {
		return nil, err
	}

	r.insert(node)
	r.revision++

	out := node.Clone()
	return &out, nil
}

// Update merges patch into the node; its category is left untouched
func (r *SubassemblyRepository) Update(id entities.NodeID, patch entities.SubassemblyPatch) (*entities.Subassembly, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, entities.NewNotFoundError("subassembly", string(id))
	}

	updated, err := patch.Apply(*node)
	if err != nil {
		return nil, err
	}
	*node = updated
	r.revision++

	out := node.Clone()
	return &out, nil
}

// Delete removes the node from its partition and from every children list
func (r *SubassemblyRepository) Delete(id entities.NodeID) error {
	node, ok := r.nodes[id]
	if !ok {
		return entities.NewNotFoundError("subassembly", string(id))
	}

	r.remove(node)
	for _, other := range r.nodes {
		other.RemoveChild(id)
	}
	r.revision++
	return nil
}

// Get returns a copy of the node
func (r *SubassemblyRepository) Get(id entities.NodeID) (*entities.Subassembly, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, entities.NewNotFoundError("subassembly", string(id))
	}
	out := node.Clone()
	return &out, nil
}

// Lookup returns the stored node without copying
func (r *SubassemblyRepository) Lookup(id entities.NodeID) (*entities.Subassembly, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// FindByName returns the first node, in insertion order, whose name matches exactly
// ignoring case
func (r *SubassemblyRepository) FindByName(name string) (*entities.Subassembly, bool) {
	folded := entities.FoldName(name)
	for _, id := range r.order {
		if entities.FoldName(r.nodes[id].Name) == folded {
			out := r.nodes[id].Clone()
			return &out, true
		}
	}
	return nil, false
}

// SetQuantity sets the produced quantity of the first node matching name
func (r *SubassemblyRepository) SetQuantity(name string, quantity entities.Quantity) bool {
	folded := entities.FoldName(name)
	for _, id := range r.order {
		if entities.FoldName(r.nodes[id].Name) == folded {
			r.nodes[id].Quantity = quantity
			r.revision++
			return true
		}
	}
	return false
}

// Connect appends childID to the parent's children. Self loops are rejected; longer
// cycles are not checked here, traversals guard against them.
func (r *SubassemblyRepository) Connect(parentID, childID entities.NodeID) (bool, error) {
	if parentID == childID {
		return false, entities.NewValidationError("children", "subassembly cannot be its own child: %s", parentID)
	}
	parent, ok := r.nodes[parentID]
	if !ok {
		return false, entities.NewNotFoundError("subassembly", string(parentID))
	}
	if _, ok := r.nodes[childID]; !ok {
		return false, entities.NewNotFoundError("subassembly", string(childID))
	}
	if parent.HasChild(childID) {
		return false, nil
	}

	parent.Children = append(parent.Children, childID)
	r.revision++
	return true, nil
}

// DisconnectChild removes one parent to child edge
func (r *SubassemblyRepository) DisconnectChild(parentID, childID entities.NodeID) error {
	parent, ok := r.nodes[parentID]
	if !ok {
		return entities.NewNotFoundError("subassembly", string(parentID))
	}
	if parent.RemoveChild(childID) {
		r.revision++
	}
	return nil
}

// SetRequirement sets how many units of a component one unit of the node consumes
func (r *SubassemblyRepository) SetRequirement(id entities.NodeID, componentID entities.ComponentID, quantity entities.Quantity) (*entities.Subassembly, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, entities.NewNotFoundError("subassembly", string(id))
	}
	if componentID == "" {
		return nil, entities.NewValidationError("components", "component id cannot be empty")
	}
	if quantity < 0 {
		return nil, entities.NewValidationError("components", "required quantity cannot be negative, got %d", quantity)
	}

	replaced := false
	for i := range node.Components {
		if node.Components[i].ComponentID == componentID {
			node.Components[i].RequiredQuantity = quantity
			replaced = true
			break
		}
	}
	if !replaced {
		node.Components = append(node.Components, entities.ComponentRequirement{
			ComponentID:      componentID,
			RequiredQuantity: quantity,
		})
	}
	r.revision++

	out := node.Clone()
	return &out, nil
}

// RemoveRequirement drops a component requirement from the node
func (r *SubassemblyRepository) RemoveRequirement(id entities.NodeID, componentID entities.ComponentID) (*entities.Subassembly, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, entities.NewNotFoundError("subassembly", string(id))
	}

	kept := node.Components[:0]
	for _, req := range node.Components {
		if req.ComponentID != componentID {
			kept = append(kept, req)
		}
	}
	node.Components = kept
	r.revision++

	out := node.Clone()
	return &out, nil
}

// AddComment appends a free-text comment
func (r *SubassemblyRepository) AddComment(id entities.NodeID, text string) (*entities.Subassembly, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, entities.NewNotFoundError("subassembly", string(id))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entities.NewValidationError("comment", "comment cannot be empty")
	}

	node.Comments = append(node.Comments, text)
	out := node.Clone()
	return &out, nil
}

// RemoveComment removes the comment at index
func (r *SubassemblyRepository) RemoveComment(id entities.NodeID, index int) (*entities.Subassembly, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, entities.NewNotFoundError("subassembly", string(id))
	}
	if index < 0 || index >= len(node.Comments) {
		return nil, entities.NewValidationError("comment", "comment index out of range: %d", index)
	}

	node.Comments = append(node.Comments[:index], node.Comments[index+1:]...)
	out := node.Clone()
	return &out, nil
}

// DeleteCategory removes a whole partition and any edges into it
func (r *SubassemblyRepository) DeleteCategory(categoryID entities.CategoryID) []entities.NodeID {
	ids := append([]entities.NodeID{}, r.byCategory[categoryID]...)
	if len(ids) == 0 {
		r.dropCategory(categoryID)
		return ids
	}

	removed := make(map[entities.NodeID]bool, len(ids))
	for _, id := range ids {
		removed[id] = true
		r.remove(r.nodes[id])
	}
	for _, node := range r.nodes {
		kept := node.Children[:0]
		for _, child := range node.Children {
			if !removed[child] {
				kept = append(kept, child)
			}
		}
		node.Children = kept
	}
	r.dropCategory(categoryID)
	r.revision++
	return ids
}

// Roots returns the nodes no other node lists as a child, across all categories
func (r *SubassemblyRepository) Roots() []entities.Subassembly {
	referenced := make(map[entities.NodeID]bool, len(r.nodes))
	for _, node := range r.nodes {
		for _, child := range node.Children {
			referenced[child] = true
		}
	}

	var roots []entities.Subassembly
	for _, id := range r.order {
		if !referenced[id] {
			roots = append(roots, r.nodes[id].Clone())
		}
	}
	return roots
}

// List returns all nodes in insertion order
func (r *SubassemblyRepository) List() []entities.Subassembly {
	out := make([]entities.Subassembly, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.nodes[id].Clone())
	}
	return out
}

// ListByCategory returns the partition of one category
func (r *SubassemblyRepository) ListByCategory(categoryID entities.CategoryID) []entities.Subassembly {
	ids := r.byCategory[categoryID]
	out := make([]entities.Subassembly, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.nodes[id].Clone())
	}
	return out
}

// Partitions returns the category to nodes map used by persistence
func (r *SubassemblyRepository) Partitions() map[entities.CategoryID][]entities.Subassembly {
	out := make(map[entities.CategoryID][]entities.Subassembly, len(r.byCategory))
	for _, categoryID := range r.categories {
		out[categoryID] = r.ListByCategory(categoryID)
	}
	return out
}

// Replace loads the given partitions. Categories listed in order come first, the rest
// follow sorted by id so reloads are deterministic.
func (r *SubassemblyRepository) Replace(partitions map[entities.CategoryID][]entities.Subassembly, order []entities.CategoryID) error {
	sequence := make([]entities.CategoryID, 0, len(partitions))
	listed := make(map[entities.CategoryID]bool, len(order))
	for _, categoryID := range order {
		if _, ok := partitions[categoryID]; ok && !listed[categoryID] {
			sequence = append(sequence, categoryID)
			listed[categoryID] = true
		}
	}
	var rest []entities.CategoryID
	for categoryID := range partitions {
		if !listed[categoryID] {
			rest = append(rest, categoryID)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	sequence = append(sequence, rest...)

	fresh := NewSubassemblyRepository(len(r.nodes))
	fresh.now = r.now
	for _, categoryID := range sequence {
		for _, node := range partitions[categoryID] {
			node = node.Clone()
			node.Category = categoryID
			if node.ID == "" {
				return entities.NewValidationError("id", "subassembly id cannot be empty")
			}
			if _, exists := fresh.nodes[node.ID]; exists {
				return &entities.ConflictError{Resource: "subassembly", Key: string(node.ID)}
			}
			if err := node.Validate(); err != nil {
				return fmt.Errorf("subassembly %s: %w", node.ID, err)
			}
			fresh.insert(node)
		}
	}

	r.nodes = fresh.nodes
	r.order = fresh.order
	r.byCategory = fresh.byCategory
	r.categories = fresh.categories
	r.revision++
	return nil
}

// Revision increases on every mutation that can change planning results
func (r *SubassemblyRepository) Revision() uint64 {
	return r.revision
}

func (r *SubassemblyRepository) nextID(categoryID entities.CategoryID) entities.NodeID {
	base := fmt.Sprintf("%s-%d", categoryID, r.now().UnixMilli())
	id := entities.NodeID(base)
	for suffix := 2; ; suffix++ {
		if _, taken := r.nodes[id]; !taken {
			return id
		}
		id = entities.NodeID(fmt.Sprintf("%s-%d", base, suffix))
	}
}

func (r *SubassemblyRepository) insert(node entities.Subassembly) {
	stored := node
	r.nodes[node.ID] = &stored
	r.order = append(r.order, node.ID)
	if _, ok := r.byCategory[node.Category]; !ok {
		r.categories = append(r.categories, node.Category)
	}
	r.byCategory[node.Category] = append(r.byCategory[node.Category], node.ID)
}

func (r *SubassemblyRepository) remove(node *entities.Subassembly) {
	delete(r.nodes, node.ID)
	r.order = removeID(r.order, node.ID)
	r.byCategory[node.Category] = removeID(r.byCategory[node.Category], node.ID)
}

func (r *SubassemblyRepository) dropCategory(categoryID entities.CategoryID) {
	delete(r.byCategory, categoryID)
	kept := r.categories[:0]
	for _, id := range r.categories {
		if id != categoryID {
			kept = append(kept, id)
		}
	}
	r.categories = kept
}

func removeID(ids []entities.NodeID, id entities.NodeID) []entities.NodeID {
	for i := range ids {
		if ids[i] == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
