package repositories

import "github.com/vsinha/prodtrack/pkg/domain/entities"

// SubassemblyRepository stores the production graph as a flat node map with a
// category index used only for grouping
type SubassemblyRepository interface {
	Add(input entities.NewSubassembly) (*entities.Subassembly, error)
	Update(id entities.NodeID, patch entities.SubassemblyPatch) (*entities.Subassembly, error)
	// Delete removes the node and every edge pointing at it
	Delete(id entities.NodeID) error
	Get(id entities.NodeID) (*entities.Subassembly, error)
	// Lookup returns the stored node without copying; callers must not mutate it
	Lookup(id entities.NodeID) (*entities.Subassembly, bool)
	FindByName(name string) (*entities.Subassembly, bool)
	SetQuantity(name string, quantity entities.Quantity) bool

	Connect(parentID, childID entities.NodeID) (bool, error)
	DisconnectChild(parentID, childID entities.NodeID) error
	SetRequirement(id entities.NodeID, componentID entities.ComponentID, quantity entities.Quantity) (*entities.Subassembly, error)
	RemoveRequirement(id entities.NodeID, componentID entities.ComponentID) (*entities.Subassembly, error)
	AddComment(id entities.NodeID, text string) (*entities.Subassembly, error)
	RemoveComment(id entities.NodeID, index int) (*entities.Subassembly, error)

	DeleteCategory(categoryID entities.CategoryID) []entities.NodeID
	Roots() []entities.Subassembly
	List() []entities.Subassembly
	ListByCategory(categoryID entities.CategoryID) []entities.Subassembly
	Partitions() map[entities.CategoryID][]entities.Subassembly
	// Replace loads partitions; order fixes the insertion order of the listed categories
	Replace(partitions map[entities.CategoryID][]entities.Subassembly, order []entities.CategoryID) error
	Revision() uint64
}
