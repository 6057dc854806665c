package repositories

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// ComponentRepository is the inventory store: a flat, ordered collection of components
type ComponentRepository interface {
	Add(name string, stock entities.Quantity, leadTimeDays int, unitCost decimal.Decimal) (*entities.Component, error)
	Update(id entities.ComponentID, patch entities.ComponentPatch) (*entities.Component, error)
	Delete(id entities.ComponentID) error
	Get(id entities.ComponentID) (*entities.Component, error)
	// FindByName matches case-insensitively; the first component in insertion order wins.
	FindByName(name string) (*entities.Component, bool)
	SetStock(name string, stock entities.Quantity) bool
	List() []entities.Component
	Replace(components []entities.Component) error
	Revision() uint64
}
