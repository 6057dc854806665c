package repositories

import "github.com/vsinha/prodtrack/pkg/domain/entities"

// StatusRepository is the configurable status catalog. It always keeps one entry.
type StatusRepository interface {
	Add(status entities.StatusDef) (*entities.StatusDef, error)
	Update(status entities.StatusDef) (*entities.StatusDef, error)
	Remove(id entities.StatusID) error
	Get(id entities.StatusID) (*entities.StatusDef, error)
	Default() entities.StatusDef
	IsTerminal(id entities.StatusID) bool
	List() []entities.StatusDef
	Replace(statuses []entities.StatusDef) error
}
