package memory

import (
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

// StatusRepository holds the status catalog
type StatusRepository struct {
	statuses []entities.StatusDef
}

// NewStatusRepository creates a catalog seeded with the default statuses
func NewStatusRepository() *StatusRepository {
	return &StatusRepository{statuses: entities.DefaultStatuses()}
}

// Verify interface compliance
var _ repositories.StatusRepository = (*StatusRepository)(nil)

// Add appends a status to the catalog
func (r *StatusRepository) Add(status entities.StatusDef) (*entities.StatusDef, error) {
	def, err := entities.NewStatusDef(status.ID, status.Name, status.Color, status.Terminal)
	if err != nil {
		return nil, err
	}
	if r.find(def.ID) >= 0 {
		return nil, &entities.ConflictError{Resource: "status", Key: string(def.ID)}
	}
	r.statuses = append(r.statuses, *def)
	return def, nil
}

// Update replaces the label, colour and terminal flag of an existing status
func (r *StatusRepository) Update(status entities.StatusDef) (*entities.StatusDef, error) {
	i := r.find(status.ID)
	if i < 0 {
		return nil, entities.NewNotFoundError("status", string(status.ID))
	}
	def, err := entities.NewStatusDef(status.ID, status.Name, status.Color, status.Terminal)
	if err != nil {
		return nil, err
	}
	r.statuses[i] = *def
	return def, nil
}

// Remove deletes a status; the last remaining status cannot be removed
func (r *StatusRepository) Remove(id entities.StatusID) error {
	i := r.find(id)
	if i < 0 {
		return entities.NewNotFoundError("status", string(id))
	}
	if len(r.statuses) == 1 {
		return entities.NewValidationError("status", "at least one status must remain")
	}
	r.statuses = append(r.statuses[:i], r.statuses[i+1:]...)
	return nil
}

// Get returns the status with the given id
func (r *StatusRepository) Get(id entities.StatusID) (*entities.StatusDef, error) {
	i := r.find(id)
	if i < 0 {
		return nil, entities.NewNotFoundError("status", string(id))
	}
	out := r.statuses[i]
	return &out, nil
}

// Default returns the first configured status, used for new nodes
func (r *StatusRepository) Default() entities.StatusDef {
	return r.statuses[0]
}

// IsTerminal reports whether id is flagged as a terminal status
func (r *StatusRepository) IsTerminal(id entities.StatusID) bool {
	i := r.find(id)
	return i >= 0 && r.statuses[i].Terminal
}

// List returns the catalog in configured order
func (r *StatusRepository) List() []entities.StatusDef {
	return append([]entities.StatusDef{}, r.statuses...)
}

// Replace swaps the catalog; an empty catalog is rejected
func (r *StatusRepository) Replace(statuses []entities.StatusDef) error {
	if len(statuses) == 0 {
		return entities.NewValidationError("status", "at least one status must remain")
	}
	loaded := make([]entities.StatusDef, 0, len(statuses))
	seen := make(map[entities.StatusID]bool, len(statuses))
	for _, s := range statuses {
		def, err := entities.NewStatusDef(s.ID, s.Name, s.Color, s.Terminal)
		if err != nil {
			return err
		}
		if seen[def.ID] {
			return &entities.ConflictError{Resource: "status", Key: string(def.ID)}
		}
		seen[def.ID] = true
		loaded = append(loaded, *def)
	}
	r.statuses = loaded
	return nil
}

func (r *StatusRepository) find(id entities.StatusID) int {
	for i := range r.statuses {
		if r.statuses[i].ID == id {
			return i
		}
	}
	return -1
}
