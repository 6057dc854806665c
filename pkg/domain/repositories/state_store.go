package repositories

import (
	"context"
	"errors"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// ErrNoState is returned by StateStore.Load when nothing has been saved yet
var ErrNoState = errors.New("no saved state")

// StateStore mirrors the authoritative in-memory state. Every save replaces the whole
// aggregate; there is no partial write.
type StateStore interface {
	Load(ctx context.Context) (*entities.Snapshot, error)
	SaveComponents(ctx context.Context, components []entities.Component) error
	SaveCategories(ctx context.Context, categories []entities.Category) error
	SaveSubassemblies(ctx context.Context, partitions map[entities.CategoryID][]entities.Subassembly) error
	SaveStatuses(ctx context.Context, statuses []entities.StatusDef) error
	Close() error
}
