package events

import (
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// Streams, one per persisted aggregate
const (
	ComponentsStream    = "components"
	CategoriesStream    = "categories"
	SubassembliesStream = "subassemblies"
	StatusesStream      = "statuses"
)

const (
	ComponentsChangedEvent    = "components.changed"
	CategoriesChangedEvent    = "categories.changed"
	SubassembliesChangedEvent = "subassemblies.changed"
	StatusesChangedEvent      = "statuses.changed"
)

// AllEventTypes lists every event the workspace emits
var AllEventTypes = []string{
	ComponentsChangedEvent,
	CategoriesChangedEvent,
	SubassembliesChangedEvent,
	StatusesChangedEvent,
}

// ComponentsChanged carries the full component list after a mutation
type ComponentsChanged struct {
	Action     string               `json:"action"`
	Subject    string               `json:"subject,omitempty"`
	Components []entities.Component `json:"components"`
}

// CategoriesChanged carries the full category list after a mutation
type CategoriesChanged struct {
	Action     string              `json:"action"`
	Subject    string              `json:"subject,omitempty"`
	Categories []entities.Category `json:"categories"`
}

// SubassembliesChanged carries the whole partition map after a mutation.
// Order is the category order the partitions were listed in.
type SubassembliesChanged struct {
	Action     string                                         `json:"action"`
	Subject    string                                         `json:"subject,omitempty"`
	Partitions map[entities.CategoryID][]entities.Subassembly `json:"partitions"`
	Order      []entities.CategoryID                          `json:"order"`
}

// StatusesChanged carries the full status catalog after a mutation
type StatusesChanged struct {
	Action   string               `json:"action"`
	Subject  string               `json:"subject,omitempty"`
	Statuses []entities.StatusDef `json:"statuses"`
}
