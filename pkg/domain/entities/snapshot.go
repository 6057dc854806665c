package entities

// Snapshot is the full persisted state. Subassemblies keep the category-partitioned
// shape used by every storage backend.
type Snapshot struct {
	Components    []Component                  `json:"components" yaml:"components"`
	Categories    []Category                   `json:"categories" yaml:"categories"`
	Subassemblies map[CategoryID][]Subassembly `json:"subassemblies" yaml:"subassemblies"`
	Statuses      []StatusDef                  `json:"statuses" yaml:"statuses"`
}
