package entities

import "strings"

// StatusID identifies a configured node status
type StatusID string

// StatusDef is one entry of the user-editable status catalog.
// Terminal marks the conventional "done" states; transitions are never enforced.
type StatusDef struct {
	ID       StatusID `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Color    string   `json:"color" yaml:"color"`
	Terminal bool     `json:"terminal" yaml:"terminal"`
}

// NewStatusDef creates a validated StatusDef
func NewStatusDef(id StatusID, name, color string, terminal bool) (*StatusDef, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, NewValidationError("id", "status id cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "status name cannot be empty")
	}
	return &StatusDef{ID: id, Name: name, Color: color, Terminal: terminal}, nil
}

// DefaultStatuses returns the catalog used when nothing has been configured
func DefaultStatuses() []StatusDef {
	return []StatusDef{
		{ID: "planned", Name: "Planned", Color: "#9e9e9e"},
		{ID: "in_progress", Name: "In progress", Color: "#2196f3"},
		{ID: "blocked", Name: "Blocked", Color: "#f44336"},
		{ID: "completed", Name: "Completed", Color: "#4caf50", Terminal: true},
	}
}
