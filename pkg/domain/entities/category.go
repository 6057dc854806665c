package entities

import "strings"

// CategoryID identifies a product line
type CategoryID string

// Category is a named product line owning a partition of the subassembly graph
type Category struct {
	ID   CategoryID `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`
}

// SlugFromName derives a category id: trimmed, lower-cased, each space replaced by a hyphen
func SlugFromName(name string) CategoryID {
	return CategoryID(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-"))
}

// NewCategory creates a validated Category. An empty id is derived from the name.
func NewCategory(id CategoryID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "category name cannot be empty")
	}
	if id == "" {
		id = SlugFromName(name)
	}
	if id == "" {
		return nil, NewValidationError("id", "category id cannot be empty")
	}
	return &Category{ID: id, Name: name}, nil
}
