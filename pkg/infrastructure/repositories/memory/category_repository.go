package memory

import (
	"strings"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

// CategoryRepository provides in-memory category storage in insertion order
type CategoryRepository struct {
	categories []entities.Category
}

// NewCategoryRepository creates a new in-memory category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: []entities.Category{}}
}

// Verify interface compliance
var _ repositories.CategoryRepository = (*CategoryRepository)(nil)

// Add creates a category whose id is derived from its name
func (r *CategoryRepository) Add(name string) (*entities.Category, error) {
	return r.AddWithID("", name)
}

// AddWithID creates a category with an explicit id; an empty id is derived from name
func (r *CategoryRepository) AddWithID(id entities.CategoryID, name string) (*entities.Category, error) {
	category, err := entities.NewCategory(id, name)
	if err != nil {
		return nil, err
	}
	if r.find(category.ID) >= 0 {
		return nil, &entities.ConflictError{Resource: "category", Key: string(category.ID)}
	}

	r.categories = append(r.categories, *category)
	return category, nil
}

// Rename changes the display name of a category
func (r *CategoryRepository) Rename(id entities.CategoryID, name string) (*entities.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.NewValidationError("name", "category name cannot be empty")
	}
	i := r.find(id)
	if i < 0 {
		return nil, entities.NewNotFoundError("category", string(id))
	}

	r.categories[i].Name = name
	out := r.categories[i]
	return &out, nil
}

// Delete removes a category. Its partition is removed by the subassembly repository.
func (r *CategoryRepository) Delete(id entities.CategoryID) error {
	i := r.find(id)
	if i < 0 {
		return entities.NewNotFoundError("category", string(id))
	}
	r.categories = append(r.categories[:i], r.categories[i+1:]...)
	return nil
}

// Get returns the category with the given id
func (r *CategoryRepository) Get(id entities.CategoryID) (*entities.Category, error) {
	i := r.find(id)
	if i < 0 {
		return nil, entities.NewNotFoundError("category", string(id))
	}
	out := r.categories[i]
	return &out, nil
}

// List returns all categories in insertion order
func (r *CategoryRepository) List() []entities.Category {
	return append([]entities.Category{}, r.categories...)
}

// Replace swaps the whole registry
func (r *CategoryRepository) Replace(categories []entities.Category) error {
	loaded := make([]entities.Category, 0, len(categories))
	seen := make(map[entities.CategoryID]bool, len(categories))
	for _, c := range categories {
		category, err := entities.NewCategory(c.ID, c.Name)
		if err != nil {
			return err
		}
		if seen[category.ID] {
			return &entities.ConflictError{Resource: "category", Key: string(category.ID)}
		}
		seen[category.ID] = true
		loaded = append(loaded, *category)
	}
	r.categories = loaded
	return nil
}

func (r *CategoryRepository) find(id entities.CategoryID) int {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return i
		}
	}
	return -1
}
