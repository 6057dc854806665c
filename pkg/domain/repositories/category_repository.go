package repositories

import "github.com/vsinha/prodtrack/pkg/domain/entities"

// CategoryRepository is the registry of product lines
type CategoryRepository interface {
	Add(name string) (*entities.Category, error)
	AddWithID(id entities.CategoryID, name string) (*entities.Category, error)
	Rename(id entities.CategoryID, name string) (*entities.Category, error)
	Delete(id entities.CategoryID) error
	Get(id entities.CategoryID) (*entities.Category, error)
	List() []entities.Category
	Replace(categories []entities.Category) error
}
