package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// Seq keeps the in-memory order of every aggregate.
type componentModel struct {
	ID           string          `gorm:"primaryKey;size:64"`
	Seq          int             `gorm:"not null;index"`
	Name         string          `gorm:"size:255;not null"`
	Stock        int64           `gorm:"not null"`
	LeadTimeDays int             `gorm:"not null"`
	UnitCost     decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0"`
}

func (componentModel) TableName() string { return "components" }

type categoryModel struct {
	ID   string `gorm:"primaryKey;size:64"`
	Seq  int    `gorm:"not null;index"`
	Name string `gorm:"size:255;not null"`
}

func (categoryModel) TableName() string { return "categories" }

type subassemblyModel struct {
	ID             string         `gorm:"primaryKey;size:128"`
	Seq            int            `gorm:"not null;index"`
	Category       string         `gorm:"size:64;not null;index"`
	Name           string         `gorm:"size:255;not null"`
	Quantity       int64          `gorm:"not null"`
	TargetQuantity int64          `gorm:"not null"`
	Status         string         `gorm:"size:64"`
	Children       datatypes.JSON `gorm:"type:jsonb"`
	Components     datatypes.JSON `gorm:"type:jsonb"`
	Comments       datatypes.JSON `gorm:"type:jsonb"`
	X              float64
	Y              float64
}

func (subassemblyModel) TableName() string { return "subassemblies" }

type statusModel struct {
	ID       string `gorm:"primaryKey;size:64"`
	Seq      int    `gorm:"not null;index"`
	Name     string `gorm:"size:255;not null"`
	Color    string `gorm:"size:32"`
	Terminal bool   `gorm:"not null;default:false"`
}

func (statusModel) TableName() string { return "statuses" }

func toComponentModel(seq int, c entities.Component) componentModel {
	return componentModel{
		ID:           string(c.ID),
		Seq:          seq,
		Name:         c.Name,
		Stock:        int64(c.Stock),
		LeadTimeDays: c.LeadTimeDays,
		UnitCost:     c.UnitCost,
	}
}

func (m componentModel) entity() entities.Component {
	return entities.Component{
		ID:           entities.ComponentID(m.ID),
		Name:         m.Name,
		Stock:        entities.Quantity(m.Stock),
		LeadTimeDays: m.LeadTimeDays,
		UnitCost:     m.UnitCost,
	}
}

func toSubassemblyModel(seq int, category entities.CategoryID, s entities.Subassembly) (subassemblyModel, error) {
	children, err := jsonColumn(s.Children)
	if err != nil {
		return subassemblyModel{}, fmt.Errorf("subassembly %s children: %w", s.ID, err)
	}
	components, err := jsonColumn(s.Components)
	if err != nil {
		return subassemblyModel{}, fmt.Errorf("subassembly %s components: %w", s.ID, err)
	}
	comments, err := jsonColumn(s.Comments)
	if err != nil {
		return subassemblyModel{}, fmt.Errorf("subassembly %s comments: %w", s.ID, err)
	}

	return subassemblyModel{
		ID:             string(s.ID),
		Seq:            seq,
		Category:       string(category),
		Name:           s.Name,
		Quantity:       int64(s.Quantity),
		TargetQuantity: int64(s.TargetQuantity),
		Status:         string(s.Status),
		Children:       children,
		Components:     components,
		Comments:       comments,
		X:              s.Position.X,
		Y:              s.Position.Y,
	}, nil
}

func (m subassemblyModel) entity() (entities.Subassembly, error) {
	s := entities.Subassembly{
		ID:             entities.NodeID(m.ID),
		Name:           m.Name,
		Category:       entities.CategoryID(m.Category),
		Quantity:       entities.Quantity(m.Quantity),
		TargetQuantity: entities.Quantity(m.TargetQuantity),
		Status:         entities.StatusID(m.Status),
		Position:       entities.Position{X: m.X, Y: m.Y},
	}
	if err := readColumn(m.Children, &s.Children); err != nil {
		return s, fmt.Errorf("subassembly %s children: %w", m.ID, err)
	}
	if err := readColumn(m.Components, &s.Components); err != nil {
		return s, fmt.Errorf("subassembly %s components: %w", m.ID, err)
	}
	if err := readColumn(m.Comments, &s.Comments); err != nil {
		return s, fmt.Errorf("subassembly %s comments: %w", m.ID, err)
	}
	return s, nil
}

// jsonColumn stores nil slices as [] so the column is never null
func jsonColumn[T any](values []T) (datatypes.JSON, error) {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func readColumn(column datatypes.JSON, out interface{}) error {
	if len(column) == 0 {
		return nil
	}
	return json.Unmarshal(column, out)
}
