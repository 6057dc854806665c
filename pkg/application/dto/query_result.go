package dto

import (
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// NodeMatch is the soft result of a fuzzy node lookup
type NodeMatch struct {
	Found       bool                  `json:"found"`
	Node        *entities.Subassembly `json:"node,omitempty"`
	Suggestions []string              `json:"suggestions,omitempty"`
}

// ComponentMatch is the soft result of a fuzzy component lookup
type ComponentMatch struct {
	Found       bool                `json:"found"`
	Component   *entities.Component `json:"component,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

// RequirementView is one component requirement of a node joined with inventory
type RequirementView struct {
	ComponentID      entities.ComponentID `json:"component_id"`
	Name             string               `json:"name"`
	RequiredQuantity entities.Quantity    `json:"required_quantity"`
	Stock            entities.Quantity    `json:"stock"`
	LeadTimeDays     int                  `json:"lead_time_days"`
	Known            bool                 `json:"known"`
}

// Composition answers "what is X made of"
type Composition struct {
	Match        NodeMatch         `json:"match"`
	Children     []string          `json:"children,omitempty"`
	Requirements []RequirementView `json:"requirements,omitempty"`
}

// NameKind tells which store a name resolved against
type NameKind string

const (
	NameKindComponent   NameKind = "component"
	NameKindSubassembly NameKind = "subassembly"
	NameKindNone        NameKind = "none"
)

// NameRef is the tagged result of resolving a name across components and subassemblies
type NameRef struct {
	Kind NameKind `json:"kind"`
	ID   string   `json:"id,omitempty"`
}

// QuantityUpdate sets the stock of a component or the produced quantity of a node
type QuantityUpdate struct {
	Name     string            `json:"name" binding:"required"`
	Quantity entities.Quantity `json:"quantity"`
}

// BulkUpdateResult counts the outcome of a bulk quantity update
type BulkUpdateResult struct {
	Updated              int      `json:"updated"`
	NotFound             int      `json:"not_found"`
	Invalid              int      `json:"invalid"`
	NotFoundNames        []string `json:"not_found_names,omitempty"`
	ComponentsTouched    bool     `json:"-"`
	SubassembliesTouched bool     `json:"-"`
}

// ImportRequirement is one component line of a spreadsheet BOM row
type ImportRequirement struct {
	ComponentName string            `json:"component_name"`
	Quantity      entities.Quantity `json:"quantity"`
}

// ImportRow describes one subassembly to create from a spreadsheet
type ImportRow struct {
	SubassemblyName string              `json:"subassembly_name"`
	Requirements    []ImportRequirement `json:"requirements"`
}

// ImportResult reports what a BOM import created and what it skipped
type ImportResult struct {
	Created     []entities.Subassembly `json:"created"`
	NotImported []string               `json:"not_imported,omitempty"`
	Errors      []string               `json:"errors,omitempty"`
}
