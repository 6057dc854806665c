package persistence

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// Seed returns the dataset a fresh installation starts with: one electric cart built
// from a control unit, a battery pack and a chassis.
func Seed() *entities.Snapshot {
	return &entities.Snapshot{
		Components: []entities.Component{
			{ID: "comp-1", Name: "Frame tube 25mm", Stock: 200, LeadTimeDays: 10, UnitCost: decimal.RequireFromString("6.40")},
			{ID: "comp-2", Name: "Caster wheel 100mm", Stock: 80, LeadTimeDays: 14, UnitCost: decimal.RequireFromString("4.20")},
			{ID: "comp-3", Name: "Bearing 6204", Stock: 150, LeadTimeDays: 7, UnitCost: decimal.RequireFromString("1.10")},
			{ID: "comp-4", Name: "Motor 24V", Stock: 12, LeadTimeDays: 28, UnitCost: decimal.RequireFromString("35")},
			{ID: "comp-5", Name: "Motor driver board", Stock: 15, LeadTimeDays: 35, UnitCost: decimal.RequireFromString("22.50")},
			{ID: "comp-6", Name: "Battery 24V 20Ah", Stock: 6, LeadTimeDays: 21, UnitCost: decimal.RequireFromString("140")},
			{ID: "comp-7", Name: "Emergency stop button", Stock: 40, LeadTimeDays: 5, UnitCost: decimal.RequireFromString("8.75")},
			{ID: "comp-8", Name: "Wiring harness", Stock: 25, LeadTimeDays: 12, UnitCost: decimal.RequireFromString("12")},
		},
		Categories: []entities.Category{
			{ID: "cart", Name: "Cart"},
			{ID: "control", Name: "Control"},
			{ID: "chassis", Name: "Chassis"},
		},
		Subassemblies: map[entities.CategoryID][]entities.Subassembly{
			"cart": {
				{
					ID: "cart-1", Name: "Cart", Category: "cart", TargetQuantity: 10, Status: "in_progress",
					Children: []entities.NodeID{"control-unit-1", "battery-pack-1", "chassis-1"},
					Position: entities.Position{X: 320, Y: 40},
				},
			},
			"control": {
				{
					ID: "control-unit-1", Name: "Control unit SA-10000111", Category: "control", TargetQuantity: 10, Status: "planned",
					Components: []entities.ComponentRequirement{
						{ComponentID: "comp-4", RequiredQuantity: 1},
						{ComponentID: "comp-5", RequiredQuantity: 1},
						{ComponentID: "comp-7", RequiredQuantity: 1},
						{ComponentID: "comp-8", RequiredQuantity: 1},
					},
					Position: entities.Position{X: 120, Y: 200},
				},
				{
					ID: "battery-pack-1", Name: "Battery pack SA-10000230", Category: "control", TargetQuantity: 10, Status: "planned",
					Components: []entities.ComponentRequirement{{ComponentID: "comp-6", RequiredQuantity: 1}},
					Position:   entities.Position{X: 320, Y: 200},
				},
			},
			"chassis": {
				{
					ID: "chassis-1", Name: "Chassis SA-20000040", Category: "chassis", TargetQuantity: 10, Status: "in_progress",
					Children:   []entities.NodeID{"wheel-set-1"},
					Components: []entities.ComponentRequirement{{ComponentID: "comp-1", RequiredQuantity: 8}},
					Position:   entities.Position{X: 520, Y: 200},
				},
				{
					ID: "wheel-set-1", Name: "Wheel set", Category: "chassis", TargetQuantity: 10, Status: "planned",
					Components: []entities.ComponentRequirement{
						{ComponentID: "comp-2", RequiredQuantity: 4},
						{ComponentID: "comp-3", RequiredQuantity: 8},
					},
					Position: entities.Position{X: 520, Y: 360},
				},
			},
		},
		Statuses: entities.DefaultStatuses(),
	}
}
