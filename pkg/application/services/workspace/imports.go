package workspace

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
)

// ApplyQuantities applies a bulk quantity sheet. Each name updates a component's stock
// when a component has it, otherwise a subassembly's produced quantity.
func (w *Workspace) ApplyQuantities(updates []dto.QuantityUpdate) dto.BulkUpdateResult {
	var result dto.BulkUpdateResult
	_ = w.mutate(func() ([]events.Event, error) {
		result = w.query.BulkApplyQuantities(updates)

		var pending []events.Event
		if result.ComponentsTouched {
			pending = append(pending, w.componentsEvent("bulk_quantities", ""))
		}
		if result.SubassembliesTouched {
			pending = append(pending, w.subassembliesEvent("bulk_quantities", ""))
		}
		return pending, nil
	})

	w.logger.Info("bulk quantities applied",
		zap.Int("updated", result.Updated),
		zap.Int("not_found", result.NotFound),
		zap.Int("invalid", result.Invalid))
	return result
}

// ImportBOM creates one subassembly per row in categoryID. Component names are
// resolved by exact case-insensitive match; names that do not resolve are reported as
// not imported and are never created.
func (w *Workspace) ImportBOM(categoryID entities.CategoryID, rows []dto.ImportRow) (*dto.ImportResult, error) {
	result := &dto.ImportResult{Created: make([]entities.Subassembly, 0, len(rows))}

	err := w.mutate(func() ([]events.Event, error) {
		if _, err := w.categories.Get(categoryID); err != nil {
			return nil, err
		}

		notImported := make(map[string]bool)
		for i, row := range rows {
			name := strings.TrimSpace(row.SubassemblyName)
			if name == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: subassembly name is empty", i+1))
				continue
			}

			var requirements []entities.ComponentRequirement
			for _, line := range row.Requirements {
				component, ok := w.components.FindByName(line.ComponentName)
				if !ok {
					folded := entities.FoldName(line.ComponentName)
					if !notImported[folded] {
						notImported[folded] = true
						result.NotImported = append(result.NotImported, strings.TrimSpace(line.ComponentName))
					}
					continue
				}
				if line.Quantity < 0 {
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: negative quantity for %s", i+1, component.Name))
					continue
				}
				requirements = append(requirements, entities.ComponentRequirement{
					ComponentID:      component.ID,
					RequiredQuantity: line.Quantity,
				})
			}

			node, err := w.subassemblies.Add(entities.NewSubassembly{
				Category:       categoryID,
				Name:           name,
				TargetQuantity: 1,
				Status:         w.statuses.Default().ID,
				Components:     requirements,
			})
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}
			result.Created = append(result.Created, *node)
		}

		if len(result.Created) == 0 {
			return nil, nil
		}
		return []events.Event{w.subassembliesEvent("import", string(categoryID))}, nil
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("bom imported",
		zap.String("category", string(categoryID)),
		zap.Int("created", len(result.Created)),
		zap.Int("not_imported", len(result.NotImported)))
	return result, nil
}
