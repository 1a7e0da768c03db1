package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"buildtrack/services"
)

// RefreshStats counts the records whose cached values changed.
type RefreshStats struct {
	Projects  int
	Floors    int
	Materials int
	BOMs      int
}

// RefreshDerivedCaches recomputes the derived fields stored alongside the
// raw data: floor progress, material line totals and the BOM totals. Each
// project is written in its own transaction. The entered tax is never
// overwritten; the tax the totals were priced with goes to computed_tax.
// Marked-up totals are left alone; they are only written by SaveMarkup.
func RefreshDerivedCaches(app core.App, policy services.PricingPolicy) (RefreshStats, error) {
	var stats RefreshStats

	// The markup cache is never refreshed from here.
	policy = services.PricingPolicy{TaxRate: policy.TaxRate}

	records, err := app.FindAllRecords("projects")
	if err != nil {
		return stats, fmt.Errorf("refresh: query projects: %w", err)
	}

	for _, project := range records {
		var floors, materials, boms int
		err := app.RunInTransaction(func(txApp core.App) error {
			var err error
			if floors, err = refreshFloors(txApp, project.Id); err != nil {
				return err
			}
			materials, boms, err = refreshBOM(txApp, project.Id, policy)
			return err
		})
		if err != nil {
			return stats, fmt.Errorf("refresh: project %s: %w", project.Id, err)
		}
		stats.Projects++
		stats.Floors += floors
		stats.Materials += materials
		stats.BOMs += boms
	}

	app.Logger().Info("refresh: derived caches updated",
		"projects", stats.Projects,
		"floors", stats.Floors,
		"materials", stats.Materials,
		"boms", stats.BOMs,
	)
	return stats, nil
}

func refreshFloors(app core.App, projectID string) (int, error) {
	floors, err := loadFloors(app, projectID)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, f := range floors {
		progress := services.CalcFloorProgress(f.Tasks)
		if f.Progress.UnwrapOrZero() == progress {
			continue
		}
		record, err := app.FindRecordById("floors", f.ID)
		if err != nil {
			return changed, fmt.Errorf("find floor %s: %w", f.ID, err)
		}
		record.Set("progress", progress)
		if err := app.Save(record); err != nil {
			return changed, fmt.Errorf("save floor %s: %w", f.ID, err)
		}
		changed++
	}
	return changed, nil
}

func refreshBOM(app core.App, projectID string, policy services.PricingPolicy) (materials, boms int, err error) {
	bomRecord, err := findBOMRecord(app, projectID)
	if err != nil || bomRecord == nil {
		return 0, 0, err
	}

	categories, err := app.FindRecordsByFilter(
		"bom_categories",
		"bom = {:bomId}",
		"sort_order", 0, 0,
		map[string]any{"bomId": bomRecord.Id},
	)
	if err != nil {
		return 0, 0, fmt.Errorf("query categories for bom %s: %w", bomRecord.Id, err)
	}
	for _, c := range categories {
		records, err := app.FindRecordsByFilter(
			"bom_materials",
			"category = {:categoryId}",
			"sort_order", 0, 0,
			map[string]any{"categoryId": c.Id},
		)
		if err != nil {
			return materials, 0, fmt.Errorf("query materials for category %s: %w", c.Id, err)
		}
		for _, m := range records {
			line := services.CalcMaterialLineTotal(
				services.Some(m.GetFloat("quantity")),
				services.Some(m.GetFloat("unit_cost")),
			)
			if m.GetFloat("line_total") == line {
				continue
			}
			m.Set("line_total", line)
			if err := app.Save(m); err != nil {
				return materials, 0, fmt.Errorf("save material %s: %w", m.Id, err)
			}
			materials++
		}
	}

	bom, err := bomFromRecord(app, bomRecord)
	if err != nil {
		return materials, 0, err
	}
	priced, err := services.ComputeBOM(bom, policy)
	if err != nil {
		return materials, 0, err
	}

	if bomRecord.GetFloat("material_total_cost") == priced.MaterialTotalCost &&
		bomRecord.GetFloat("computed_tax") == priced.Tax &&
		bomRecord.GetFloat("total_project_cost") == priced.TotalProjectCost {
		return materials, 0, nil
	}
	bomRecord.Set("material_total_cost", priced.MaterialTotalCost)
	bomRecord.Set("computed_tax", priced.Tax)
	bomRecord.Set("total_project_cost", priced.TotalProjectCost)
	if err := app.Save(bomRecord); err != nil {
		return materials, 0, fmt.Errorf("save bom %s: %w", bomRecord.Id, err)
	}
	return materials, 1, nil
}
