package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"buildtrack/services"
)

// SaveMarkup stores a freshly priced BOM's totals and marked-up costs on the
// project's BOM record, so later views can show the cached markup while the
// BOM is unchanged.
func SaveMarkup(app core.App, projectID string, priced services.PricedBOM) error {
	mc := priced.MarkedUpCosts
	if mc == nil {
		return fmt.Errorf("markup: project %s: priced BOM carries no markup", projectID)
	}

	record, err := findBOMRecord(app, projectID)
	if err != nil {
		return err
	}
	if record == nil {
		return &services.MissingDataError{Entity: "bom", ID: projectID}
	}

	record.Set("material_total_cost", priced.MaterialTotalCost)
	record.Set("computed_tax", priced.Tax)
	record.Set("total_project_cost", priced.TotalProjectCost)
	record.Set("marked_up_total", mc.TotalProjectCost)
	record.Set("marked_up_base", mc.BaseTotal)
	if mc.Rate != nil {
		record.Set("markup_mode", MarkupModeRate)
		record.Set("markup_rate", *mc.Rate)
		record.Set("markup_fixed", 0)
	} else {
		record.Set("markup_mode", MarkupModeFixed)
		record.Set("markup_rate", 0)
		record.Set("markup_fixed", mc.Markup)
	}

	if err := app.Save(record); err != nil {
		return fmt.Errorf("markup: save bom for project %s: %w", projectID, err)
	}
	return nil
}
