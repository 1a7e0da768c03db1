package handlers

import (
	"fmt"
	"strings"

	"buildtrack/services"
	"buildtrack/templates"
)

// buildBOMViewData formats a priced BOM for the BOM templates.
func buildBOMViewData(project *services.RawProject, priced services.PricedBOM, symbol string) templates.BOMViewData {
	money := func(v float64) string { return services.FormatMoney(symbol, v) }

	data := templates.BOMViewData{
		ProjectID:        project.ID,
		ProjectName:      project.Name,
		Status:           string(project.Status),
		MaterialTotal:    money(priced.MaterialTotalCost),
		LaborCost:        money(priced.LaborCost),
		Tax:              money(priced.Tax),
		TotalProjectCost: money(priced.TotalProjectCost),
		GrandTotal:       money(priced.ClientTotal()),
		MarkupStale:      priced.MarkupStale,
	}

	for _, d := range services.BuildDetailLines(priced.ProjectDetails) {
		data.Details = append(data.Details, templates.DetailView{Label: d.Label, Value: d.Value})
	}

	for i, c := range priced.Categories {
		cv := templates.CategoryView{
			Index: i + 1,
			Name:  strings.ToUpper(c.Name),
			Total: money(c.CategoryTotal),
		}
		for j, m := range c.Materials {
			cv.Materials = append(cv.Materials, templates.MaterialView{
				Index:       fmt.Sprintf("%d.%d", i+1, j+1),
				Description: m.Description,
				Qty:         services.FormatQty(m.Quantity),
				Unit:        m.Unit,
				UnitCost:    money(m.UnitCost),
				LineTotal:   money(m.LineTotal),
			})
		}
		data.Categories = append(data.Categories, cv)
	}

	// The markup lines come from the same summary the exports use.
	for _, line := range services.BuildSummaryLines(priced) {
		if strings.HasPrefix(line.Label, "Markup") {
			data.HasMarkup = true
			data.MarkupLabel = line.Label
			data.Markup = money(line.Amount)
		}
	}
	return data
}

// buildProgressViewData formats a progress snapshot for the progress templates.
func buildProgressViewData(project *services.RawProject, snap services.ProgressSnapshot) templates.ProgressViewData {
	data := templates.ProgressViewData{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Status:      string(project.Status),
		Percent:     services.DisplayPercent(snap.Progress),
		HasData:     snap.HasData,
	}

	for i, f := range snap.Floors {
		fv := templates.FloorView{
			Name:           f.Name,
			Percent:        services.DisplayPercent(f.Progress),
			TaskCount:      f.TaskCount,
			CompletedTasks: f.CompletedTasks,
		}
		if i < len(project.Floors) {
			for _, t := range project.Floors[i].Tasks {
				fv.Tasks = append(fv.Tasks, templates.TaskView{
					Name:    t.Name,
					Percent: services.DisplayPercent(t.Progress.UnwrapOrZero()),
				})
			}
		}
		data.Floors = append(data.Floors, fv)
	}
	return data
}
