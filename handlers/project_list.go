package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/collections"
	"buildtrack/config"
	"buildtrack/services"
	"buildtrack/templates"
)

// ProjectSummary is one project in the project list.
type ProjectSummary struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Status           services.ProjectStatus `json:"status"`
	StartDate        *time.Time             `json:"startDate,omitempty"`
	HasBOM           bool                   `json:"hasBom"`
	TotalProjectCost float64                `json:"totalProjectCost"`
	ClientTotal      float64                `json:"clientTotal"`
	Progress         float64                `json:"progress"`
}

// HandleProjectList returns a handler that lists projects with their priced
// totals and progress. The min_budget and max_budget query values filter on
// the total project cost; projects without a BOM are only listed when no
// budget is given.
func HandleProjectList(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query()
		minBudget, errMin := parseOptionalNumber(query.Get("min_budget"))
		maxBudget, errMax := parseOptionalNumber(query.Get("max_budget"))
		if errMin != nil || errMax != nil {
			return respondError(e, http.StatusBadRequest, "Budget must be a number")
		}
		budget := services.BudgetRange{Min: minBudget, Max: maxBudget}
		filtering := minBudget.IsSet() || maxBudget.IsSet()

		projects, err := collections.LoadProjects(app)
		if err != nil {
			app.Logger().Error("project_list: could not load projects", "error", err)
			return respondError(e, http.StatusInternalServerError, "Failed to load projects")
		}

		boms := make([]*services.RawBOM, len(projects))
		for i, p := range projects {
			boms[i] = p.BOM
		}
		results, err := services.PriceBOMs(e.Request.Context(), boms, cfg.ViewPolicy(), cfg.Pricing.Workers)
		if err != nil {
			app.Logger().Warn("project_list: pricing cancelled", "error", err)
			return respondError(e, http.StatusServiceUnavailable, "Request cancelled")
		}

		costs := make([]services.ProjectCost, 0, len(projects))
		for i, p := range projects {
			if results[i].Err == nil {
				costs = append(costs, services.ProjectCost{
					ProjectID:        p.ID,
					Name:             p.Name,
					TotalProjectCost: results[i].Priced.TotalProjectCost,
				})
			}
		}
		inBudget := make(map[string]bool)
		for _, c := range services.FilterByBudget(costs, budget) {
			inBudget[c.ProjectID] = true
		}

		summaries := make([]ProjectSummary, 0, len(projects))
		for i, p := range projects {
			hasBOM := results[i].Err == nil
			if filtering && !inBudget[p.ID] {
				continue
			}
			s := ProjectSummary{
				ID:     p.ID,
				Name:   p.Name,
				Status: p.Status,
				HasBOM: hasBOM,
			}
			if !p.StartDate.IsZero() {
				start := p.StartDate
				s.StartDate = &start
			}
			if hasBOM {
				s.TotalProjectCost = results[i].Priced.TotalProjectCost
				s.ClientTotal = results[i].Priced.ClientTotal()
			}
			if snap, err := services.ComputeProgress(p); err == nil {
				s.Progress = snap.Progress
			}
			summaries = append(summaries, s)
		}

		data := buildProjectListData(summaries, query.Get("min_budget"), query.Get("max_budget"), cfg.Pricing.CurrencySymbol)
		return respond(e, summaries, templates.ProjectListContent(data), templates.ProjectListPage(data))
	}
}

func buildProjectListData(summaries []ProjectSummary, minBudget, maxBudget, symbol string) templates.ProjectListData {
	data := templates.ProjectListData{
		MinBudget: minBudget,
		MaxBudget: maxBudget,
	}
	for _, p := range services.BudgetPresets {
		data.Presets = append(data.Presets, templates.PresetView{
			Label: p.Label,
			Value: services.FormatQty(p.Value),
		})
	}
	for _, s := range summaries {
		row := templates.ProjectRow{
			ID:      s.ID,
			Name:    s.Name,
			Status:  string(s.Status),
			HasBOM:  s.HasBOM,
			Total:   services.FormatMoney(symbol, s.ClientTotal),
			Percent: services.DisplayPercent(s.Progress),
		}
		if s.StartDate != nil {
			row.StartDate = s.StartDate.Format("02 Jan 2006")
		} else {
			row.StartDate = "—"
		}
		data.Projects = append(data.Projects, row)
	}
	return data
}
