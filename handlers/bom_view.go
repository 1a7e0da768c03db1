package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/collections"
	"buildtrack/config"
	"buildtrack/services"
	"buildtrack/templates"
)

// loadPricedProject loads a project and prices its BOM with policy.
func loadPricedProject(app *pocketbase.PocketBase, projectID string, policy services.PricingPolicy) (*services.RawProject, services.PricedBOM, error) {
	project, err := collections.LoadProject(app, projectID)
	if err != nil {
		return nil, services.PricedBOM{}, err
	}
	if project.BOM == nil {
		return project, services.PricedBOM{}, &services.MissingDataError{Entity: "bom", ID: projectID}
	}
	priced, err := services.ComputeBOM(project.BOM, policy)
	return project, priced, err
}

// loadFailed answers a failed load: 404 for missing data, 500 otherwise.
func loadFailed(app *pocketbase.PocketBase, e *core.RequestEvent, component string, err error) error {
	if msg := missingDataMessage(err); msg != "" {
		return respondError(e, http.StatusNotFound, msg)
	}
	app.Logger().Error(component+": could not load project", "project", e.Request.PathValue("id"), "error", err)
	return respondError(e, http.StatusInternalServerError, "Failed to load project")
}

// HandleBOMView returns a handler that renders the priced BOM of a project.
// Cached markups are shown while the BOM they were priced from is unchanged.
func HandleBOMView(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return respondError(e, http.StatusBadRequest, "Missing project ID")
		}

		project, priced, err := loadPricedProject(app, projectID, cfg.ViewPolicy())
		if err != nil {
			return loadFailed(app, e, "bom_view", err)
		}

		if priced.MarkupStale {
			app.Logger().Info("bom_view: cached markup is stale", "project", projectID)
		}

		data := buildBOMViewData(project, priced, cfg.Pricing.CurrencySymbol)
		return respond(e, priced, templates.BOMContent(data), templates.BOMPage(data))
	}
}
