package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/collections"
	"buildtrack/services"
	"buildtrack/templates"
)

// HandleProjectProgress returns a handler that renders the progress rollup
// of a project.
func HandleProjectProgress(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return respondError(e, http.StatusBadRequest, "Missing project ID")
		}

		project, err := collections.LoadProject(app, projectID)
		if err != nil {
			return loadFailed(app, e, "progress", err)
		}

		snap, err := services.ComputeProgress(project)
		if err != nil {
			return loadFailed(app, e, "progress", err)
		}

		data := buildProgressViewData(project, snap)
		return respond(e, snap, templates.ProgressContent(data), templates.ProgressPage(data))
	}
}
