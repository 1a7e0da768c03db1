package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/services"
)

// wantsJSON reports whether the client asked for JSON, via the Accept header
// or ?format=json.
func wantsJSON(e *core.RequestEvent) bool {
	if e.Request.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(e.Request.Header.Get("Accept"), "application/json")
}

// isHTMX reports whether the request was issued by HTMX.
func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

// respond writes data as JSON for JSON clients, the content component for
// HTMX requests and the full page otherwise.
func respond(e *core.RequestEvent, data any, content, page templ.Component) error {
	if wantsJSON(e) {
		return e.JSON(http.StatusOK, data)
	}
	component := page
	if isHTMX(e) {
		component = content
	}
	return component.Render(e.Request.Context(), e.Response)
}

// respondError writes {"error": message} for JSON clients and an error toast
// otherwise.
func respondError(e *core.RequestEvent, status int, message string) error {
	if wantsJSON(e) {
		return e.JSON(status, map[string]string{"error": message})
	}
	return ErrorToast(e, status, message)
}

// missingDataMessage maps a load error to a 404 message, or "" when the
// error is not a missing-data error.
func missingDataMessage(err error) string {
	var missing *services.MissingDataError
	if !errors.As(err, &missing) {
		return ""
	}
	if missing.Entity == "bom" {
		return "No BOM available"
	}
	return "Project not found"
}
