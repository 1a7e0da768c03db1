package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. If an HX-Trigger header already exists, the toast
// payload is merged into the existing JSON object.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	trigger, err := mergeToastTrigger(e.Response.Header().Get("HX-Trigger"), toastType, message)
	if err != nil {
		if e.App != nil {
			e.App.Logger().Warn("toast: failed to build HX-Trigger", "error", err)
		}
		return
	}
	e.Response.Header().Set("HX-Trigger", trigger)
}

// mergeToastTrigger adds a showToast event to an HX-Trigger value. An
// existing value that is not a JSON object is replaced.
func mergeToastTrigger(existing, toastType, message string) (string, error) {
	events := map[string]any{}
	if existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil || events == nil {
			events = map[string]any{}
		}
	}
	events["showToast"] = map[string]string{
		"message": message,
		"type":    toastType,
	}

	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("marshal HX-Trigger: %w", err)
	}
	return string(data), nil
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// It sets HX-Reswap: none so the response body is ignored by HTMX, while the HX-Trigger
// header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
