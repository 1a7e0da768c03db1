package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"buildtrack/config"
	"buildtrack/services"
)

// HandleComputeBOM returns a stateless handler that prices the RawBOM JSON
// in the request body. markup_percent and markup_fixed query values apply a
// markup; the configured tax rate always applies.
func HandleComputeBOM(cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var bom *services.RawBOM
		if err := json.NewDecoder(e.Request.Body).Decode(&bom); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		}

		query := e.Request.URL.Query()
		policy := cfg.ViewPolicy()
		if query.Get("markup_percent") != "" || query.Get("markup_fixed") != "" {
			var err error
			policy, err = parseMarkupPolicy(query.Get, cfg)
			if err != nil {
				return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
		}

		priced, err := services.ComputeBOM(bom, policy)
		if err != nil {
			return computeFailed(e, err)
		}
		return e.JSON(http.StatusOK, priced)
	}
}

// HandleComputeProgress returns a stateless handler that rolls up the
// RawProject JSON in the request body.
func HandleComputeProgress() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var project *services.RawProject
		if err := json.NewDecoder(e.Request.Body).Decode(&project); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		}

		snap, err := services.ComputeProgress(project)
		if err != nil {
			return computeFailed(e, err)
		}
		return e.JSON(http.StatusOK, snap)
	}
}

func computeFailed(e *core.RequestEvent, err error) error {
	if errors.Is(err, services.ErrMissingData) {
		return e.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return e.JSON(http.StatusInternalServerError, map[string]string{"error": "computation failed"})
}
