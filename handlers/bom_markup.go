package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/collections"
	"buildtrack/config"
	"buildtrack/services"
	"buildtrack/templates"
)

// parseMarkupPolicy builds the markup policy for a request from the
// markup_percent and markup_fixed values. When neither is given the
// configured default markup is used. Tax always follows the configuration.
func parseMarkupPolicy(get func(string) string, cfg *config.Config) (services.PricingPolicy, error) {
	policy := cfg.ViewPolicy()

	percent, err := parseOptionalNumber(get("markup_percent"))
	if err != nil {
		return policy, fmt.Errorf("invalid markup_percent: %w", err)
	}
	fixed, err := parseOptionalNumber(get("markup_fixed"))
	if err != nil {
		return policy, fmt.Errorf("invalid markup_fixed: %w", err)
	}

	if !percent.IsSet() && !fixed.IsSet() {
		return cfg.MarkupPolicy(), nil
	}
	if percent.IsSet() {
		policy.MarkupRate = services.Some(percent.UnwrapOrZero() / 100)
	}
	policy.MarkupFixed = fixed
	return policy, nil
}

// parseOptionalNumber parses a form or query value. Blank is unset.
func parseOptionalNumber(s string) (services.Number, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return services.Number{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return services.Number{}, err
	}
	return services.Some(v), nil
}

// HandleBOMMarkup returns a handler that prices the markup of a project's
// BOM and caches the marked-up totals on it.
func HandleBOMMarkup(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return respondError(e, http.StatusBadRequest, "Missing project ID")
		}

		if err := e.Request.ParseForm(); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid form data")
		}
		policy, err := parseMarkupPolicy(e.Request.FormValue, cfg)
		if err != nil {
			return respondError(e, http.StatusBadRequest, err.Error())
		}
		if !policy.HasMarkup() {
			return respondError(e, http.StatusBadRequest, "No markup given and no default markup configured")
		}

		project, priced, err := loadPricedProject(app, projectID, policy)
		if err != nil {
			return loadFailed(app, e, "bom_markup", err)
		}

		if err := collections.SaveMarkup(app, projectID, priced); err != nil {
			app.Logger().Error("bom_markup: could not save markup", "project", projectID, "error", err)
			return respondError(e, http.StatusInternalServerError, "Failed to save markup")
		}

		app.Logger().Info("bom_markup: markup applied",
			"project", projectID,
			"markup", priced.MarkedUpCosts.Markup,
			"total", priced.MarkedUpCosts.TotalProjectCost,
		)

		if !wantsJSON(e) {
			SetToast(e, "success", "Markup applied")
		}
		data := buildBOMViewData(project, priced, cfg.Pricing.CurrencySymbol)
		return respond(e, priced, templates.BOMContent(data), templates.BOMPage(data))
	}
}
