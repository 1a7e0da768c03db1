package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"buildtrack/config"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	if app != nil {
		e.App = app
	}
	e.Request = req
	e.Response = rec
	return e
}

// testConfig is the configuration handler tests run with: no tax, no
// default markup.
func testConfig() *config.Config {
	return &config.Config{
		Pricing: config.PricingConfig{
			CurrencySymbol: "₱",
			CurrencyCode:   "PHP",
			Workers:        2,
		},
	}
}

// serve runs handler against req with the id path value set and returns the recorder.
func serve(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error, req *http.Request, id string) *httptest.ResponseRecorder {
	t.Helper()
	if id != "" {
		req.SetPathValue("id", id)
	}
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}
