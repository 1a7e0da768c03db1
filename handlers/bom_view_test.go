package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildtrack/services"
	"buildtrack/testhelpers"
)

func TestHandleBOMView_JSON(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.Id+"/bom?format=json", nil)
	rec := serve(t, app, HandleBOMView(app, testConfig()), req, project.Id)

	require.Equal(t, http.StatusOK, rec.Code)
	var priced services.PricedBOM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &priced))
	require.Len(t, priced.Categories, 1)
	assert.Equal(t, 10000.0, priced.Categories[0].CategoryTotal)
	assert.Equal(t, 10000.0, priced.MaterialTotalCost)
	assert.Equal(t, 33000.0, priced.TotalProjectCost)
	assert.Nil(t, priced.MarkedUpCosts)
}

func TestHandleBOMView_HTML(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.Id+"/bom", nil)
	rec := serve(t, app, HandleBOMView(app, testConfig()), req, project.Id)

	assert.Equal(t, http.StatusOK, rec.Code)
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Foundation House", "FOUNDATION", "Cement", "₱10,000.00", "₱33,000.00", "Total Area", "120 sqm")
}

func TestHandleBOMView_TaxRateFromConfig(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateFoundationProject(t, app, "Foundation House")

	cfg := testConfig()
	rate := 0.12
	cfg.Pricing.TaxRate = &rate

	req := httptest.NewRequest(http.MethodGet, "/test?format=json", nil)
	rec := serve(t, app, HandleBOMView(app, cfg), req, project.Id)

	var priced services.PricedBOM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &priced))
	assert.Equal(t, 3600.0, priced.Tax)
	assert.Equal(t, 33600.0, priced.TotalProjectCost)
}

func TestHandleBOMView_NoBOM(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "No BOM Yet")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := serve(t, app, HandleBOMView(app, testConfig()), req, project.Id)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No BOM available", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("HX-Trigger"))
}

func TestHandleBOMView_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept", "application/json")
	rec := serve(t, app, HandleBOMView(app, testConfig()), req, "nonexistent")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())
}

func TestHandleBOMView_EmptyBOM(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Labor Only")
	testhelpers.CreateTestBOM(t, app, project.Id, 1750.5, 0)

	req := httptest.NewRequest(http.MethodGet, "/test?format=json", nil)
	rec := serve(t, app, HandleBOMView(app, testConfig()), req, project.Id)

	require.Equal(t, http.StatusOK, rec.Code)
	var priced services.PricedBOM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &priced))
	assert.Equal(t, 0.0, priced.MaterialTotalCost)
	assert.Equal(t, 1750.5, priced.TotalProjectCost)
}
