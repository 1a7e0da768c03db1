package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildtrack/services"
)

const foundationBOMJSON = `{
	"projectDetails": {"totalArea": 120, "numFloors": null},
	"categories": [
		{"category": "Foundation", "materials": [
			{"description": "Cement", "quantity": 100, "unit": "bag", "unitCost": 100}
		]}
	],
	"laborCost": 20000,
	"tax": 3000
}`

func postJSON(t *testing.T, handler func(*http.Request) *httptest.ResponseRecorder, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return handler(req)
}

func TestHandleComputeBOM(t *testing.T) {
	tests := []struct {
		name   string
		target string
		total  float64
		client float64
	}{
		{"no markup", "/api/bom/compute", 33000, 33000},
		{"percent markup", "/api/bom/compute?markup_percent=15", 33000, 37950},
		{"fixed markup", "/api/bom/compute?markup_fixed=5000", 33000, 38000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, func(r *http.Request) *httptest.ResponseRecorder {
				return serve(t, nil, HandleComputeBOM(testConfig()), r, "")
			}, tt.target, foundationBOMJSON)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var priced services.PricedBOM
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &priced))
			assert.Equal(t, tt.total, priced.TotalProjectCost)
			assert.Equal(t, tt.client, priced.ClientTotal())
			assert.Equal(t, 10000.0, priced.Categories[0].Materials[0].LineTotal)
		})
	}
}

func TestHandleComputeBOM_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"null body", "/api/bom/compute", "null", http.StatusUnprocessableEntity},
		{"invalid JSON", "/api/bom/compute", "{", http.StatusBadRequest},
		{"bad markup", "/api/bom/compute?markup_percent=x", foundationBOMJSON, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, func(r *http.Request) *httptest.ResponseRecorder {
				return serve(t, nil, HandleComputeBOM(testConfig()), r, "")
			}, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleComputeBOM_MalformedFieldsTolerated(t *testing.T) {
	body := `{"categories":[{"category":"Roofing","materials":[
		{"description":"Sheet","quantity":"4","unitCost":"abc"},
		{"description":"Nails","quantity":-2,"unitCost":50},
		{"description":"Screws","quantity":3,"unitCost":12.5}
	]}],"laborCost":null}`

	rec := postJSON(t, func(r *http.Request) *httptest.ResponseRecorder {
		return serve(t, nil, HandleComputeBOM(testConfig()), r, "")
	}, "/api/bom/compute", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var priced services.PricedBOM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &priced))
	assert.Equal(t, 37.5, priced.TotalProjectCost)
}

func TestHandleComputeProgress(t *testing.T) {
	body := `{"id":"p1","floors":[
		{"name":"A","tasks":[{"name":"t1","progress":50},{"name":"t2","progress":100}]},
		{"name":"B","tasks":[]}
	]}`

	rec := postJSON(t, func(r *http.Request) *httptest.ResponseRecorder {
		return serve(t, nil, HandleComputeProgress(), r, "")
	}, "/api/progress/compute", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap services.ProgressSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 37.5, snap.Progress)
	assert.Equal(t, "p1", snap.ProjectID)
	assert.True(t, snap.HasData)
}

func TestHandleComputeProgress_Null(t *testing.T) {
	rec := postJSON(t, func(r *http.Request) *httptest.ResponseRecorder {
		return serve(t, nil, HandleComputeProgress(), r, "")
	}, "/api/progress/compute", "null")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no project available")
}
