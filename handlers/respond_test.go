package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"buildtrack/services"
)

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		expect bool
	}{
		{"default html", "/x", "", false},
		{"accept header", "/x", "application/json", true},
		{"accept list", "/x", "text/html, application/json;q=0.9", true},
		{"format query", "/x?format=json", "", true},
		{"browser accept", "/x", "text/html,application/xhtml+xml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			e := newTestRequestEvent(nil, req, httptest.NewRecorder())
			assert.Equal(t, tt.expect, wantsJSON(e))
		})
	}
}

func TestMissingDataMessage(t *testing.T) {
	assert.Equal(t, "No BOM available", missingDataMessage(&services.MissingDataError{Entity: "bom"}))
	assert.Equal(t, "Project not found", missingDataMessage(&services.MissingDataError{Entity: "project"}))
	assert.Equal(t, "", missingDataMessage(assert.AnError))
}
