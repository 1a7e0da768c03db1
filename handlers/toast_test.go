package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeToast(t *testing.T, trigger string) (map[string]json.RawMessage, map[string]string) {
	t.Helper()
	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(trigger), &parsed), "HX-Trigger is not valid JSON")
	var toast map[string]string
	require.NoError(t, json.Unmarshal(parsed["showToast"], &toast))
	return parsed, toast
}

func TestSetToast(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		toastType string
		message   string
		keeps     string
	}{
		{"fresh header", "", "success", "Markup applied", ""},
		{"merges with existing", `{"someEvent":{"key":"value"}}`, "info", "Merged", "someEvent"},
		{"replaces invalid existing", "notValidJSON", "error", "Overwritten", ""},
		{"replaces non-object existing", "null", "error", "Overwritten", ""},
		{"escapes special characters", "", "info", `<script>alert("x")</script>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec
			if tt.existing != "" {
				rec.Header().Set("HX-Trigger", tt.existing)
			}

			SetToast(e, tt.toastType, tt.message)

			parsed, toast := decodeToast(t, rec.Header().Get("HX-Trigger"))
			assert.Equal(t, tt.message, toast["message"])
			assert.Equal(t, tt.toastType, toast["type"])
			if tt.keeps != "" {
				assert.Contains(t, parsed, tt.keeps)
			}
		})
	}
}

func TestErrorToast(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	e := newTestRequestEvent(nil, req, rec)

	require.NoError(t, ErrorToast(e, http.StatusNotFound, "No BOM available"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Equal(t, "No BOM available", rec.Body.String())
	_, toast := decodeToast(t, rec.Header().Get("HX-Trigger"))
	assert.Equal(t, "error", toast["type"])
}
