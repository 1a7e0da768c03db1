package services

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input  string
		expect ProjectStatus
	}{
		{"planning", StatusPlanning},
		{"in-progress", StatusInProgress},
		{"completed", StatusCompleted},
		{"", StatusPlanning},
		{"on-hold", StatusPlanning},
	}
	for _, tt := range tests {
		if got := ParseStatus(tt.input); got != tt.expect {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestRawProject_UnmarshalJSON(t *testing.T) {
	input := `{
		"id": "p1",
		"name": "Santos Residence",
		"startDate": "2026-03-02",
		"updatedAt": "not a date",
		"status": "paused",
		"floors": [
			{"name": "Ground", "progress": 99, "tasks": [{"name": "Slab", "progress": "80"}, {"name": "Walls", "progress": null}]}
		],
		"bom": {"laborCost": 100, "categories": [{"category": "Foundation", "materials": []}]}
	}`

	var p RawProject
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.ID != "p1" || p.Name != "Santos Residence" {
		t.Errorf("ID, Name = %q, %q", p.ID, p.Name)
	}
	if !p.StartDate.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v", p.StartDate)
	}
	if !p.UpdatedAt.IsZero() {
		t.Errorf("UpdatedAt = %v, want zero", p.UpdatedAt)
	}
	if p.Status != StatusPlanning {
		t.Errorf("Status = %q, want planning", p.Status)
	}
	if len(p.Floors) != 1 || len(p.Floors[0].Tasks) != 2 {
		t.Fatalf("floors = %+v", p.Floors)
	}
	if p.Floors[0].Tasks[0].Progress.UnwrapOrZero() != 80 || p.Floors[0].Tasks[1].Progress.IsSet() {
		t.Errorf("tasks = %+v", p.Floors[0].Tasks)
	}
	if p.BOM == nil || p.BOM.Categories[0].Name != "Foundation" {
		t.Errorf("BOM = %+v", p.BOM)
	}
}

func TestPricedBOM_ClientTotal(t *testing.T) {
	p := PricedBOM{TotalProjectCost: 33000}
	if p.ClientTotal() != 33000 {
		t.Errorf("ClientTotal() = %v", p.ClientTotal())
	}
	p.MarkedUpCosts = &MarkedUpCosts{TotalProjectCost: 37950}
	if p.ClientTotal() != 37950 {
		t.Errorf("ClientTotal() = %v", p.ClientTotal())
	}
}

func TestMissingDataError(t *testing.T) {
	err := &MissingDataError{Entity: "bom", ID: "p1"}
	if err.Error() != "no bom available for p1" {
		t.Errorf("Error() = %q", err.Error())
	}
	if (&MissingDataError{Entity: "project"}).Error() != "no project available" {
		t.Error("unexpected message without ID")
	}
}
