package services

import (
	"math"
	"testing"
)

func TestBudgetRange_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		r      BudgetRange
		lo, hi float64
	}{
		{"unset", BudgetRange{}, 0, math.Inf(1)},
		{"min only", BudgetRange{Min: Some(1000000)}, 1000000, math.Inf(1)},
		{"max only", BudgetRange{Max: Some(2000000)}, 0, 2000000},
		{"negative clamps", BudgetRange{Min: Some(-5), Max: Some(-1)}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.r.Bounds()
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Bounds() = (%v, %v), want (%v, %v)", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestFilterByBudget(t *testing.T) {
	projects := []ProjectCost{
		{ProjectID: "a", TotalProjectCost: 900000},
		{ProjectID: "b", TotalProjectCost: 1500000},
		{ProjectID: "c", TotalProjectCost: 2000000},
		{ProjectID: "d", TotalProjectCost: 3600000},
	}

	tests := []struct {
		name   string
		r      BudgetRange
		expect []string
	}{
		{"no bounds keeps all", BudgetRange{}, []string{"a", "b", "c", "d"}},
		{"inclusive bounds", BudgetRange{Min: Some(1500000), Max: Some(2000000)}, []string{"b", "c"}},
		{"min only", BudgetRange{Min: Some(2500000)}, []string{"d"}},
		{"inverted range is empty", BudgetRange{Min: Some(3000000), Max: Some(1000000)}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByBudget(projects, tt.r)
			if len(got) != len(tt.expect) {
				t.Fatalf("FilterByBudget() returned %d projects, want %d", len(got), len(tt.expect))
			}
			for i, p := range got {
				if p.ProjectID != tt.expect[i] {
					t.Errorf("result[%d] = %q, want %q", i, p.ProjectID, tt.expect[i])
				}
			}
		})
	}
}

func TestBudgetPresets_Ascending(t *testing.T) {
	for i := 1; i < len(BudgetPresets); i++ {
		if BudgetPresets[i].Value <= BudgetPresets[i-1].Value {
			t.Errorf("preset %q not above %q", BudgetPresets[i].Label, BudgetPresets[i-1].Label)
		}
	}
}
