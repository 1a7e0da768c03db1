package services

import "math"

// BudgetRange bounds a project's total cost. An unset Min reads as 0 and an
// unset Max as unbounded; negative bounds clamp to 0.
type BudgetRange struct {
	Min Number
	Max Number
}

// BudgetPreset is a quick-pick budget bound.
type BudgetPreset struct {
	Label string
	Value float64
}

// BudgetPresets are the budget shortcuts offered on the project list.
var BudgetPresets = []BudgetPreset{
	{"1M", 1000000},
	{"1.5M", 1500000},
	{"2M", 2000000},
	{"2.5M", 2500000},
	{"3M", 3000000},
	{"3.5M", 3500000},
}

// Bounds returns the resolved inclusive bounds.
func (r BudgetRange) Bounds() (lo, hi float64) {
	lo = ClampNonNegative(r.Min.UnwrapOrZero())
	hi = math.Inf(1)
	if r.Max.IsSet() {
		hi = ClampNonNegative(r.Max.UnwrapOrZero())
	}
	return lo, hi
}

// Contains reports whether total lies within the range.
func (r BudgetRange) Contains(total float64) bool {
	lo, hi := r.Bounds()
	return total >= lo && total <= hi
}

// ProjectCost pairs a project with its pre-markup total project cost.
type ProjectCost struct {
	ProjectID        string
	Name             string
	TotalProjectCost float64
}

// FilterByBudget keeps the projects whose total lies within r, in input order.
func FilterByBudget(projects []ProjectCost, r BudgetRange) []ProjectCost {
	out := make([]ProjectCost, 0, len(projects))
	for _, p := range projects {
		if r.Contains(p.TotalProjectCost) {
			out = append(out, p)
		}
	}
	return out
}
