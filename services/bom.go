package services

import (
	"encoding/json"
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusPlanning   ProjectStatus = "planning"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every valid status in lifecycle order.
var ProjectStatuses = []ProjectStatus{StatusPlanning, StatusInProgress, StatusCompleted}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus maps a stored value to a status. Unknown values read as planning.
func ParseStatus(v string) ProjectStatus {
	s := ProjectStatus(v)
	if s.Valid() {
		return s
	}
	return StatusPlanning
}

// Image is a photo attached to a floor or a task. It is passed through unchanged.
type Image struct {
	Path   string `json:"path"`
	Remark string `json:"remark,omitempty"`
}

// Task is a unit of work on a floor. Progress is entered externally.
type Task struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Progress Number  `json:"progress"`
	Images   []Image `json:"images,omitempty"`
}

// Floor groups tasks. Its Progress is a derived cache and is ignored as input.
type Floor struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Progress Number  `json:"progress"`
	Tasks    []Task  `json:"tasks"`
	Images   []Image `json:"images,omitempty"`
}

// RawProject is a read-only snapshot of a project as stored.
type RawProject struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	StartDate time.Time     `json:"startDate"`
	Status    ProjectStatus `json:"status"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Floors    []Floor       `json:"floors"`
	BOM       *RawBOM       `json:"bom,omitempty"`
}

// UnmarshalJSON decodes a project leniently: dates may be RFC 3339 or
// YYYY-MM-DD and anything else reads as the zero time; unknown statuses read
// as planning.
func (p *RawProject) UnmarshalJSON(data []byte) error {
	type alias RawProject
	aux := struct {
		*alias
		StartDate json.RawMessage `json:"startDate"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
		Status    string          `json:"status"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.StartDate = parseLooseTime(aux.StartDate)
	p.UpdatedAt = parseLooseTime(aux.UpdatedAt)
	p.Status = ParseStatus(aux.Status)
	return nil
}

var looseTimeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05.000Z", "2006-01-02"}

func parseLooseTime(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	for _, layout := range looseTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ProjectDetails holds the building measurements a BOM was drafted from.
type ProjectDetails struct {
	TotalArea       Number `json:"totalArea"`
	NumFloors       Number `json:"numFloors"`
	RoomCount       Number `json:"roomCount"`
	FoundationDepth Number `json:"foundationDepth"`
	AvgFloorHeight  Number `json:"avgFloorHeight"`
}

// Material is a single BOM line.
type Material struct {
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Unit        string `json:"unit"`
	UnitCost    Number `json:"unitCost"`
	LineTotal   Number `json:"lineTotal"`
}

// Category groups materials of one construction phase.
type Category struct {
	Name      string     `json:"category"`
	Materials []Material `json:"materials"`
}

// MarkedUpCosts is the client-facing totals block.
type MarkedUpCosts struct {
	TotalProjectCost float64  `json:"totalProjectCost"`
	Markup           float64  `json:"markup"`
	BaseTotal        float64  `json:"baseTotal"`
	Rate             *float64 `json:"rate,omitempty"`
	Fixed            *float64 `json:"fixed,omitempty"`
}

func (m *MarkedUpCosts) clone() *MarkedUpCosts {
	c := *m
	if m.Rate != nil {
		rate := *m.Rate
		c.Rate = &rate
	}
	if m.Fixed != nil {
		fixed := *m.Fixed
		c.Fixed = &fixed
	}
	return &c
}

// RawBOM is a bill of materials as stored. Totals on it are whatever was
// cached last and are recomputed by ComputeBOM.
type RawBOM struct {
	ProjectDetails    ProjectDetails `json:"projectDetails"`
	Categories        []Category     `json:"categories"`
	LaborCost         Number         `json:"laborCost"`
	Tax               Number         `json:"tax"`
	MaterialTotalCost Number         `json:"materialTotalCost"`
	TotalProjectCost  Number         `json:"totalProjectCost"`
	MarkedUpCosts     *MarkedUpCosts `json:"markedUpCosts,omitempty"`
}

// PricingPolicy carries the tax and markup rules applied by ComputeBOM.
// Unset fields disable the corresponding step.
type PricingPolicy struct {
	// TaxRate, when set, replaces the BOM's tax with rate * (materials + labor).
	TaxRate Number
	// MarkupRate is a fraction of the pre-markup total (0.15 = 15%).
	MarkupRate Number
	// MarkupFixed is used when MarkupRate is unset.
	MarkupFixed Number
}

// HasMarkup reports whether the policy prices a markup.
func (p PricingPolicy) HasMarkup() bool {
	return p.MarkupRate.IsSet() || p.MarkupFixed.IsSet()
}

// PricedMaterial is a material with its computed line total.
type PricedMaterial struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unitCost"`
	LineTotal   float64 `json:"lineTotal"`
}

// PricedCategory is a category with its computed total.
type PricedCategory struct {
	Name          string           `json:"category"`
	Materials     []PricedMaterial `json:"materials"`
	CategoryTotal float64          `json:"categoryTotal"`
}

// PricedBOM is the output of ComputeBOM.
type PricedBOM struct {
	ProjectDetails    ProjectDetails   `json:"projectDetails"`
	Categories        []PricedCategory `json:"categories"`
	LaborCost         float64          `json:"laborCost"`
	Tax               float64          `json:"tax"`
	MaterialTotalCost float64          `json:"materialTotalCost"`
	TotalProjectCost  float64          `json:"totalProjectCost"`
	MarkedUpCosts     *MarkedUpCosts   `json:"markedUpCosts,omitempty"`
	// MarkupStale is set when a cached markup was dropped because the
	// totals it was computed from have changed.
	MarkupStale bool `json:"markupStale,omitempty"`
}

// ClientTotal is the price shown to the client: the marked-up total when
// one exists, else the pre-markup total.
func (p PricedBOM) ClientTotal() float64 {
	if p.MarkedUpCosts != nil {
		return p.MarkedUpCosts.TotalProjectCost
	}
	return p.TotalProjectCost
}
