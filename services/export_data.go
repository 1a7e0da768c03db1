package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExportRow represents a single row in the BOM export (category or material).
type ExportRow struct {
	Level       int    // 0 = category, 1 = material
	Index       string // "1", "1.1" etc
	Description string
	Qty         float64
	Unit        string
	UnitCost    float64
	Amount      float64 // category total or line total
}

// SummaryLine is one labelled total under the BOM table.
type SummaryLine struct {
	Label  string
	Amount float64
	Grand  bool
}

// ProgressRow is one floor in the progress export.
type ProgressRow struct {
	Floor          string
	Progress       float64
	TaskCount      int
	CompletedTasks int
}

// DetailLine is a labelled project measurement ("Total Area", "120 sqm").
type DetailLine struct {
	Label string
	Value string
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title          string
	Status         string
	CreatedDate    string
	CurrencySymbol string
	Details        []DetailLine
	Rows           []ExportRow
	Summary        []SummaryLine
	Floors         []ProgressRow
	Progress       float64
	HasProgress    bool
}

// CategoryTotalRow is a line of the client BOM summary.
type CategoryTotalRow struct {
	Index    int
	Category string
	Total    float64
}

// ClientSummary is the client-facing BOM: category totals and a grand total.
type ClientSummary struct {
	ProjectName    string
	CreatedDate    string
	CurrencySymbol string
	Details        []DetailLine
	Categories     []CategoryTotalRow
	GrandTotal     float64
}

// BuildExportData flattens a priced BOM and an optional progress snapshot
// into rows for the Excel export.
func BuildExportData(project *RawProject, priced PricedBOM, progress *ProgressSnapshot, symbol, createdDate string) ExportData {
	data := ExportData{
		CreatedDate:    createdDate,
		CurrencySymbol: symbolOrDefault(symbol),
		Details:        BuildDetailLines(priced.ProjectDetails),
	}
	if project != nil {
		data.Title = project.Name
		data.Status = string(project.Status)
	}

	for i, c := range priced.Categories {
		data.Rows = append(data.Rows, ExportRow{
			Level:       0,
			Index:       fmt.Sprintf("%d", i+1),
			Description: strings.ToUpper(c.Name),
			Amount:      c.CategoryTotal,
		})
		for j, m := range c.Materials {
			data.Rows = append(data.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d.%d", i+1, j+1),
				Description: m.Description,
				Qty:         m.Quantity,
				Unit:        m.Unit,
				UnitCost:    m.UnitCost,
				Amount:      m.LineTotal,
			})
		}
	}

	data.Summary = BuildSummaryLines(priced)

	if progress != nil {
		data.HasProgress = progress.HasData
		data.Progress = progress.Progress
		for _, f := range progress.Floors {
			data.Floors = append(data.Floors, ProgressRow{
				Floor:          f.Name,
				Progress:       f.Progress,
				TaskCount:      f.TaskCount,
				CompletedTasks: f.CompletedTasks,
			})
		}
	}
	return data
}

// BuildSummaryLines lists the BOM totals in presentation order.
func BuildSummaryLines(priced PricedBOM) []SummaryLine {
	lines := []SummaryLine{
		{Label: "Material Cost", Amount: priced.MaterialTotalCost},
		{Label: "Labor Cost", Amount: priced.LaborCost},
		{Label: "Tax", Amount: priced.Tax},
		{Label: "Total Project Cost", Amount: priced.TotalProjectCost, Grand: priced.MarkedUpCosts == nil},
	}
	if mc := priced.MarkedUpCosts; mc != nil {
		label := "Markup"
		if mc.Rate != nil {
			label = fmt.Sprintf("Markup (%s%%)", decimal.NewFromFloat(*mc.Rate).Shift(2).String())
		}
		lines = append(lines,
			SummaryLine{Label: label, Amount: mc.Markup},
			SummaryLine{Label: "Grand Total", Amount: mc.TotalProjectCost, Grand: true},
		)
	}
	return lines
}

// BuildDetailLines renders the project measurements, "N/A" when missing.
func BuildDetailLines(d ProjectDetails) []DetailLine {
	return []DetailLine{
		{"Total Area", detailValue(d.TotalArea, " sqm")},
		{"Number of Floors", detailValue(d.NumFloors, "")},
		{"Room Count", detailValue(d.RoomCount, "")},
		{"Foundation Depth", detailValue(d.FoundationDepth, " m")},
		{"Floor Height", detailValue(d.AvgFloorHeight, " m")},
	}
}

func detailValue(n Number, unit string) string {
	if !n.IsSet() {
		return "N/A"
	}
	return FormatQty(n.UnwrapOrZero()) + unit
}

// BuildClientSummary builds the client BOM: one row per category with its
// upper-cased name and total, and the client-facing grand total.
func BuildClientSummary(projectName string, priced PricedBOM, symbol, createdDate string) ClientSummary {
	s := ClientSummary{
		ProjectName:    projectName,
		CreatedDate:    createdDate,
		CurrencySymbol: symbolOrDefault(symbol),
		Details:        BuildDetailLines(priced.ProjectDetails),
		GrandTotal:     priced.ClientTotal(),
	}
	for i, c := range priced.Categories {
		s.Categories = append(s.Categories, CategoryTotalRow{
			Index:    i + 1,
			Category: strings.ToUpper(c.Name),
			Total:    c.CategoryTotal,
		})
	}
	return s
}

func symbolOrDefault(symbol string) string {
	if symbol == "" {
		return DefaultCurrencySymbol
	}
	return symbol
}
