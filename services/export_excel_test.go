package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_BasicBOM(t *testing.T) {
	project, priced := samplePricedBOM(t, PricingPolicy{})
	data := BuildExportData(project, priced, nil, "", "2026-01-15")

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	// Verify it's a valid Excel file
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Santos Residence" {
		t.Errorf("expected single sheet 'Santos Residence', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Santos Residence" {
		t.Errorf("expected title 'Santos Residence', got %q", title)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	var foundCategory, foundGrand bool
	for _, r := range rows {
		joined := strings.Join(r, "|")
		if strings.Contains(joined, "FOUNDATION") && strings.Contains(joined, "₱10,000.00") {
			foundCategory = true
		}
		if strings.Contains(joined, "Total Project Cost:") && strings.Contains(joined, "₱37,651.00") {
			foundGrand = true
		}
	}
	if !foundCategory {
		t.Error("category row with total not found")
	}
	if !foundGrand {
		t.Error("total project cost row not found")
	}
}

func TestGenerateExcel_ProgressSheet(t *testing.T) {
	project, priced := samplePricedBOM(t, PricingPolicy{})
	progress, _ := ComputeProgress(project)
	data := BuildExportData(project, priced, &progress, "", "2026-01-15")

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[1] != "Progress" {
		t.Fatalf("sheets = %v, want BOM and Progress", got)
	}
	overall, _ := f.GetCellValue("Progress", "B1")
	if overall != "38%" {
		t.Errorf("overall progress = %q, want 38%%", overall)
	}
	floor, _ := f.GetCellValue("Progress", "A4")
	pct, _ := f.GetCellValue("Progress", "B4")
	if floor != "Ground Floor" || pct != "75%" {
		t.Errorf("first floor row = %q, %q", floor, pct)
	}
}

func TestGenerateExcel_EmptyItems(t *testing.T) {
	data := ExportData{
		Title:       "Empty BOM",
		CreatedDate: "2026-01-15",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_SheetNames(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		expect string
	}{
		{"long title truncated", "This is a very long title that exceeds thirty one characters", "This is a very long title that"},
		{"empty title", "", "BOM"},
		{"clashes with progress sheet", "Progress", "BOM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GenerateExcel(ExportData{Title: tt.title, CreatedDate: "2026-01-15"})
			if err != nil {
				t.Fatalf("GenerateExcel() error = %v", err)
			}
			f, err := excelize.OpenReader(bytesReader(result))
			if err != nil {
				t.Fatalf("result is not valid Excel: %v", err)
			}
			defer f.Close()

			sheets := f.GetSheetList()
			if sheets[0] != tt.expect {
				t.Errorf("sheet name = %q, want %q", sheets[0], tt.expect)
			}
		})
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"@cmd", "'@cmd"},
		{"Cement", "Cement"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.expect {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
