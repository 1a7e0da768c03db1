package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const progressSheet = "Progress"

var sheetNameReplacer = strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")", "'", "")

// GenerateExcel creates an Excel workbook from the given ExportData: a BOM
// sheet with categories, materials and totals, and a Progress sheet when the
// project has floor data. It returns the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are limited to 31 chars and reject some punctuation.
	sheetName := sheetNameReplacer.Replace(data.Title)
	if r := []rune(sheetName); len(r) > 31 {
		sheetName = strings.TrimSpace(string(r[:31]))
	}
	if sheetName == "" || sheetName == progressSheet {
		sheetName = "BOM"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	st, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeBOMSheet(f, sheetName, data, st); err != nil {
		return nil, err
	}
	if data.HasProgress {
		if err := writeProgressSheet(f, data, st); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title, subtitle, header, category, material, label, value, grand int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var st sheetStyles
	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&st.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&st.subtitle, "subtitle", &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&st.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2980B9"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&st.category, "category", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#EEEEEE"}, Pattern: 1},
			Border: thinBorders(),
		}},
		{&st.material, "material", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&st.label, "summary label", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&st.value, "summary value", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}},
		{&st.grand, "grand total", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Color: "#1B5E20"}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return st, nil
}

func writeBOMSheet(f *excelize.File, sheet string, data ExportData, st sheetStyles) error {
	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 44, 10, 10, 18, 20}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", st.title)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return fmt.Errorf("merge date: %w", err)
	}
	subtitle := "Date: " + data.CreatedDate
	if data.Status != "" {
		subtitle += "    Status: " + data.Status
	}
	f.SetCellValue(sheet, "A2", subtitle)
	f.SetCellStyle(sheet, "A2", lastCol+"2", st.subtitle)

	// Project details, two per row.
	row := 3
	for i := 0; i < len(data.Details); i += 2 {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "B"+r, data.Details[i].Label+": "+data.Details[i].Value)
		if i+1 < len(data.Details) {
			f.SetCellValue(sheet, "E"+r, data.Details[i+1].Label+": "+data.Details[i+1].Value)
		}
		f.SetCellStyle(sheet, "A"+r, lastCol+r, st.subtitle)
		row++
	}
	row++

	// ── Column headers ──────────────────────────────────────────────────

	headerRow := fmt.Sprintf("%d", row)
	headers := []string{"#", "Description", "Qty", "Unit", "Unit Cost", "Amount"}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+headerRow, h)
	}
	f.SetCellStyle(sheet, "A"+headerRow, lastCol+headerRow, st.header)
	row++

	// ── Data rows ───────────────────────────────────────────────────────

	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheet, "A"+rowStr, r.Index)
		style := st.category
		if r.Level == 0 {
			f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(r.Description))
		} else {
			style = st.material
			f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell("  "+r.Description))
			f.SetCellValue(sheet, "C"+rowStr, r.Qty)
			f.SetCellValue(sheet, "D"+rowStr, sanitizeExcelCell(r.Unit))
			f.SetCellValue(sheet, "E"+rowStr, FormatMoney(data.CurrencySymbol, r.UnitCost))
		}
		f.SetCellValue(sheet, "F"+rowStr, FormatMoney(data.CurrencySymbol, r.Amount))
		f.SetCellStyle(sheet, "A"+rowStr, lastCol+rowStr, style)
		row++
	}

	// ── Summary rows ────────────────────────────────────────────────────

	row++
	for _, s := range data.Summary {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "E"+r, s.Label+":")
		f.SetCellStyle(sheet, "E"+r, "E"+r, st.label)
		f.SetCellValue(sheet, "F"+r, FormatMoney(data.CurrencySymbol, s.Amount))
		valueStyle := st.value
		if s.Grand {
			valueStyle = st.grand
		}
		f.SetCellStyle(sheet, "F"+r, "F"+r, valueStyle)
		row++
	}
	return nil
}

func writeProgressSheet(f *excelize.File, data ExportData, st sheetStyles) error {
	if _, err := f.NewSheet(progressSheet); err != nil {
		return fmt.Errorf("create progress sheet: %w", err)
	}

	widths := map[string]float64{"A": 30, "B": 12, "C": 10, "D": 12}
	for col, w := range widths {
		if err := f.SetColWidth(progressSheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	f.SetCellValue(progressSheet, "A1", "Project Progress")
	f.SetCellStyle(progressSheet, "A1", "A1", st.title)
	f.SetCellValue(progressSheet, "B1", FormatPercent(data.Progress))
	f.SetCellStyle(progressSheet, "B1", "B1", st.grand)

	headers := []string{"Floor", "Progress", "Tasks", "Completed"}
	for i, h := range headers {
		f.SetCellValue(progressSheet, fmt.Sprintf("%c3", 'A'+i), h)
	}
	f.SetCellStyle(progressSheet, "A3", "D3", st.header)

	for i, fl := range data.Floors {
		r := fmt.Sprintf("%d", i+4)
		f.SetCellValue(progressSheet, "A"+r, sanitizeExcelCell(fl.Floor))
		f.SetCellValue(progressSheet, "B"+r, FormatPercent(fl.Progress))
		f.SetCellValue(progressSheet, "C"+r, fl.TaskCount)
		f.SetCellValue(progressSheet, "D"+r, fl.CompletedTasks)
		f.SetCellStyle(progressSheet, "A"+r, "D"+r, st.material)
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
