package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateClientPDF renders the client BOM (category totals and grand total)
// using maroto/v2. The standard PDF fonts have no peso sign, so callers pass a
// currency code such as "PHP " as the symbol.
func GenerateClientPDF(data ClientSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addClientHeader(m, data)
	addDetails(m, data)
	addGrandTotal(m, data)
	addCategoryTable(m, data)
	addFooter(m, data.CreatedDate)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addClientHeader(m core.Maroto, data ClientSummary) {
	name := data.ProjectName
	if name == "" {
		name = "N/A"
	}
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Client BOM: "+name, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addDetails(m core.Maroto, data ClientSummary) {
	style := props.Text{Size: 10, Align: align.Left}
	for _, d := range data.Details {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(d.Label+": "+d.Value, style)),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addGrandTotal(m core.Maroto, data ClientSummary) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("Grand Total: "+FormatMoney(data.CurrencySymbol, data.GrandTotal), props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addCategoryTable(m core.Maroto, data ClientSummary) {
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 41, Green: 128, Blue: 185}}
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(7).Add(text.New("Category", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Total Amount", headerText)).WithStyle(&headerCell),
		),
	)

	body := props.Text{Size: 9, Align: align.Center, Color: &props.Color{Red: 44, Green: 62, Blue: 80}}
	left := body
	left.Align = align.Left
	right := body
	right.Align = align.Right

	for _, c := range data.Categories {
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", c.Index), body)),
				col.New(7).Add(text.New(c.Category, left)),
				col.New(4).Add(text.New(FormatMoney(data.CurrencySymbol, c.Total), right)),
			),
		)
	}
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, createdDate string) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", createdDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
