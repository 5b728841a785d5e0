package services

import (
	"fmt"
	"sort"
	"time"

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

// GenerateQuotePDF renders a structured quote into a paginated PDF document
// using maroto/v2: a metadata header, one section per room with materials,
// stats and line items per cabinet type, and the financial summary.
func GenerateQuotePDF(quote *Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, quote)

	for _, room := range quote.Rooms {
		addRoomSection(m, room)
	}

	if quote.Summary != nil {
		addFinancialSummary(m, quote.Summary)
	}

	addGeneratedFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addQuoteHeader adds the title and the header metadata pairs.
func addQuoteHeader(m core.Maroto, quote *Quote) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Quotation", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	subtle := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}

	pairs := []struct{ label, value string }{
		{"Customer", quote.Meta.Customer},
		{"Reference", quote.Meta.Reference},
		{"Quote No", quote.Meta.QuoteNumber},
		{"Quote Date", quote.Meta.QuoteDate},
		{"Valid Till", quote.Meta.QuoteValidTill},
		{"Design Expert", quote.Meta.DesignerName},
		{"Property", quote.Meta.PropertyName},
		{"Config", quote.Meta.PropertyConfig},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		m.AddRows(
			row.New(5).Add(
				col.New(3).Add(text.New(p.label, props.Text{Size: 9, Style: fontstyle.Bold})),
				col.New(9).Add(text.New(p.value, subtle)),
			),
		)
	}

	if quote.Meta.TotalProjectCost != nil {
		m.AddRows(
			row.New(7).Add(
				col.New(3).Add(text.New("Project Cost", props.Text{Size: 10, Style: fontstyle.Bold})),
				col.New(9).Add(text.New(FormatINR(*quote.Meta.TotalProjectCost), props.Text{Size: 10, Style: fontstyle.Bold})),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addRoomSection adds one room: its name banner and a block per cabinet type.
func addRoomSection(m core.Maroto, room QuoteRoom) {
	bannerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(room.Name, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				}),
			).WithStyle(&props.Cell{BackgroundColor: bannerBg}),
		),
	)

	for _, typ := range room.Types {
		addTypeBlock(m, typ)
	}
	m.AddRows(row.New(4))
}

func addTypeBlock(m core.Maroto, typ QuoteRoomType) {
	typeBg := &props.Color{Red: 235, Green: 235, Blue: 235}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(typ.Label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}),
			).WithStyle(&props.Cell{BackgroundColor: typeBg}),
		),
	)

	statsLine := fmt.Sprintf("Area: %s Sq.Ft   Rate: %s   Total: %s   Width: %s",
		FormatOptionalNumber(typ.Stats.AreaSqFt),
		FormatOptionalINR(typ.Stats.CostPerSqFt),
		FormatOptionalINR(typ.Stats.Total),
		FormatOptionalNumber(typ.DimensionAggregate),
	)
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(text.New(statsLine, props.Text{Size: 8, Align: align.Left})),
		),
	)

	for _, attr := range sortedAttrs(typ.Materials) {
		m.AddRows(
			row.New(4).Add(
				col.New(3).Add(text.New(attr.name, props.Text{Size: 7, Align: align.Left, Color: &props.Color{Red: 100, Green: 100, Blue: 100}})),
				col.New(9).Add(text.New(attr.value, props.Text{Size: 7, Align: align.Left})),
			),
		)
	}

	if len(typ.Items) > 0 {
		addItemTable(m, typ.Items)
	}
}

// addItemTable adds the line-item table for one cabinet type.
func addItemTable(m core.Maroto, items []DetailItem) {
	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left}
	m.AddRows(
		row.New(5).Add(
			col.New(2).Add(text.New("Code", headerText)),
			col.New(5).Add(text.New("Description", headerText)),
			col.New(3).Add(text.New("Size", headerText)),
			col.New(2).Add(text.New("Price", headerText)),
		),
	)

	cellText := props.Text{Size: 7, Align: align.Left}
	rightText := cellText
	rightText.Align = align.Right
	for _, item := range items {
		m.AddRows(
			row.New(5).Add(
				col.New(2).Add(text.New(item.Code, cellText)),
				col.New(5).Add(text.New(item.Description, cellText)),
				col.New(3).Add(text.New(item.Size, cellText)),
				col.New(2).Add(text.New(FormatOptionalINR(item.Price), rightText)),
			),
		)
	}
}

// addFinancialSummary adds the per-room totals table and the subtotal,
// discount and total payable lines.
func addFinancialSummary(m core.Maroto, summary *QuoteSummary) {
	m.AddRows(row.New(6))

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New("Room", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Modules", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Accessories", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Services", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	cellText := props.Text{Size: 8, Align: align.Left}
	rightText := cellText
	rightText.Align = align.Right
	for _, r := range summary.Rows {
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(r.Room, cellText)),
				col.New(2).Add(text.New(FormatINR(r.Modules), rightText)),
				col.New(2).Add(text.New(FormatINR(r.Accessories+r.Appliances), rightText)),
				col.New(2).Add(text.New(FormatINR(r.Services+r.Furniture), rightText)),
				col.New(3).Add(text.New(FormatOptionalINR(r.Total), rightText)),
			),
		)
	}

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	lines := []struct {
		label string
		value *float64
	}{
		{"Subtotal", summary.Subtotal},
		{"Discount", summary.Discount},
		{"Total Payable", summary.TotalPayable},
	}
	for _, line := range lines {
		if line.value == nil {
			continue
		}
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(line.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatINR(*line.value), labelStyle)).WithStyle(summaryCell),
			),
		)
	}
}

func addGeneratedFooter(m core.Maroto) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", time.Now().Format("02 Jan 2006")),
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

// materialAttr is one sorted materials attribute for stable rendering.
type materialAttr struct {
	name, value string
}

func sortedAttrs(attrs map[string]string) []materialAttr {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]materialAttr, 0, len(keys))
	for _, k := range keys {
		out = append(out, materialAttr{name: k, value: attrs[k]})
	}
	return out
}
