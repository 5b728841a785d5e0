package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel writes a structured quote back out as a clean, normalized
// workbook: one sheet per room with per-type materials, stats and line items,
// plus a Summary sheet with the financial breakdown. It is the inverse of the
// extraction pipeline, minus the mess.
func GenerateQuoteExcel(quote *Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExportStyles(f)
	if err != nil {
		return nil, err
	}

	for i, room := range quote.Rooms {
		name := sheetNameFor(room.Name, i)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("set sheet name: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		if err := writeRoomSheet(f, name, room, styles); err != nil {
			return nil, err
		}
	}

	if err := writeSummarySheet(f, quote, styles); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type exportStyles struct {
	title, header, section, normal, label int
}

func newExportStyles(f *excelize.File) (exportStyles, error) {
	var s exportStyles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}
	if s.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#EBEBEB"}, Pattern: 1},
	}); err != nil {
		return s, fmt.Errorf("create section style: %w", err)
	}
	if s.normal, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create normal style: %w", err)
	}
	if s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, fmt.Errorf("create label style: %w", err)
	}
	return s, nil
}

// sheetNameFor keeps room names inside Excel's 31-char sheet-name limit.
func sheetNameFor(roomName string, idx int) string {
	name := roomName
	if name == "" {
		name = fmt.Sprintf("Room %d", idx+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func writeRoomSheet(f *excelize.File, sheet string, room QuoteRoom, styles exportStyles) error {
	widths := []float64{20, 40, 20, 16}
	cols := []string{"A", "B", "C", "D"}
	for i, col := range cols {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	f.SetCellValue(sheet, "A1", sanitizeExcelCell(room.Name))
	f.SetCellStyle(sheet, "A1", "A1", styles.title)

	row := 3
	for _, typ := range room.Types {
		cell := func(col string) string { return fmt.Sprintf("%s%d", col, row) }

		f.SetCellValue(sheet, cell("A"), sanitizeExcelCell(typ.Label))
		f.SetCellStyle(sheet, cell("A"), cell("D"), styles.section)
		row++

		statsPairs := []struct {
			label, value string
		}{
			{"Area (Sq.Ft)", FormatOptionalNumber(typ.Stats.AreaSqFt)},
			{"Cost / Sq.Ft", FormatOptionalINR(typ.Stats.CostPerSqFt)},
			{"Total", FormatOptionalINR(typ.Stats.Total)},
			{"Width", FormatOptionalNumber(typ.DimensionAggregate)},
		}
		for _, p := range statsPairs {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.label)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.label)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.value)
			row++
		}

		for _, attr := range sortedAttrs(typ.Materials) {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), attr.name)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.label)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(attr.value))
			row++
		}

		if len(typ.Items) > 0 {
			headers := []string{"Code", "Description", "Size", "Price"}
			for i, h := range headers {
				f.SetCellValue(sheet, fmt.Sprintf("%s%d", cols[i], row), h)
			}
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), styles.header)
			row++

			for _, item := range typ.Items {
				f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sanitizeExcelCell(item.Code))
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(item.Description))
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sanitizeExcelCell(item.Size))
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), FormatOptionalINR(item.Price))
				f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), styles.normal)
				row++
			}
		}

		row++ // blank spacer between types
	}
	return nil
}

func writeSummarySheet(f *excelize.File, quote *Quote, styles exportStyles) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new summary sheet: %w", err)
	}
	for col, w := range map[string]float64{"A": 28, "B": 16, "C": 16, "D": 16, "E": 16, "F": 16, "G": 18} {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	f.SetCellValue(sheet, "A1", "Quotation Summary")
	f.SetCellStyle(sheet, "A1", "A1", styles.title)

	row := 3
	metaPairs := []struct{ label, value string }{
		{"Customer", quote.Meta.Customer},
		{"Reference", quote.Meta.Reference},
		{"Quote No", quote.Meta.QuoteNumber},
		{"Quote Date", quote.Meta.QuoteDate},
	}
	for _, p := range metaPairs {
		if p.value == "" {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(p.value))
		row++
	}
	row++

	if quote.Summary != nil {
		headers := []string{"Room", "Modules", "Accessories", "Appliances", "Services", "Furniture", "Total"}
		for i, h := range headers {
			f.SetCellValue(sheet, fmt.Sprintf("%c%d", 'A'+i, row), h)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), styles.header)
		row++

		for _, r := range quote.Summary.Rows {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sanitizeExcelCell(r.Room))
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), FormatINR(r.Modules))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), FormatINR(r.Accessories))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), FormatINR(r.Appliances))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), FormatINR(r.Services))
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), FormatINR(r.Furniture))
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), FormatOptionalINR(r.Total))
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), styles.normal)
			row++
		}
		row++

		totals := []struct {
			label string
			value *float64
		}{
			{"Subtotal", quote.Summary.Subtotal},
			{"Discount", quote.Summary.Discount},
			{"Total Payable", quote.Summary.TotalPayable},
		}
		for _, line := range totals {
			if line.value == nil {
				continue
			}
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.label)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.label)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), FormatINR(*line.value))
			row++
		}
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
