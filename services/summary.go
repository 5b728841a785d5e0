package services

import (
	"regexp"
	"strings"
)

// MaterialsBlock is one parsed materials specification for a cabinet type:
// the original free-text heading plus its "Attribute: value" lines.
type MaterialsBlock struct {
	Label string
	Attrs map[string]string
}

// MaterialsMap holds at most one MaterialsBlock per canonical type for a room.
// Put keeps the first writer and silently ignores later ones, which is how the
// Summary sheet stays authoritative over inline fallbacks found on room sheets.
type MaterialsMap map[string]MaterialsBlock

func (m MaterialsMap) Put(typ string, block MaterialsBlock) {
	if _, exists := m[typ]; !exists {
		m[typ] = block
	}
}

// SummaryRow is one room line from the Summary sheet's financial table.
// Bucket columns missing from the sheet default to 0; the row total is kept
// separate because an explicit total may disagree with the bucket sum.
type SummaryRow struct {
	Room        string   `json:"room"`
	Modules     float64  `json:"modules"`
	Accessories float64  `json:"accessories"`
	Appliances  float64  `json:"appliances"`
	Services    float64  `json:"services"`
	Furniture   float64  `json:"furniture"`
	Total       *float64 `json:"total"`
}

// QuoteSummary is the financial view of the quotation. Subtotal, discount and
// total payable are each independently optional; FinalizeSummary reconciles
// them after the raw scan.
type QuoteSummary struct {
	Rows         []SummaryRow `json:"rows"`
	Subtotal     *float64     `json:"subtotal"`
	Discount     *float64     `json:"discount"`
	TotalPayable *float64     `json:"totalPayable"`
}

// summaryColumns records which financial-table column landed at which index.
// -1 means the header never mentioned that bucket.
type summaryColumns struct {
	room, modules, accessories, appliances, services, furniture, total int
}

var (
	roomNamePattern = " - "
	subTotalPattern = regexp.MustCompile(`^sub\s*total$`)
)

// isRoomName reports whether a cell looks like a room marker such as
// "Flat 402 - Kitchen". Deliberately loose: the separator alone decides.
func isRoomName(cell string) bool {
	return strings.Contains(cell, roomNamePattern)
}

// isMaterialsText reports whether a cell carries a free-text materials blob.
func isMaterialsText(cell string) bool {
	return strings.Contains(cell, "Carcass:") || strings.Contains(cell, "Handles:")
}

// ReconcileSummary scans the sheet named "Summary" for per-room materials
// blocks and the financial breakdown table. A workbook without a Summary
// sheet yields empty materials and an empty summary; downstream components
// degrade rather than fail.
func ReconcileSummary(wb *Workbook) (map[string]MaterialsMap, QuoteSummary) {
	materials := make(map[string]MaterialsMap)
	var summary QuoteSummary

	sheet := wb.Sheet("Summary")
	if sheet == nil {
		return materials, summary
	}

	collectSummaryMaterials(sheet, materials)
	summary = scanFinancialTable(sheet)
	return materials, summary
}

// collectSummaryMaterials walks the sheet top to bottom folding a current-room
// context: the latest room-name cell owns every materials blob that follows,
// until the next room-name cell supersedes it.
func collectSummaryMaterials(sheet *Sheet, materials map[string]MaterialsMap) {
	currentRoom := ""
	for _, row := range sheet.Rows {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			if isRoomName(cell) {
				currentRoom = cell
				continue
			}
			if currentRoom == "" || !isMaterialsText(cell) {
				continue
			}
			blocks := ParseMaterialsText(cell)
			if len(blocks) == 0 {
				continue
			}
			dest := materials[currentRoom]
			if dest == nil {
				dest = make(MaterialsMap)
				materials[currentRoom] = dest
			}
			for typ, block := range blocks {
				dest.Put(typ, block)
			}
		}
	}
}

// ParseMaterialsText splits a materials blob into blank-line-separated
// sections. Each section's first line is a type heading and the remaining
// lines are "Attribute: value" pairs. Sections without any parsable pair are
// dropped.
func ParseMaterialsText(text string) map[string]MaterialsBlock {
	blocks := make(map[string]MaterialsBlock)

	for _, section := range splitSections(text) {
		heading := strings.TrimSpace(section[0])
		if heading == "" {
			continue
		}
		attrs := make(map[string]string)
		for _, line := range section[1:] {
			name, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)
			if name == "" || value == "" {
				continue
			}
			attrs[name] = value
		}
		if len(attrs) == 0 {
			continue
		}
		typ := CanonicalTypeName(heading)
		if _, exists := blocks[typ]; !exists {
			blocks[typ] = MaterialsBlock{
				Label: strings.TrimSuffix(heading, ":"),
				Attrs: attrs,
			}
		}
	}
	return blocks
}

// splitSections cuts a text blob into groups of consecutive non-blank lines.
func splitSections(text string) [][]string {
	var sections [][]string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// scanFinancialTable locates the ROOM/TOTAL header row, maps its columns, and
// folds every following row into either a named amount (subtotal, discount,
// total payable) or a per-room SummaryRow.
func scanFinancialTable(sheet *Sheet) QuoteSummary {
	var summary QuoteSummary

	cols, headerIdx := findFinancialHeader(sheet)
	if headerIdx < 0 || cols.total < 0 {
		// No TOTAL column means no financial table; materials parsing on the
		// same sheet is unaffected.
		return summary
	}

	for _, row := range sheet.Rows[headerIdx+1:] {
		label := rowLabel(row, cols)
		if label == "" || !rowHasNumeric(row) {
			continue
		}
		classifySummaryRow(&summary, row, cols, label)
	}
	return summary
}

// findFinancialHeader returns the column mapping and index of the first row
// containing both a ROOM-ish and a TOTAL-ish header cell.
func findFinancialHeader(sheet *Sheet) (summaryColumns, int) {
	cols := summaryColumns{room: -1, modules: -1, accessories: -1, appliances: -1, services: -1, furniture: -1, total: -1}

	for i, row := range sheet.Rows {
		hasRoom, hasTotal := false, false
		for _, cell := range row {
			upper := strings.ToUpper(cell)
			if strings.Contains(upper, "ROOM") {
				hasRoom = true
			}
			if strings.Contains(upper, "TOTAL") {
				hasTotal = true
			}
		}
		if !hasRoom || !hasTotal {
			continue
		}

		for j, cell := range row {
			upper := strings.ToUpper(cell)
			switch {
			case strings.Contains(upper, "ROOM"):
				cols.room = j
			case strings.Contains(upper, "TOTAL"):
				cols.total = j
			case strings.Contains(upper, "UNIT"):
				cols.modules = j
			case strings.Contains(upper, "ACCESS"):
				cols.accessories = j
			case strings.Contains(upper, "APPLIANCE"):
				cols.appliances = j
			case strings.Contains(upper, "SERVICE"):
				cols.services = j
			case strings.Contains(upper, "FURNITURE"), strings.Contains(upper, "DECOR"):
				cols.furniture = j
			case strings.Contains(upper, "HARDWARE"):
				// Hardware stands in for accessories only when no dedicated
				// accessories column exists.
				if cols.accessories < 0 {
					cols.accessories = j
				}
			}
		}
		return cols, i
	}
	return cols, -1
}

// rowLabel picks the row's label: the room column when populated, otherwise
// the first non-empty cell that is not the total column.
func rowLabel(row []string, cols summaryColumns) string {
	if label := cellAt(row, cols.room); label != "" {
		return label
	}
	for j, cell := range row {
		if j == cols.total {
			continue
		}
		if strings.TrimSpace(cell) != "" {
			return strings.TrimSpace(cell)
		}
	}
	return ""
}

func rowHasNumeric(row []string) bool {
	for _, cell := range row {
		if _, ok := ParseAmount(cell); ok {
			return true
		}
	}
	return false
}

// classifySummaryRow applies the label rules in priority order: exact total,
// subtotal, discount, total payable, then a plain per-room data row.
func classifySummaryRow(summary *QuoteSummary, row []string, cols summaryColumns, label string) {
	lower := strings.ToLower(strings.TrimSpace(label))
	valueCols := []int{cols.total, cols.modules, cols.accessories, cols.appliances, cols.services, cols.furniture}

	switch {
	case lower == "total":
		if summary.Subtotal == nil {
			summary.Subtotal = firstAmount(row, valueCols, true)
		}
	case subTotalPattern.MatchString(lower):
		summary.Subtotal = firstAmount(row, valueCols, false)
	case strings.Contains(lower, "discount"):
		if summary.Discount == nil {
			summary.Discount = firstAmount(row, valueCols, true)
		}
	case strings.Contains(lower, "total") && (strings.Contains(lower, "payable") || strings.Contains(lower, "after")):
		if summary.TotalPayable == nil {
			summary.TotalPayable = firstAmount(row, valueCols, false)
		}
	default:
		summary.Rows = append(summary.Rows, buildSummaryRow(row, cols, label))
	}
}

// firstAmount returns the first parsable number from the given column indices
// in order, optionally falling back to any cell in the row.
func firstAmount(row []string, preferred []int, anyCellFallback bool) *float64 {
	for _, idx := range preferred {
		if idx < 0 {
			continue
		}
		if v, ok := ParseAmount(cellAt(row, idx)); ok {
			return &v
		}
	}
	if anyCellFallback {
		for _, cell := range row {
			if v, ok := ParseAmount(cell); ok {
				return &v
			}
		}
	}
	return nil
}

func buildSummaryRow(row []string, cols summaryColumns, label string) SummaryRow {
	sr := SummaryRow{
		Room:        label,
		Modules:     bucketValue(row, cols.modules),
		Accessories: bucketValue(row, cols.accessories),
		Appliances:  bucketValue(row, cols.appliances),
		Services:    bucketValue(row, cols.services),
		Furniture:   bucketValue(row, cols.furniture),
	}

	if v, ok := ParseAmount(cellAt(row, cols.total)); ok {
		sr.Total = &v
	} else if derived := sr.Modules + sr.Accessories + sr.Appliances + sr.Services + sr.Furniture; derived > 0 {
		sr.Total = &derived
	}
	return sr
}

// bucketValue reads a mapped bucket column, defaulting to 0 when the column
// is unmapped or empty. The per-room buckets are the one place zero is the
// documented default rather than "absent".
func bucketValue(row []string, idx int) float64 {
	if idx < 0 {
		return 0
	}
	v, _ := ParseAmount(cellAt(row, idx))
	return v
}
