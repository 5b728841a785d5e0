package services

import (
	"regexp"
	"strings"
)

// CabinetStats carries the per-type numbers from a "…Sq.Ft" sheet. Every
// field is independently optional; a missing cell stays nil and renders as
// "not applicable", never as zero.
type CabinetStats struct {
	AreaSqFt    *float64 `json:"areaSqFt"`
	CostPerSqFt *float64 `json:"costPerSqFt"`
	Total       *float64 `json:"total"`
}

// DetailItem is one priced line from a "…Details" sheet. Order of arrival is
// order of the physical bill of materials and is preserved.
type DetailItem struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Size        string   `json:"size"`
	Price       *float64 `json:"price"`
}

// RoomAggregate accumulates everything the workbook says about one room.
// A type may appear in any subset of the three maps; the room's full type set
// is the union of their keys.
type RoomAggregate struct {
	Name      string
	Materials MaterialsMap
	Stats     map[string]CabinetStats
	Items     map[string][]DetailItem
	Widths    map[string]float64
}

func newRoomAggregate(name string, seed MaterialsMap) *RoomAggregate {
	agg := &RoomAggregate{
		Name:      name,
		Materials: make(MaterialsMap),
		Stats:     make(map[string]CabinetStats),
		Items:     make(map[string][]DetailItem),
		Widths:    make(map[string]float64),
	}
	for typ, block := range seed {
		agg.Materials.Put(typ, block)
	}
	return agg
}

// hasData reports whether any sheet contributed anything to this room.
func (a *RoomAggregate) hasData() bool {
	return len(a.Materials) > 0 || len(a.Stats) > 0 || len(a.Items) > 0
}

// ensureMaterials guarantees a placeholder block exists for a type that shows
// up in stats or detail rows but never got a materials section.
func (a *RoomAggregate) ensureMaterials(typ string) {
	a.Materials.Put(typ, MaterialsBlock{Label: typ, Attrs: map[string]string{}})
}

var (
	statsEndPattern = regexp.MustCompile(`(?i)^(wood work|total)`)
	sheetPunct      = " .,:;-_"
)

// AggregateSheets walks every sheet except "Summary" and "Terms & Conditions",
// assigns each to a room, classifies it as a stats sheet, a detail sheet or
// a fallback, and merges the extracted data per room. Rooms keep first-seen
// order; sheets the heuristics cannot read are skipped without error.
func AggregateSheets(wb *Workbook, summaryMaterials map[string]MaterialsMap) []*RoomAggregate {
	byName := make(map[string]*RoomAggregate)
	var order []*RoomAggregate

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		if sheet.Name == "Summary" || sheet.Name == "Terms & Conditions" {
			continue
		}

		roomName := detectRoomName(sheet)
		agg := byName[roomName]
		if agg == nil {
			agg = newRoomAggregate(roomName, summaryMaterials[roomName])
			byName[roomName] = agg
			order = append(order, agg)
		}

		switch classifySheetName(sheet.Name) {
		case sheetKindStats:
			extractStatsSheet(sheet, agg)
		case sheetKindDetails:
			extractDetailSheet(sheet, agg)
		default:
			extractInlineMaterials(sheet, agg)
		}
	}

	kept := order[:0]
	for _, agg := range order {
		if agg.hasData() {
			kept = append(kept, agg)
		}
	}
	return kept
}

// detectRoomName finds the room a sheet belongs to: the first cell anywhere
// on the sheet matching the room-name pattern, else the sheet's own name.
func detectRoomName(sheet *Sheet) string {
	for _, row := range sheet.Rows {
		for _, cell := range row {
			if isRoomName(cell) {
				return cell
			}
		}
	}
	return sheet.Name
}

type sheetKind int

const (
	sheetKindFallback sheetKind = iota
	sheetKindStats
	sheetKindDetails
)

func classifySheetName(name string) sheetKind {
	trimmed := strings.ToLower(strings.TrimRight(strings.TrimSpace(name), sheetPunct))
	switch {
	case strings.HasSuffix(trimmed, "sq.ft") || strings.HasSuffix(trimmed, "sqft"):
		return sheetKindStats
	case strings.HasSuffix(trimmed, "details"):
		return sheetKindDetails
	default:
		return sheetKindFallback
	}
}

// extractStatsSheet reads the cabinet-type area/cost table. The table ends at
// the first "Wood Work…" or "Total…" row, which are footers, not data.
func extractStatsSheet(sheet *Sheet, agg *RoomAggregate) {
	headerIdx, typeCol := -1, -1
	areaCol, costCol, totalCol := -1, -1, -1

	for i, row := range sheet.Rows {
		for j, cell := range row {
			if strings.Contains(strings.ToUpper(cell), "CABINET TYPE") {
				headerIdx, typeCol = i, j
				break
			}
		}
		if headerIdx < 0 {
			continue
		}
		for j, cell := range row {
			upper := strings.ToUpper(cell)
			switch {
			case strings.Contains(upper, "AREA"):
				areaCol = j
			case strings.Contains(upper, "COST"):
				costCol = j
			case strings.Contains(upper, "TOTAL"):
				totalCol = j
			}
		}
		break
	}
	if headerIdx < 0 {
		return
	}

	for _, row := range sheet.Rows[headerIdx+1:] {
		typeText := cellAt(row, typeCol)
		if typeText == "" {
			continue
		}
		if statsEndPattern.MatchString(typeText) {
			break
		}
		typ := CanonicalTypeName(typeText)
		agg.Stats[typ] = CabinetStats{
			AreaSqFt:    amountPtr(cellAt(row, areaCol)),
			CostPerSqFt: amountPtr(cellAt(row, costCol)),
			Total:       amountPtr(cellAt(row, totalCol)),
		}
		agg.ensureMaterials(typ)
	}
}

// extractDetailSheet reads priced line items. Rows without a serial number or
// description are layout noise; "Total" descriptions are subtotal artifacts;
// rows whose description matches no known type are dropped rather than
// mis-bucketed.
func extractDetailSheet(sheet *Sheet, agg *RoomAggregate) {
	headerIdx := -1
	slCol, codeCol, descCol, sizeCol, priceCol := -1, -1, -1, -1, -1

	for i, row := range sheet.Rows {
		sl, code, desc, size, price := -1, -1, -1, -1, -1
		for j, cell := range row {
			upper := strings.ToUpper(cell)
			switch {
			case strings.Contains(upper, "DESCRIPTION"):
				desc = j
			case strings.Contains(upper, "SL") || strings.Contains(upper, "S.NO"):
				sl = j
			case strings.Contains(upper, "CODE"):
				code = j
			case strings.Contains(upper, "SIZE") || strings.Contains(upper, "DIMENSION"):
				size = j
			case strings.Contains(upper, "PRICE") || strings.Contains(upper, "AMOUNT"):
				price = j
			}
		}
		// Only the row carrying the DESCRIPTION header defines the column
		// mapping; text above it must not leak indices into the table.
		if desc >= 0 {
			headerIdx = i
			slCol, codeCol, descCol, sizeCol, priceCol = sl, code, desc, size, price
			break
		}
	}
	if headerIdx < 0 {
		return
	}

	for _, row := range sheet.Rows[headerIdx+1:] {
		if slCol >= 0 && cellAt(row, slCol) == "" {
			continue
		}
		description := cellAt(row, descCol)
		if description == "" || description == "Total" {
			continue
		}
		typ, ok := ClassifyItemDescription(description)
		if !ok {
			continue
		}

		size := cellAt(row, sizeCol)
		agg.Items[typ] = append(agg.Items[typ], DetailItem{
			Code:        cellAt(row, codeCol),
			Description: description,
			Size:        size,
			Price:       amountPtr(cellAt(row, priceCol)),
		})
		if size != "" {
			agg.Widths[typ] += ExtractWidth(size)
		}
		agg.ensureMaterials(typ)
	}
}

// extractInlineMaterials is the last-resort path for sheets that are neither
// stats nor details: if the room still has no materials at all, any cell with
// a "Carcass:" blob is parsed the same way as a Summary materials block.
func extractInlineMaterials(sheet *Sheet, agg *RoomAggregate) {
	if len(agg.Materials) > 0 {
		return
	}
	for _, row := range sheet.Rows {
		for _, cell := range row {
			if !strings.Contains(cell, "Carcass:") {
				continue
			}
			for typ, block := range ParseMaterialsText(cell) {
				agg.Materials.Put(typ, block)
			}
		}
	}
}
