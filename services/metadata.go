package services

import (
	"regexp"
	"strings"
)

// QuoteMetadata is the flat header record for a quotation. Every field is
// optional; string fields stay empty when the workbook never mentions them
// and TotalProjectCost stays nil rather than zero.
type QuoteMetadata struct {
	Reference        string   `json:"reference,omitempty"`
	Customer         string   `json:"customer,omitempty"`
	DesignerName     string   `json:"designerName,omitempty"`
	DesignerEmail    string   `json:"designerEmail,omitempty"`
	DesignerPhone    string   `json:"designerPhone,omitempty"`
	QuoteDate        string   `json:"quoteDate,omitempty"`
	QuoteValidTill   string   `json:"quoteValidTill,omitempty"`
	PriceVersion     string   `json:"priceVersion,omitempty"`
	PropertyName     string   `json:"propertyName,omitempty"`
	TotalBuiltUpArea string   `json:"totalBuiltUpArea,omitempty"`
	PropertyConfig   string   `json:"propertyConfig,omitempty"`
	QuoteStatus      string   `json:"quoteStatus,omitempty"`
	Address          string   `json:"address,omitempty"`
	QuoteNumber      string   `json:"quoteNumber,omitempty"`
	TotalProjectCost *float64 `json:"totalProjectCost"`
}

// metadataLabel pairs a header-label pattern with the destination field.
// The value for a matched label is the nearest following non-empty cell in
// the same row.
type metadataLabel struct {
	pattern *regexp.Regexp
	assign  func(*QuoteMetadata, string)
}

var metadataLabels = []metadataLabel{
	{regexp.MustCompile(`(?i)reference`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.Reference, v) }},
	{regexp.MustCompile(`(?i)property\s*name`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.PropertyName, v) }},
	{regexp.MustCompile(`(?i)customer`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.Customer, v) }},
	{regexp.MustCompile(`(?i)price\s*version`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.PriceVersion, v) }},
	{regexp.MustCompile(`(?i)quote\s*valid\s*till`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.QuoteValidTill, v) }},
	{regexp.MustCompile(`(?i)quote\s*status`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.QuoteStatus, v) }},
	{regexp.MustCompile(`(?i)property\s*config`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.PropertyConfig, v) }},
	{regexp.MustCompile(`(?i)total\s*built`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.TotalBuiltUpArea, v) }},
	{regexp.MustCompile(`(?i)design\s*expert|dp\s*name`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.DesignerName, v) }},
	{regexp.MustCompile(`(?i)address`), func(m *QuoteMetadata, v string) { setIfEmpty(&m.Address, v) }},
}

var (
	quoteNumberShape = regexp.MustCompile(`(?i)quote[-\s]?\w+`)
	emailShape       = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneShape       = regexp.MustCompile(`\+?[0-9][0-9\s()-]{5,}[0-9]`)
	dateShape        = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2})\b`)
)

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// ExtractMetadata scans every sheet for header-style key/value pairs using
// label adjacency, plus opportunistic shape matches (quote number, email,
// phone, date) regardless of labels. The first sighting of each field across
// the whole workbook wins.
func ExtractMetadata(wb *Workbook) QuoteMetadata {
	var meta QuoteMetadata

	for _, sheet := range wb.Sheets {
		for _, row := range sheet.Rows {
			for i, cell := range row {
				if cell == "" {
					continue
				}
				for _, label := range metadataLabels {
					if !label.pattern.MatchString(cell) {
						continue
					}
					if value := nextNonEmpty(row, i+1); value != "" {
						label.assign(&meta, value)
					}
				}
				captureShapes(&meta, cell)
			}
		}
	}

	// A reference like "PRJ-A402" doubles as the property name when the
	// workbook never states one explicitly.
	if meta.PropertyName == "" {
		meta.PropertyName = meta.Reference
	}
	return meta
}

func nextNonEmpty(row []string, from int) string {
	for _, cell := range row[from:] {
		if v := strings.TrimSpace(cell); v != "" {
			return v
		}
	}
	return ""
}

// captureShapes fills fields recognizable from cell content alone.
func captureShapes(meta *QuoteMetadata, cell string) {
	if meta.QuoteNumber == "" {
		if m := quoteNumberShape.FindString(cell); m != "" {
			meta.QuoteNumber = m
		}
	}
	if meta.DesignerEmail == "" {
		if m := emailShape.FindString(cell); m != "" {
			meta.DesignerEmail = m
		}
	}
	// A date like 2024-08-31 is digits and dashes, which also satisfies the
	// phone shape; date cells never count as phone numbers.
	if meta.DesignerPhone == "" && !dateShape.MatchString(cell) {
		if m := phoneShape.FindString(cell); m != "" && countDigits(m) >= 7 {
			meta.DesignerPhone = strings.TrimSpace(m)
		}
	}
	if meta.QuoteDate == "" {
		if m := dateShape.FindString(cell); m != "" {
			meta.QuoteDate = m
		}
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
