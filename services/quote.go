// Package services implements the workbook-to-quote extraction engine and the
// exports built on top of it. The pipeline is a single synchronous pass over
// an uploaded workbook: load, reconcile the Summary sheet, aggregate the room
// sheets, extract header metadata, finalize the financials, assemble.
package services

import (
	"errors"
	"sort"
)

// ErrNoRecognizableData is returned when the workbook parsed fine but no
// sheet produced a single room's worth of data. Distinct from
// ErrMalformedWorkbook: the file was readable, its content was not.
var ErrNoRecognizableData = errors.New("no recognizable quotation data found in workbook")

// Quote is the externally-facing structured quotation, the contract consumed
// by the preview UI and the document renderers.
type Quote struct {
	Rooms   []QuoteRoom   `json:"rooms"`
	Meta    QuoteMetadata `json:"meta"`
	Summary *QuoteSummary `json:"summary"`
}

// QuoteRoom is one room with its cabinet types sorted lexicographically for
// deterministic output.
type QuoteRoom struct {
	Name  string          `json:"name"`
	Types []QuoteRoomType `json:"types"`
}

// QuoteRoomType flattens everything known about one cabinet type in a room.
type QuoteRoomType struct {
	Type               string            `json:"type"`
	Label              string            `json:"label"`
	Materials          map[string]string `json:"materials"`
	Stats              CabinetStats      `json:"stats"`
	DimensionAggregate *float64          `json:"dimensionAggregate"`
	Items              []DetailItem      `json:"items"`
}

// ConvertWorkbook runs the full extraction pipeline on raw workbook bytes.
// It fails only on an unreadable workbook or a workbook with nothing
// extractable; every sheet- and row-level anomaly is recovered by skipping.
func ConvertWorkbook(data []byte) (*Quote, error) {
	wb, err := LoadWorkbook(data)
	if err != nil {
		return nil, err
	}

	materials, rawSummary := ReconcileSummary(wb)
	rooms := AggregateSheets(wb, materials)
	if len(rooms) == 0 {
		return nil, ErrNoRecognizableData
	}

	meta := ExtractMetadata(wb)
	summary := FinalizeSummary(rawSummary)
	return AssembleQuote(rooms, meta, summary), nil
}

// AssembleQuote shapes the room aggregates, metadata and finalized summary
// into the response model. Per room the type set is the union of the
// materials, stats and items keys; no source may lose or invent a key.
func AssembleQuote(rooms []*RoomAggregate, meta QuoteMetadata, summary *QuoteSummary) *Quote {
	quote := &Quote{Summary: summary}

	var statsTotal float64
	statsTotalSeen := false

	for _, agg := range rooms {
		room := QuoteRoom{Name: agg.Name}
		for _, typ := range unionTypeKeys(agg) {
			entry := QuoteRoomType{
				Type:      typ,
				Label:     typ,
				Materials: map[string]string{},
				Stats:     agg.Stats[typ],
				Items:     agg.Items[typ],
			}
			if entry.Items == nil {
				entry.Items = []DetailItem{}
			}
			if block, ok := agg.Materials[typ]; ok {
				if block.Label != "" {
					entry.Label = block.Label
				}
				for k, v := range block.Attrs {
					entry.Materials[k] = v
				}
			}
			if width, ok := agg.Widths[typ]; ok {
				entry.DimensionAggregate = &width
			}
			if entry.Stats.Total != nil {
				statsTotal += *entry.Stats.Total
				statsTotalSeen = true
			}
			room.Types = append(room.Types, entry)
		}
		quote.Rooms = append(quote.Rooms, room)
	}

	// Total project cost: the stated total payable wins over the sum of
	// per-type stats totals; either way the metadata only gets a value it
	// did not already carry.
	var projectCost *float64
	if summary != nil && summary.TotalPayable != nil {
		projectCost = summary.TotalPayable
	} else if statsTotalSeen {
		projectCost = &statsTotal
	}
	if meta.TotalProjectCost == nil {
		meta.TotalProjectCost = projectCost
	}
	quote.Meta = meta

	return quote
}

// unionTypeKeys returns the room's full canonical type set, sorted.
func unionTypeKeys(agg *RoomAggregate) []string {
	seen := make(map[string]bool)
	for typ := range agg.Materials {
		seen[typ] = true
	}
	for typ := range agg.Stats {
		seen[typ] = true
	}
	for typ := range agg.Items {
		seen[typ] = true
	}

	keys := make([]string, 0, len(seen))
	for typ := range seen {
		keys = append(keys, typ)
	}
	sort.Strings(keys)
	return keys
}
