package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
)

// quoteListItem is one row of the stored-quotes listing.
type quoteListItem struct {
	ID               string   `json:"id"`
	SourceFile       string   `json:"sourceFile"`
	Customer         string   `json:"customer,omitempty"`
	Reference        string   `json:"reference,omitempty"`
	QuoteNumber      string   `json:"quoteNumber,omitempty"`
	TotalProjectCost *float64 `json:"totalProjectCost"`
	Created          string   `json:"created"`
}

// HandleQuoteList lists stored quotes, newest first.
// Route: GET /quotes
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_list: collection not found: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "quotes storage is unavailable"})
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			records = nil
		}

		items := make([]quoteListItem, 0, len(records))
		for _, r := range records {
			item := quoteListItem{
				ID:          r.Id,
				SourceFile:  r.GetString("source_file"),
				Customer:    r.GetString("customer"),
				Reference:   r.GetString("reference"),
				QuoteNumber: r.GetString("quote_number"),
				Created:     r.GetString("created"),
			}
			// The number column cannot hold null, so the cost comes from the
			// payload to keep a stated zero distinct from no cost at all.
			var payload struct {
				Meta struct {
					TotalProjectCost *float64 `json:"totalProjectCost"`
				} `json:"meta"`
			}
			if err := json.Unmarshal([]byte(r.GetString("payload")), &payload); err == nil {
				item.TotalProjectCost = payload.Meta.TotalProjectCost
			}
			items = append(items, item)
		}
		return e.JSON(http.StatusOK, map[string]any{"quotes": items})
	}
}

// loadStoredQuote fetches a quotes record and unpacks its payload.
func loadStoredQuote(app *pocketbase.PocketBase, id string) (*core.Record, *services.Quote, error) {
	record, err := app.FindRecordById("quotes", id)
	if err != nil {
		return nil, nil, err
	}

	var quote services.Quote
	if err := json.Unmarshal([]byte(record.GetString("payload")), &quote); err != nil {
		return nil, nil, err
	}
	return record, &quote, nil
}

// HandleQuoteView returns one stored quote's full structured payload.
// Route: GET /quotes/{id}
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, quote, err := loadStoredQuote(app, id)
		if err != nil {
			log.Printf("quote_view: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":         record.Id,
			"sourceFile": record.GetString("source_file"),
			"created":    record.GetString("created"),
			"quote":      quote,
		})
	}
}
