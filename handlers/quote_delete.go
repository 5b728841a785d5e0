package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteDelete removes a stored quote.
// Route: DELETE /quotes/{id}
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_delete: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete quote"})
		}

		return e.NoContent(http.StatusNoContent)
	}
}
