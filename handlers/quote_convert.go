package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
)

// maxUploadSize caps workbook uploads at 25MB.
const maxUploadSize = 25 << 20

// readWorkbookUpload pulls the uploaded workbook out of the multipart form
// and returns its bytes plus the original filename.
func readWorkbookUpload(e *core.RequestEvent) ([]byte, string, error) {
	if err := e.Request.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "", fmt.Errorf("file too large or invalid form data")
	}

	file, header, err := e.Request.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("please select a workbook file to upload")
	}
	defer file.Close()

	lower := strings.ToLower(header.Filename)
	if !strings.HasSuffix(lower, ".xls") && !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xlsm") {
		return nil, "", fmt.Errorf("unsupported file format: must be .xls, .xlsx or .xlsm")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file")
	}
	return data, header.Filename, nil
}

// conversionStatus maps pipeline errors to HTTP responses. The two fatal
// parse errors are the caller's fault; anything else is ours.
func conversionStatus(err error) int {
	if errors.Is(err, services.ErrMalformedWorkbook) || errors.Is(err, services.ErrNoRecognizableData) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// HandleQuoteConvert converts an uploaded workbook and returns the structured
// quote without persisting anything. This is the stateless preview path.
// Route: POST /quotes/convert
func HandleQuoteConvert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, _, err := readWorkbookUpload(e)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		quote, err := services.ConvertWorkbook(data)
		if err != nil {
			log.Printf("quote_convert: %v", err)
			return e.JSON(conversionStatus(err), map[string]string{"error": err.Error()})
		}

		return e.JSON(http.StatusOK, quote)
	}
}

// HandleQuoteSave converts an uploaded workbook and stores the result as a
// quotes record.
// Route: POST /quotes
func HandleQuoteSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, filename, err := readWorkbookUpload(e)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		quote, err := services.ConvertWorkbook(data)
		if err != nil {
			log.Printf("quote_save: %v", err)
			return e.JSON(conversionStatus(err), map[string]string{"error": err.Error()})
		}

		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_save: collection not found: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "quotes storage is unavailable"})
		}

		payload, err := json.Marshal(quote)
		if err != nil {
			log.Printf("quote_save: marshal payload: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to serialize quote"})
		}

		record := core.NewRecord(col)
		record.Set("source_file", filename)
		record.Set("payload", string(payload))
		applyDenormalizedColumns(record, quote)

		if err := app.Save(record); err != nil {
			log.Printf("quote_save: save record: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store quote"})
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":    record.Id,
			"quote": quote,
		})
	}
}

// applyDenormalizedColumns mirrors a few metadata fields into flat columns
// for filtering and sorting in the admin UI.
func applyDenormalizedColumns(record *core.Record, quote *services.Quote) {
	record.Set("customer", quote.Meta.Customer)
	record.Set("reference", quote.Meta.Reference)
	record.Set("quote_number", quote.Meta.QuoteNumber)
	if quote.Meta.TotalProjectCost != nil {
		record.Set("total_project_cost", *quote.Meta.TotalProjectCost)
	}
}
