package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
)

// metadataPatch carries the editable header fields. Pointers distinguish
// "clear this field" (present, empty) from "leave it alone" (absent).
type metadataPatch struct {
	Reference        *string `json:"reference"`
	Customer         *string `json:"customer"`
	DesignerName     *string `json:"designerName"`
	DesignerEmail    *string `json:"designerEmail"`
	DesignerPhone    *string `json:"designerPhone"`
	QuoteDate        *string `json:"quoteDate"`
	QuoteValidTill   *string `json:"quoteValidTill"`
	PriceVersion     *string `json:"priceVersion"`
	PropertyName     *string `json:"propertyName"`
	TotalBuiltUpArea *string `json:"totalBuiltUpArea"`
	PropertyConfig   *string `json:"propertyConfig"`
	QuoteStatus      *string `json:"quoteStatus"`
	Address          *string `json:"address"`
	QuoteNumber      *string `json:"quoteNumber"`
}

func (p *metadataPatch) applyTo(meta *services.QuoteMetadata) {
	fields := []struct {
		src  *string
		dest *string
	}{
		{p.Reference, &meta.Reference},
		{p.Customer, &meta.Customer},
		{p.DesignerName, &meta.DesignerName},
		{p.DesignerEmail, &meta.DesignerEmail},
		{p.DesignerPhone, &meta.DesignerPhone},
		{p.QuoteDate, &meta.QuoteDate},
		{p.QuoteValidTill, &meta.QuoteValidTill},
		{p.PriceVersion, &meta.PriceVersion},
		{p.PropertyName, &meta.PropertyName},
		{p.TotalBuiltUpArea, &meta.TotalBuiltUpArea},
		{p.PropertyConfig, &meta.PropertyConfig},
		{p.QuoteStatus, &meta.QuoteStatus},
		{p.Address, &meta.Address},
		{p.QuoteNumber, &meta.QuoteNumber},
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dest = *f.src
		}
	}
}

// HandleQuoteMetaUpdate edits a stored quote's header metadata, the fields
// the preview screen lets sales staff correct before handing over the PDF.
// Route: PATCH /quotes/{id}/meta
func HandleQuoteMetaUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, quote, err := loadStoredQuote(app, id)
		if err != nil {
			log.Printf("quote_meta: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		var patch metadataPatch
		if err := json.NewDecoder(e.Request.Body).Decode(&patch); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid metadata payload"})
		}

		patch.applyTo(&quote.Meta)

		payload, err := json.Marshal(quote)
		if err != nil {
			log.Printf("quote_meta: marshal payload: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to serialize quote"})
		}
		record.Set("payload", string(payload))
		applyDenormalizedColumns(record, quote)

		if err := app.Save(record); err != nil {
			log.Printf("quote_meta: save record: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store quote"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":    record.Id,
			"quote": quote,
		})
	}
}
