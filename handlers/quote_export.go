package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
)

// exportBaseName picks a human-friendly filename stem for a stored quote.
func exportBaseName(quote *services.Quote, record *core.Record) string {
	name := quote.Meta.Customer
	if name == "" {
		name = quote.Meta.Reference
	}
	if name == "" {
		name = strings.TrimSuffix(record.GetString("source_file"), ".xlsx")
	}
	if name == "" {
		name = "Quotation"
	}
	return sanitizeFilename(name)
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuoteExportPDF generates and downloads the quotation PDF.
// Route: GET /quotes/{id}/export/pdf
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, quote, err := loadStoredQuote(app, id)
		if err != nil {
			log.Printf("quote_export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GenerateQuotePDF(quote)
		if err != nil {
			log.Printf("quote_export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Quote_%s_%d.pdf", exportBaseName(quote, record), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleQuoteExportExcel generates and downloads the normalized workbook.
// Route: GET /quotes/{id}/export/excel
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, quote, err := loadStoredQuote(app, id)
		if err != nil {
			log.Printf("quote_export_excel: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateQuoteExcel(quote)
		if err != nil {
			log.Printf("quote_export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Quote_%s_%d.xlsx", exportBaseName(quote, record), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
