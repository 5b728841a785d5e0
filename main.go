package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/collections"
	"quotegen/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Conversion (stateless preview) ───────────────────────
		se.Router.POST("/quotes/convert", handlers.HandleQuoteConvert(app))

		// ── Stored quotes ────────────────────────────────────────
		se.Router.POST("/quotes", handlers.HandleQuoteSave(app))
		se.Router.GET("/quotes", handlers.HandleQuoteList(app))
		se.Router.PATCH("/quotes/{id}/meta", handlers.HandleQuoteMetaUpdate(app))
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app))

		// ── Document export ──────────────────────────────────────
		se.Router.GET("/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))
		se.Router.GET("/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))

		// View (after specific /quotes/{id}/* routes)
		se.Router.GET("/quotes/{id}", handlers.HandleQuoteView(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
