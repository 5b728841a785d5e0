package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
	"quotegen/testhelpers"
)

func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newUploadRequest builds a multipart POST carrying one workbook file.
func newUploadRequest(t *testing.T, path, filename string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// kitchenWorkbook returns the smallest workbook the pipeline recognizes.
func kitchenWorkbook(t *testing.T) []byte {
	t.Helper()
	return testhelpers.BuildWorkbook(t, testhelpers.SheetSpec{
		Name: "Kitchen - Sq.Ft",
		Cells: [][]any{
			{"Flat 402 - Kitchen"},
			{"CABINET TYPE", "AREA", "COST", "TOTAL"},
			{"Base Unit", 12, 450, 5400},
		},
	})
}

func fp(v float64) *float64 { return &v }

// storedQuote is the payload used by tests that operate on saved records.
func storedQuote() *services.Quote {
	return &services.Quote{
		Rooms: []services.QuoteRoom{{
			Name: "Flat 402 - Kitchen",
			Types: []services.QuoteRoomType{{
				Type:      "Base Cabinets",
				Label:     "Base Units",
				Materials: map[string]string{"Carcass": "18mm BWP Plywood"},
				Stats:     services.CabinetStats{AreaSqFt: fp(12), CostPerSqFt: fp(450), Total: fp(5400)},
				Items:     []services.DetailItem{},
			}},
		}},
		Meta: services.QuoteMetadata{
			Reference:        "PRJ-A402",
			Customer:         "Asha Rao",
			TotalProjectCost: fp(5400),
		},
	}
}
