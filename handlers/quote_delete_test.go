package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quotegen/testhelpers"
)

func TestHandleQuoteDelete_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestQuote(t, app, "kitchen.xlsx", storedQuote())

	handler := HandleQuoteDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/quotes/"+record.Id, nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("quotes", record.Id); err == nil {
		t.Error("record still exists after delete")
	}
}

func TestHandleQuoteDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/quotes/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
