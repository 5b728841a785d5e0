package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotegen/services"
	"quotegen/testhelpers"
)

func TestHandleQuoteList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteList(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Quotes []quoteListItem `json:"quotes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Quotes) != 0 {
		t.Errorf("expected empty list, got %+v", resp.Quotes)
	}
}

func TestHandleQuoteList_ReturnsStoredQuotes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestQuote(t, app, "first.xlsx", storedQuote())
	testhelpers.CreateTestQuote(t, app, "second.xlsx", storedQuote())

	handler := HandleQuoteList(app)
	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		Quotes []quoteListItem `json:"quotes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(resp.Quotes))
	}
	for _, item := range resp.Quotes {
		if item.ID == "" || item.SourceFile == "" {
			t.Errorf("incomplete list item: %+v", item)
		}
	}
}

func TestHandleQuoteList_ZeroCostStaysDistinctFromAbsent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	zeroCost := storedQuote()
	zeroCost.Meta.TotalProjectCost = fp(0)
	testhelpers.CreateTestQuote(t, app, "zero.xlsx", zeroCost)

	noCost := storedQuote()
	noCost.Meta.TotalProjectCost = nil
	testhelpers.CreateTestQuote(t, app, "absent.xlsx", noCost)

	handler := HandleQuoteList(app)
	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		Quotes []quoteListItem `json:"quotes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(resp.Quotes))
	}

	byFile := map[string]quoteListItem{}
	for _, item := range resp.Quotes {
		byFile[item.SourceFile] = item
	}
	zero := byFile["zero.xlsx"]
	if zero.TotalProjectCost == nil || *zero.TotalProjectCost != 0 {
		t.Errorf("zero-cost quote = %v, want explicit 0", zero.TotalProjectCost)
	}
	if absent := byFile["absent.xlsx"]; absent.TotalProjectCost != nil {
		t.Errorf("absent-cost quote = %v, want null", absent.TotalProjectCost)
	}
}

func TestHandleQuoteView_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestQuote(t, app, "kitchen.xlsx", storedQuote())

	handler := HandleQuoteView(app)
	req := httptest.NewRequest(http.MethodGet, "/quotes/"+record.Id, nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		ID         string         `json:"id"`
		SourceFile string         `json:"sourceFile"`
		Quote      services.Quote `json:"quote"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.ID != record.Id || resp.SourceFile != "kitchen.xlsx" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Quote.Meta.Customer != "Asha Rao" {
		t.Errorf("quote customer = %q", resp.Quote.Meta.Customer)
	}
}

func TestHandleQuoteView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteView(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
