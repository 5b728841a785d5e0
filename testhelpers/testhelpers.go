// Package testhelpers provides utilities for testing the quote conversion
// service: a disposable PocketBase app and an in-memory workbook builder.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"quotegen/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// SheetSpec is one sheet of a fixture workbook. Cells may be strings or
// numbers; nil leaves the cell empty.
type SheetSpec struct {
	Name  string
	Cells [][]any
}

// BuildWorkbook assembles an xlsx byte buffer from sheet specs, in order.
func BuildWorkbook(t *testing.T, sheets ...SheetSpec) []byte {
	t.Helper()

	if len(sheets) == 0 {
		t.Fatal("BuildWorkbook requires at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				t.Fatalf("failed to rename sheet %q: %v", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				t.Fatalf("failed to create sheet %q: %v", sheet.Name, err)
			}
		}

		for r, row := range sheet.Cells {
			for c, value := range row {
				if value == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("bad cell coordinates (%d,%d): %v", c+1, r+1, err)
				}
				if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
					t.Fatalf("failed to set cell %s: %v", cell, err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

// CreateTestQuote stores a quotes record with the given payload and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, sourceFile string, payload any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("source_file", sourceFile)
	record.Set("payload", string(raw))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}
