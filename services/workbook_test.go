package services

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildXLSX writes the given sheets into real spreadsheet bytes for tests
// that exercise the loader and the full conversion pipeline.
func buildXLSX(t *testing.T, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("new sheet %q: %v", sheet.Name, err)
		}
		for r, row := range sheet.Rows {
			for c, val := range row {
				if val == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("cell name: %v", err)
				}
				if err := f.SetCellValue(sheet.Name, cell, val); err != nil {
					t.Fatalf("set cell: %v", err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestLoadWorkbook_MalformedBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"plain text", []byte("this is not a spreadsheet")},
		{"truncated zip", []byte("PK\x03\x04 nope")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWorkbook(tt.data)
			if !errors.Is(err, ErrMalformedWorkbook) {
				t.Errorf("LoadWorkbook error = %v, want ErrMalformedWorkbook", err)
			}
		})
	}
}

func TestLoadWorkbook_RoundTrip(t *testing.T) {
	data := buildXLSX(t,
		sheetOf("Summary",
			[]string{"Flat 402 - Kitchen", "", "₹5,400"},
			[]string{"  padded  "},
		),
		sheetOf("Kitchen - Details",
			[]string{"SL", "DESCRIPTION"},
		),
	)

	wb, err := LoadWorkbook(data)
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(wb.Sheets))
	}

	summary := wb.Sheet("Summary")
	if summary == nil {
		t.Fatal("Summary sheet missing")
	}
	if got := summary.Rows[0][0]; got != "Flat 402 - Kitchen" {
		t.Errorf("cell A1 = %q", got)
	}
	// Currency text survives as text; no numeric coercion at load time.
	if got := summary.Rows[0][2]; got != "₹5,400" {
		t.Errorf("cell C1 = %q, want verbatim currency text", got)
	}
	if got := summary.Rows[1][0]; got != "padded" {
		t.Errorf("cell A2 = %q, want trimmed", got)
	}

	if wb.Sheet("No Such Sheet") != nil {
		t.Error("lookup of a missing sheet must return nil")
	}
}

func TestLoadWorkbook_MergedCellsExpanded(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if err := f.SetCellValue("Summary", "A1", "Flat 402 - Kitchen"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellValue("Summary", "D2", "wide"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.MergeCell("Summary", "A1", "C1"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	wb, err := LoadWorkbook(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}

	row := wb.Sheet("Summary").Rows[0]
	if len(row) < 3 {
		t.Fatalf("row width = %d, want at least the merged span", len(row))
	}
	for col := 0; col < 3; col++ {
		if row[col] != "Flat 402 - Kitchen" {
			t.Errorf("merged cell col %d = %q, want the merged value", col, row[col])
		}
	}
}
