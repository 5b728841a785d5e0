package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMalformedWorkbook is returned when the uploaded bytes cannot be read as
// a spreadsheet container, or the container holds no sheets.
var ErrMalformedWorkbook = errors.New("file is not a readable spreadsheet workbook")

// Sheet is one worksheet materialized as trimmed cell text. Values keep their
// original text form: "₹5,400" stays a string here and is only coerced to a
// number where a caller actually needs one.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is the in-memory form of an uploaded spreadsheet. It is built once
// per conversion request and never mutated afterwards.
type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the sheet with the given name, or nil if absent.
func (w *Workbook) Sheet(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}

// LoadWorkbook parses raw spreadsheet bytes into a Workbook.
// Merged regions are expanded so that every covered cell carries the merged
// value; header labels spanning several columns stay matchable per column.
func LoadWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := readSheetGrid(f, name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrMalformedWorkbook, name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrMalformedWorkbook)
	}
	return wb, nil
}

// readSheetGrid reads one sheet into a rectangular grid of trimmed strings
// and copies merged-cell values across every cell of their range.
func readSheetGrid(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	grid := make([][]string, len(rows))
	for i := range grid {
		grid[i] = make([]string, maxCol)
		for j, cell := range rows[i] {
			grid[i][j] = strings.TrimSpace(cell)
		}
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	for _, merge := range merges {
		val := strings.TrimSpace(merge.GetCellValue())
		startCol, startRow, err := excelize.CellNameToCoordinates(merge.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(merge.GetEndAxis())
		if err != nil {
			continue
		}
		for r := startRow - 1; r <= endRow-1; r++ {
			for c := startCol - 1; c <= endCol-1; c++ {
				if r >= 0 && r < len(grid) && c >= 0 && c < len(grid[r]) {
					grid[r][c] = val
				}
			}
		}
	}

	return grid, nil
}
