// =============================================================================
// Points Directory - XLSX Parser
// =============================================================================
//
// Reads the points list from an .xlsx workbook with the same ten-column
// layout as the SpreadsheetML export:
//
//   | A        | B    | C     | D   | E     | F           | G       | H     | I          | J        |
//   |----------|------|-------|-----|-------|-------------|---------|-------|------------|----------|
//   | Centrala | Nom  | Ulica | Kod | Miasto| Województwo | Telefon | Email | Doładowanie| Sprzedaż |
//
// An empty cell counts as a missing data node. Cell values are read raw
// (unformatted) so flags come through as "0"/"1" regardless of the number
// format applied in the workbook.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/points-directory/internal/types"
)

// ErrSheetNotFound is returned when the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// =============================================================================
// PARSER OPTIONS
// =============================================================================

// Options controls which part of the workbook is read.
type Options struct {
	// SheetName selects a sheet. Empty picks the first sheet.
	SheetName string

	// HeaderRows is the number of leading rows to skip.
	HeaderRows int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads the points sheet from an XLSX file.
func ParseFile(path string, opts Options) (*types.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f, opts)
}

// Parse reads the points sheet from an XLSX stream.
func Parse(r io.Reader, opts Options) (*types.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f, opts)
}

// parseWorkbook extracts the rows of the selected sheet.
func parseWorkbook(f *excelize.File, opts Options) (*types.Sheet, error) {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		sheetName = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	sheet := &types.Sheet{Name: sheetName}
	for i := opts.HeaderRows; i < len(rows); i++ {
		sheet.Rows = append(sheet.Rows, toRawRow(rows[i], i+1))
	}

	return sheet, nil
}

// toRawRow maps a row of cell strings onto the fixed columns.
func toRawRow(cells []string, number int) types.RawRow {
	row := types.RawRow{Number: number}
	for col := 0; col < len(cells) && col < types.ColumnCount; col++ {
		if cells[col] != "" {
			row.Cells[col] = types.Cell{Value: cells[col], Present: true}
		}
	}
	return row
}
