// =============================================================================
// Points Directory - CSV Parser Module
// =============================================================================
//
// Reads the points list from a delimited text export with the same ten
// columns as the spreadsheet export. Spreadsheet tools save these with a
// semicolon delimiter and, on Polish Windows installs, in windows-1250, so
// both are configurable.
//
// An empty field counts as a missing data node, exactly like an empty XLSX
// cell. Rows shorter than ten fields leave the trailing columns missing.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/ginjaninja78/points-directory/internal/types"
)

// =============================================================================
// PARSER OPTIONS
// =============================================================================

// Options controls how the file is read.
type Options struct {
	// Delimiter is the field separator. Accepts a single character or one of
	// "tab", "pipe", "semicolon", "comma". Default: ";".
	Delimiter string

	// Encoding is the character set of the file, e.g. "windows-1250".
	// Empty or "utf-8" reads the bytes as they are.
	Encoding string

	// HeaderRows is the number of leading records to skip.
	HeaderRows int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads the points list from a CSV file.
func ParseFile(path string, opts Options) (*types.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return Parse(file, opts)
}

// Parse reads the points list from r.
//
// PARSING PROCESS:
//  1. Decode the configured encoding to UTF-8
//  2. Configure the CSV reader with the delimiter
//  3. Skip header records
//  4. Place each record's fields into the fixed columns
func Parse(r io.Reader, opts Options) (*types.Sheet, error) {
	reader, err := decode(bufio.NewReader(r), opts.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(reader)
	if err := configureReader(csvReader, opts.Delimiter); err != nil {
		return nil, err
	}

	sheet := &types.Sheet{}
	for record := 0; ; record++ {
		fields, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if record < opts.HeaderRows {
			continue
		}

		line, _ := csvReader.FieldPos(0)
		sheet.Rows = append(sheet.Rows, toRawRow(fields, line))
	}

	return sheet, nil
}

// decode wraps r with a decoder for the named encoding.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return r, nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	return enc.NewDecoder().Reader(r), nil
}

// configureReader applies the delimiter and the lenient settings exports
// need: variable field counts and stray quotes.
func configureReader(reader *csv.Reader, delimiter string) error {
	switch strings.ToLower(delimiter) {
	case "", ";", "semicolon":
		reader.Comma = ';'
	case "\\t", "tab":
		reader.Comma = '\t'
	case "|", "pipe":
		reader.Comma = '|'
	case ",", "comma":
		reader.Comma = ','
	default:
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("invalid delimiter %q", delimiter)
		}
		reader.Comma = runes[0]
	}

	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return nil
}

// toRawRow maps the fields of one record onto the fixed columns.
func toRawRow(fields []string, line int) types.RawRow {
	row := types.RawRow{Number: line}
	for col := 0; col < len(fields) && col < types.ColumnCount; col++ {
		if fields[col] != "" {
			row.Cells[col] = types.Cell{Value: fields[col], Present: true}
		}
	}
	return row
}
