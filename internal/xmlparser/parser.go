// =============================================================================
// Points Directory - SpreadsheetML Parser
// =============================================================================
//
// Reads the "XML Spreadsheet 2003" export of the points list:
//
//   <Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
//             xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
//     <Worksheet ss:Name="Punkty">
//       <Table>
//         <Row>                                   <- header, skipped
//           <Cell><Data ss:Type="String">Centrala</Data></Cell> ...
//         </Row>
//         <Row>
//           <Cell><Data ss:Type="String">C1</Data></Cell>
//           <Cell ss:Index="3"><Data ...>Kwiatowa 1</Data></Cell>
//           <Cell/>                               <- no Data: value absent
//           ...
//
// SPARSE ROWS:
//   Excel omits empty cells and marks the next written cell with ss:Index
//   (1-based). ss:MergeAcross="n" makes a cell span n extra columns. Rows can
//   likewise carry ss:Index. Both are honoured so the ten-column positional
//   contract holds even for sparse exports.
//
// ENCODING:
//   UTF-8 is read natively. Other encodings named in the XML declaration
//   (windows-1250, iso-8859-2, ...) are decoded through golang.org/x/text.
//
// =============================================================================

package xmlparser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ginjaninja78/points-directory/internal/types"
	"github.com/ginjaninja78/points-directory/internal/validation"
)

// ErrNoTable is returned when the document contains no usable worksheet.
var ErrNoTable = errors.New("no worksheet table found")

// =============================================================================
// PARSER OPTIONS
// =============================================================================

// Options controls which part of the document is read.
type Options struct {
	// SheetName selects a worksheet by its ss:Name. Empty picks the first
	// worksheet that has a Table.
	SheetName string

	// HeaderRows is the number of leading Row elements to skip.
	HeaderRows int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads and parses a SpreadsheetML file.
func ParseFile(path string, opts Options) (*types.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Parse(f, opts)
}

// Parse reads a SpreadsheetML document from r.
func Parse(r io.Reader, opts Options) (*types.Sheet, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse XML: document has no root element")
	}

	name, table, err := selectTable(doc, opts.SheetName)
	if err != nil {
		return nil, err
	}

	sheet := &types.Sheet{Name: name}
	rowNumber := 0
	for i, rowElem := range table.SelectElements("Row") {
		if n, ok, err := indexAttr(rowElem); err != nil {
			return nil, &validation.RowError{Row: rowNumber + 1, Field: "row", Value: rowElem.SelectAttrValue("Index", ""), Message: err.Error()}
		} else if ok {
			if n <= rowNumber {
				return nil, &validation.RowError{Row: rowNumber + 1, Field: "row", Value: strconv.Itoa(n), Message: "ss:Index goes backwards"}
			}
			rowNumber = n
		} else {
			rowNumber++
		}

		if i < opts.HeaderRows {
			continue
		}

		row, err := parseRow(rowElem, rowNumber)
		if err != nil {
			return nil, err
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// selectTable finds the Table element to read.
func selectTable(doc *etree.Document, sheetName string) (string, *etree.Element, error) {
	for _, ws := range doc.FindElements("//Worksheet") {
		name := ws.SelectAttrValue("Name", "")
		if sheetName != "" && name != sheetName {
			continue
		}
		if table := ws.SelectElement("Table"); table != nil {
			return name, table, nil
		}
		if sheetName != "" {
			return "", nil, fmt.Errorf("%w: worksheet %q has no Table", ErrNoTable, sheetName)
		}
	}

	if sheetName != "" {
		return "", nil, fmt.Errorf("%w: worksheet %q not found", ErrNoTable, sheetName)
	}

	// Bare tables without a Worksheet wrapper.
	if table := doc.FindElement("//Table"); table != nil {
		return "", table, nil
	}
	return "", nil, ErrNoTable
}

// parseRow places the Cell children of a Row into the fixed columns.
func parseRow(rowElem *etree.Element, rowNumber int) (types.RawRow, error) {
	row := types.RawRow{Number: rowNumber}

	col := 0 // 0-based position of the next cell
	for _, cellElem := range rowElem.SelectElements("Cell") {
		n, ok, err := indexAttr(cellElem)
		if err != nil {
			return row, &validation.RowError{
				Row: rowNumber, Column: col + 1, Field: "cell",
				Value: cellElem.SelectAttrValue("Index", ""), Message: err.Error(),
			}
		}
		if ok {
			if n-1 < col {
				return row, &validation.RowError{
					Row: rowNumber, Column: col + 1, Field: "cell",
					Value: strconv.Itoa(n), Message: "ss:Index goes backwards",
				}
			}
			col = n - 1
		}

		if col < types.ColumnCount {
			if data := cellElem.SelectElement("Data"); data != nil {
				row.Cells[col] = types.Cell{Value: innerText(data), Present: true}
			}
		}

		col++
		if merge := cellElem.SelectAttrValue("MergeAcross", ""); merge != "" {
			if extra, err := strconv.Atoi(merge); err == nil && extra > 0 {
				col += extra
			}
		}
	}

	return row, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// indexAttr reads a 1-based ss:Index attribute.
func indexAttr(e *etree.Element) (int, bool, error) {
	attr := e.SelectAttr("Index")
	if attr == nil {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(attr.Value))
	if err != nil || n < 1 {
		return 0, false, fmt.Errorf("invalid ss:Index %q", attr.Value)
	}
	return n, true, nil
}

// innerText concatenates all character data below e. Rich-text cells wrap
// runs of text in html:Font and similar elements.
func innerText(e *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)
	return b.String()
}

// charsetReader decodes non-UTF-8 documents.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
