package xmlparser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ginjaninja78/points-directory/internal/types"
	"github.com/ginjaninja78/points-directory/internal/validation"
)

const workbookHead = `<?xml version="1.0"?>
<?mso-application progid="Excel.Sheet"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:o="urn:schemas-microsoft-com:office:office"
 xmlns:x="urn:schemas-microsoft-com:office:excel"
 xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:html="http://www.w3.org/TR/REC-html40">
`

const headerRow = `<Row>
 <Cell><Data ss:Type="String">Centrala</Data></Cell>
 <Cell><Data ss:Type="String">Nazwa</Data></Cell>
 <Cell><Data ss:Type="String">Ulica</Data></Cell>
 <Cell><Data ss:Type="String">Kod</Data></Cell>
 <Cell><Data ss:Type="String">Miasto</Data></Cell>
 <Cell><Data ss:Type="String">Województwo</Data></Cell>
 <Cell><Data ss:Type="String">Telefon</Data></Cell>
 <Cell><Data ss:Type="String">Email</Data></Cell>
 <Cell><Data ss:Type="String">Doładowanie</Data></Cell>
 <Cell><Data ss:Type="String">Sprzedaż</Data></Cell>
</Row>
`

func workbook(sheets ...string) string {
	return workbookHead + strings.Join(sheets, "\n") + "\n</Workbook>\n"
}

func worksheet(name string, rows ...string) string {
	return `<Worksheet ss:Name="` + name + `"><Table>` + strings.Join(rows, "\n") + `</Table></Worksheet>`
}

func values(row types.RawRow) []string {
	out := make([]string, 0, types.ColumnCount)
	for _, c := range row.Cells {
		if c.Present {
			out = append(out, c.Value)
		} else {
			out = append(out, "<absent>")
		}
	}
	return out
}

const fullRow = `<Row>
 <Cell><Data ss:Type="String">Centrala Warszawa</Data></Cell>
 <Cell><Data ss:Type="String">Kiosk Ruch</Data></Cell>
 <Cell><Data ss:Type="String">Marszałkowska 10</Data></Cell>
 <Cell><Data ss:Type="String">00-001</Data></Cell>
 <Cell><Data ss:Type="String">warszawa</Data></Cell>
 <Cell><Data ss:Type="String">mazowieckie</Data></Cell>
 <Cell><Data ss:Type="String">22 555 11 22</Data></Cell>
 <Cell><Data ss:Type="String">kiosk@example.pl</Data></Cell>
 <Cell><Data ss:Type="Number">1</Data></Cell>
 <Cell><Data ss:Type="Number">0</Data></Cell>
</Row>`

func TestParse(t *testing.T) {
	doc := workbook(worksheet("Punkty", headerRow, fullRow))

	sheet, err := Parse(strings.NewReader(doc), Options{HeaderRows: 1})
	require.NoError(t, err)

	assert.Equal(t, "Punkty", sheet.Name)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, 2, sheet.Rows[0].Number)
	assert.Equal(t, []string{
		"Centrala Warszawa", "Kiosk Ruch", "Marszałkowska 10", "00-001", "warszawa",
		"mazowieckie", "22 555 11 22", "kiosk@example.pl", "1", "0",
	}, values(sheet.Rows[0]))
}

func TestParseMissingDataNodes(t *testing.T) {
	row := `<Row>
 <Cell><Data ss:Type="String">C2</Data></Cell>
 <Cell><Data ss:Type="String">Sklep</Data></Cell>
 <Cell><Data ss:Type="String">Rynek 1</Data></Cell>
 <Cell><Data ss:Type="String">31-001</Data></Cell>
 <Cell><Data ss:Type="String">Kraków</Data></Cell>
 <Cell><Data ss:Type="String">malopolskie</Data></Cell>
 <Cell ss:StyleID="s21"/>
 <Cell><Data ss:Type="String"></Data></Cell>
 <Cell><Data ss:Type="Number">1</Data></Cell>
 <Cell><Data ss:Type="Number">1</Data></Cell>
</Row>`

	sheet, err := Parse(strings.NewReader(workbook(worksheet("Punkty", headerRow, row))), Options{HeaderRows: 1})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)

	cells := sheet.Rows[0].Cells
	assert.False(t, cells[types.ColPhone].Present, "cell without Data is absent")
	assert.True(t, cells[types.ColEmail].Present, "empty Data is present")
	assert.Equal(t, "", cells[types.ColEmail].Value)
}

func TestParseSparseRow(t *testing.T) {
	// phone (7) omitted, email written with ss:Index, street spans two
	// columns through MergeAcross
	row := `<Row ss:Index="5">
 <Cell><Data ss:Type="String">C3</Data></Cell>
 <Cell><Data ss:Type="String">Punkt</Data></Cell>
 <Cell ss:MergeAcross="1"><Data ss:Type="String">Długa 5</Data></Cell>
 <Cell><Data ss:Type="String">Gdańsk</Data></Cell>
 <Cell><Data ss:Type="String">pomorskie</Data></Cell>
 <Cell ss:Index="8"><Data ss:Type="String">p@example.pl</Data></Cell>
 <Cell><Data ss:Type="Number">0</Data></Cell>
 <Cell><Data ss:Type="Number">1</Data></Cell>
 <Cell><Data ss:Type="String">ignored eleventh column</Data></Cell>
</Row>`

	sheet, err := Parse(strings.NewReader(workbook(worksheet("Punkty", headerRow, row))), Options{HeaderRows: 1})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)

	assert.Equal(t, 5, sheet.Rows[0].Number)
	assert.Equal(t, []string{
		"C3", "Punkt", "Długa 5", "<absent>", "Gdańsk", "pomorskie",
		"<absent>", "p@example.pl", "0", "1",
	}, values(sheet.Rows[0]))
}

func TestParseShortRow(t *testing.T) {
	row := `<Row><Cell><Data ss:Type="String">C4</Data></Cell></Row>`

	sheet, err := Parse(strings.NewReader(workbook(worksheet("Punkty", headerRow, row))), Options{HeaderRows: 1})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.True(t, sheet.Rows[0].Cells[types.ColCentral].Present)
	assert.False(t, sheet.Rows[0].Cells[types.ColSalePoint].Present)
}

func TestParseBlankRowsAreKept(t *testing.T) {
	sheet, err := Parse(strings.NewReader(workbook(worksheet("Punkty", headerRow, fullRow, `<Row/>`))), Options{HeaderRows: 1})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	assert.True(t, sheet.Rows[1].IsBlank())
	assert.Equal(t, 3, sheet.Rows[1].Number)
}

func TestParseRichText(t *testing.T) {
	row := `<Row><Cell><ss:Data ss:Type="String" xmlns="http://www.w3.org/TR/REC-html40"><B>Centrala</B> <Font>Północ</Font></ss:Data></Cell></Row>`

	sheet, err := Parse(strings.NewReader(workbook(worksheet("Punkty", headerRow, row))), Options{HeaderRows: 1})
	require.NoError(t, err)
	assert.Equal(t, "Centrala Północ", sheet.Rows[0].Cells[types.ColCentral].Value)
}

func TestParseSheetSelection(t *testing.T) {
	other := `<Row><Cell><Data ss:Type="String">other</Data></Cell></Row>`
	doc := workbook(
		`<Worksheet ss:Name="Opis"></Worksheet>`,
		worksheet("Inne", other),
		worksheet("Punkty", headerRow, fullRow),
	)

	t.Run("first worksheet with a table", func(t *testing.T) {
		sheet, err := Parse(strings.NewReader(doc), Options{})
		require.NoError(t, err)
		assert.Equal(t, "Inne", sheet.Name)
		require.Len(t, sheet.Rows, 1)
		assert.Equal(t, "other", sheet.Rows[0].Cells[0].Value)
	})

	t.Run("named worksheet", func(t *testing.T) {
		sheet, err := Parse(strings.NewReader(doc), Options{SheetName: "Punkty", HeaderRows: 1})
		require.NoError(t, err)
		assert.Equal(t, "Punkty", sheet.Name)
		require.Len(t, sheet.Rows, 1)
	})

	t.Run("missing worksheet", func(t *testing.T) {
		_, err := Parse(strings.NewReader(doc), Options{SheetName: "Brak"})
		assert.ErrorIs(t, err, ErrNoTable)
	})

	t.Run("worksheet without table", func(t *testing.T) {
		_, err := Parse(strings.NewReader(doc), Options{SheetName: "Opis"})
		assert.ErrorIs(t, err, ErrNoTable)
	})
}

func TestParseBareTable(t *testing.T) {
	doc := `<Workbook><Table>` + headerRow + fullRow + `</Table></Workbook>`
	doc = strings.ReplaceAll(doc, "ss:Type", "Type")

	sheet, err := Parse(strings.NewReader(doc), Options{HeaderRows: 1})
	require.NoError(t, err)
	assert.Empty(t, sheet.Name)
	require.Len(t, sheet.Rows, 1)
}

func TestParseErrors(t *testing.T) {
	t.Run("not xml", func(t *testing.T) {
		_, err := Parse(strings.NewReader("Centrala;Nazwa"), Options{})
		require.Error(t, err)
	})

	t.Run("no table", func(t *testing.T) {
		_, err := Parse(strings.NewReader(workbook()), Options{})
		assert.ErrorIs(t, err, ErrNoTable)
	})

	t.Run("invalid cell index", func(t *testing.T) {
		row := `<Row><Cell ss:Index="zero"><Data ss:Type="String">x</Data></Cell></Row>`
		_, err := Parse(strings.NewReader(workbook(worksheet("Punkty", headerRow, row))), Options{HeaderRows: 1})
		assert.ErrorIs(t, err, validation.ErrMalformedRow)
	})

	t.Run("backwards cell index", func(t *testing.T) {
		row := `<Row><Cell><Data ss:Type="String">a</Data></Cell><Cell><Data ss:Type="String">b</Data></Cell><Cell ss:Index="1"><Data ss:Type="String">c</Data></Cell></Row>`
		_, err := Parse(strings.NewReader(workbook(worksheet("Punkty", headerRow, row))), Options{HeaderRows: 1})
		var rowErr *validation.RowError
		require.ErrorAs(t, err, &rowErr)
		assert.Equal(t, 2, rowErr.Row)
	})
}

func TestParseWindows1250(t *testing.T) {
	doc := strings.Replace(workbook(worksheet("Punkty", headerRow, fullRow)),
		`<?xml version="1.0"?>`, `<?xml version="1.0" encoding="windows-1250"?>`, 1)

	encoded, err := charmap.Windows1250.NewEncoder().String(doc)
	require.NoError(t, err)

	sheet, err := Parse(bytes.NewReader([]byte(encoded)), Options{HeaderRows: 1})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Marszałkowska 10", sheet.Rows[0].Cells[types.ColStreet].Value)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "punkty.xml")
	require.NoError(t, os.WriteFile(path, []byte(workbook(worksheet("Punkty", headerRow, fullRow))), 0o644))

	sheet, err := ParseFile(path, Options{HeaderRows: 1})
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.xml"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
