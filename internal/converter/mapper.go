// =============================================================================
// Points Directory - Record Mapper
// =============================================================================
//
// Turns one positional RawRow into a PointRecord.
//
// FIELD RULES:
//   | Column | Field       | Required | Conversion                        |
//   |--------|-------------|----------|-----------------------------------|
//   | 1      | central     | yes      | trimmed                           |
//   | 2      | name        | yes      | trimmed                           |
//   | 3      | street      | yes      | trimmed                           |
//   | 4      | postal code | yes      | trimmed                           |
//   | 5      | city        | yes      | trimmed, first letter capitalized |
//   | 6      | region      | yes      | trimmed                           |
//   | 7      | phone       | no       | trimmed, nil when absent          |
//   | 8      | email       | no       | trimmed, nil when absent          |
//   | 9      | payment     | yes      | integer, non-zero means true      |
//   | 10     | sale point  | yes      | integer, non-zero means true      |
//
// "Required" means the cell must have a data node. An empty data node is
// accepted and yields an empty string.
//
// =============================================================================

package converter

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/points-directory/internal/slug"
	"github.com/ginjaninja78/points-directory/internal/types"
	"github.com/ginjaninja78/points-directory/internal/validation"
)

// MapRow maps a raw row to a point record.
//
// RETURNS:
//   - The record, or a *validation.RowError naming the first offending
//     column. RowError unwraps to validation.ErrMalformedRow.
func MapRow(row types.RawRow) (types.PointRecord, error) {
	m := rowMapper{row: row}

	rec := types.PointRecord{
		Central:        m.required(types.ColCentral),
		Name:           m.required(types.ColName),
		Street:         m.required(types.ColStreet),
		PostalCode:     m.required(types.ColPostalCode),
		City:           slug.Capitalize(m.required(types.ColCity)),
		Region:         m.required(types.ColRegion),
		Phone:          m.optional(types.ColPhone),
		Email:          m.optional(types.ColEmail),
		AcceptsPayment: m.flag(types.ColPayment),
		IsSalePoint:    m.flag(types.ColSalePoint),
		Row:            row.Number,
	}

	if m.err != nil {
		return types.PointRecord{}, m.err
	}
	return rec, nil
}

// rowMapper keeps the first error so MapRow reads as a single literal.
type rowMapper struct {
	row types.RawRow
	err *validation.RowError
}

func (m *rowMapper) fail(col int, value, msg string) {
	if m.err != nil {
		return
	}
	m.err = &validation.RowError{
		Row:     m.row.Number,
		Column:  col + 1,
		Field:   types.ColumnNames[col],
		Value:   value,
		Message: msg,
	}
}

func (m *rowMapper) required(col int) string {
	cell := m.row.Cells[col]
	if !cell.Present {
		m.fail(col, "", "required value is missing")
		return ""
	}
	return strings.TrimSpace(cell.Value)
}

func (m *rowMapper) optional(col int) *string {
	cell := m.row.Cells[col]
	if !cell.Present {
		return nil
	}
	v := strings.TrimSpace(cell.Value)
	return &v
}

func (m *rowMapper) flag(col int) bool {
	cell := m.row.Cells[col]
	if !cell.Present {
		m.fail(col, "", "required value is missing")
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(cell.Value))
	if err != nil {
		m.fail(col, cell.Value, "expected an integer")
		return false
	}
	return n != 0
}
