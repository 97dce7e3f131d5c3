// =============================================================================
// Points Directory - Shared Types
// =============================================================================
//
// Types shared by the readers, the converter and the HTML writer:
//   - Cell / RawRow : the positional ten-column row both readers produce
//   - PointRecord   : one normalized top-up point
//   - Directory     : the ordered region -> city -> points structure
//
// =============================================================================

package types

import (
	"github.com/ginjaninja78/points-directory/internal/regions"
	"github.com/ginjaninja78/points-directory/internal/slug"
)

// =============================================================================
// RAW ROWS
// =============================================================================

// Column positions in the input sheet. The order is a contract with the
// export and must not change.
const (
	ColCentral = iota
	ColName
	ColStreet
	ColPostalCode
	ColCity
	ColRegion
	ColPhone
	ColEmail
	ColPayment
	ColSalePoint

	// ColumnCount is the number of columns a row carries.
	ColumnCount
)

// ColumnNames maps a column position to the field name used in errors.
var ColumnNames = [ColumnCount]string{
	"central",
	"name",
	"street",
	"postal code",
	"city",
	"region",
	"phone",
	"email",
	"payment",
	"sale point",
}

// Cell is one cell of a raw row.
type Cell struct {
	// Value is the literal text of the cell's data node.
	Value string

	// Present is true when the cell had a data node at all. A present but
	// empty data node has Present == true and Value == "".
	Present bool
}

// RawRow is a single data row as read from the sheet.
type RawRow struct {
	// Number is the 1-based row number in the sheet, header rows included.
	Number int

	// Cells holds the ten columns in fixed order. Cells beyond the end of a
	// short source row are zero (not present).
	Cells [ColumnCount]Cell
}

// IsBlank reports whether no cell of the row has a data node.
func (r RawRow) IsBlank() bool {
	for _, c := range r.Cells {
		if c.Present {
			return false
		}
	}
	return true
}

// Sheet is the parsed content of one worksheet.
type Sheet struct {
	// Name is the worksheet name, empty when the source has none.
	Name string

	// Rows holds the data rows in sheet order, header rows excluded.
	// Blank rows are included; callers decide what to do with them.
	Rows []RawRow
}

// =============================================================================
// POINT RECORDS
// =============================================================================

// PointRecord is a normalized top-up point. It is built once by the mapper
// and never modified afterwards.
type PointRecord struct {
	Central    string
	Name       string
	Street     string
	PostalCode string

	// City is stored capitalized.
	City string

	// Region is the region name as given in the input, trimmed.
	Region string

	// Phone and Email are nil when the source cell had no data node.
	Phone *string
	Email *string

	AcceptsPayment bool
	IsSalePoint    bool

	// Row is the source row number, kept for diagnostics.
	Row int
}

// RegionKey identifies a region bucket in the directory.
type RegionKey struct {
	// ID is the registry identifier, empty when the region is unrecognized.
	ID string

	// Label is the display name of the region.
	Label string
}

// Known reports whether the region has a registry identifier.
func (k RegionKey) Known() bool { return k.ID != "" }

// CityKey identifies a city bucket within a region.
type CityKey struct {
	Name string
	Slug string
}

func (p PointRecord) CitySlug() string   { return slug.Make(p.City) }
func (p PointRecord) RegionSlug() string { return slug.Make(p.Region) }

// RegionID looks the region up in the registry.
func (p PointRecord) RegionID() (string, bool) {
	return regions.Lookup(p.RegionSlug())
}

// RegionLabel is the region name with only its first letter upper-case, so
// spellings differing in case share one label.
func (p PointRecord) RegionLabel() string { return slug.CapitalizeLower(p.Region) }

// RegionKey derives the region bucket key from the record's own fields.
func (p PointRecord) RegionKey() RegionKey {
	id, _ := p.RegionID()
	return RegionKey{ID: id, Label: p.RegionLabel()}
}

// CityKey derives the city bucket key from the record's own fields.
func (p PointRecord) CityKey() CityKey {
	return CityKey{Name: p.City, Slug: p.CitySlug()}
}

// =============================================================================
// PROJECTION
// =============================================================================

// PointView is the per-point projection handed to templates and JSON dumps.
// Region and city are carried by the nesting, not repeated here.
type PointView struct {
	Central    string  `json:"centrala"`
	Name       string  `json:"nom"`
	Street     string  `json:"ulica"`
	PostalCode string  `json:"kod"`
	Phone      *string `json:"telefon"`
	Email      *string `json:"email"`
	Payment    bool    `json:"doladowanie"`
	SalePoint  bool    `json:"sprzedaz"`
}

// View returns the projection of the record.
func (p PointRecord) View() PointView {
	return PointView{
		Central:    p.Central,
		Name:       p.Name,
		Street:     p.Street,
		PostalCode: p.PostalCode,
		Phone:      p.Phone,
		Email:      p.Email,
		Payment:    p.AcceptsPayment,
		SalePoint:  p.IsSalePoint,
	}
}
