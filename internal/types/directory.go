package types

import "sort"

// =============================================================================
// DIRECTORY
// =============================================================================

// Directory is the two-level ordered mapping region -> city -> points.
//
// Regions appear in the order they were first inserted, cities within a
// region likewise, and points within a city in insertion order. The zero
// value is not usable; create one with NewDirectory.
type Directory struct {
	Regions []*RegionGroup

	index map[RegionKey]int
}

// RegionGroup is one region bucket.
type RegionGroup struct {
	Key    RegionKey
	Cities []*CityGroup

	index map[CityKey]int
}

// CityGroup is one city bucket.
type CityGroup struct {
	Key    CityKey
	Points []PointRecord
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{index: make(map[RegionKey]int)}
}

// Insert files p under the region rk and city ck. Missing buckets are
// created at the end of their list; existing ones are appended to.
func (d *Directory) Insert(rk RegionKey, ck CityKey, p PointRecord) {
	ri, ok := d.index[rk]
	if !ok {
		ri = len(d.Regions)
		d.index[rk] = ri
		d.Regions = append(d.Regions, &RegionGroup{Key: rk, index: make(map[CityKey]int)})
	}
	region := d.Regions[ri]

	ci, ok := region.index[ck]
	if !ok {
		ci = len(region.Cities)
		region.index[ck] = ci
		region.Cities = append(region.Cities, &CityGroup{Key: ck})
	}
	region.Cities[ci].Points = append(region.Cities[ci].Points, p)
}

// Region returns the bucket for rk, or nil.
func (d *Directory) Region(rk RegionKey) *RegionGroup {
	if i, ok := d.index[rk]; ok {
		return d.Regions[i]
	}
	return nil
}

// City returns the bucket for ck, or nil.
func (g *RegionGroup) City(ck CityKey) *CityGroup {
	if i, ok := g.index[ck]; ok {
		return g.Cities[i]
	}
	return nil
}

// PointCount is the number of points in the region.
func (g *RegionGroup) PointCount() int {
	n := 0
	for _, c := range g.Cities {
		n += len(c.Points)
	}
	return n
}

// CityCount is the number of city buckets across all regions.
func (d *Directory) CityCount() int {
	n := 0
	for _, r := range d.Regions {
		n += len(r.Cities)
	}
	return n
}

// PointCount is the number of points across all regions.
func (d *Directory) PointCount() int {
	n := 0
	for _, r := range d.Regions {
		n += r.PointCount()
	}
	return n
}

// Sorted returns a copy of the directory with regions ordered by label and
// cities by name using compare. Points keep their input order. The receiver
// is not modified.
func (d *Directory) Sorted(compare func(a, b string) int) *Directory {
	out := NewDirectory()
	out.Regions = make([]*RegionGroup, len(d.Regions))

	for i, r := range d.Regions {
		cities := make([]*CityGroup, len(r.Cities))
		for j, c := range r.Cities {
			cities[j] = &CityGroup{Key: c.Key, Points: append([]PointRecord(nil), c.Points...)}
		}
		sort.SliceStable(cities, func(a, b int) bool {
			return compare(cities[a].Key.Name, cities[b].Key.Name) < 0
		})
		out.Regions[i] = &RegionGroup{Key: r.Key, Cities: cities}
	}

	sort.SliceStable(out.Regions, func(a, b int) bool {
		return compare(out.Regions[a].Key.Label, out.Regions[b].Key.Label) < 0
	})

	for i, r := range out.Regions {
		out.index[r.Key] = i
		r.index = make(map[CityKey]int, len(r.Cities))
		for j, c := range r.Cities {
			r.index[c.Key] = j
		}
	}
	return out
}
