package converter

import (
	"github.com/ginjaninja78/points-directory/internal/types"
	"github.com/ginjaninja78/points-directory/internal/validation"
)

// UnknownRegionPolicy decides where records with an unrecognized region go.
type UnknownRegionPolicy struct {
	// Bucket collapses every unrecognized region into one region labelled
	// BucketLabel. When false each unrecognized region keeps its own
	// capitalized label.
	Bucket      bool
	BucketLabel string
}

// Group files records into the directory in input order. Regions, cities
// and points keep their first-seen order; nothing is sorted.
//
// One RegionWarning is returned per distinct unrecognized region slug, in
// the order the regions were first seen.
func Group(records []types.PointRecord, policy UnknownRegionPolicy) (*types.Directory, []*validation.RegionWarning) {
	dir := types.NewDirectory()

	var warnings []*validation.RegionWarning
	seen := make(map[string]*validation.RegionWarning)

	for _, rec := range records {
		rk := rec.RegionKey()

		if !rk.Known() {
			s := rec.RegionSlug()
			w, ok := seen[s]
			if !ok {
				w = &validation.RegionWarning{Region: rec.Region, Slug: s, FirstRow: rec.Row}
				seen[s] = w
				warnings = append(warnings, w)
			}
			w.Records++

			if policy.Bucket {
				rk = types.RegionKey{Label: policy.BucketLabel}
			}
		}

		dir.Insert(rk, rec.CityKey(), rec)
	}

	return dir, warnings
}
