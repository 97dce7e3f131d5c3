// =============================================================================
// Points Directory - Region Registry
// =============================================================================
//
// Static mapping from a voivodeship slug to the stable identifier used by the
// page template for anchors and map links (pl1 .. pl16). The set is closed:
// it is not configurable and unknown slugs simply have no identifier.
//
// =============================================================================

package regions

// registry lists every voivodeship in identifier order.
var registry = []struct {
	slug string
	id   string
}{
	{"dolnoslaskie", "pl1"},
	{"kujawsko-pomorskie", "pl2"},
	{"lubelskie", "pl3"},
	{"lubuskie", "pl4"},
	{"lodzkie", "pl5"},
	{"malopolskie", "pl6"},
	{"mazowieckie", "pl7"},
	{"opolskie", "pl8"},
	{"podkarpackie", "pl9"},
	{"podlaskie", "pl10"},
	{"pomorskie", "pl11"},
	{"slaskie", "pl12"},
	{"swietokrzyskie", "pl13"},
	{"warminsko-mazurskie", "pl14"},
	{"wielkopolskie", "pl15"},
	{"zachodniopomorskie", "pl16"},
}

var bySlug = func() map[string]string {
	m := make(map[string]string, len(registry))
	for _, r := range registry {
		m[r.slug] = r.id
	}
	return m
}()

// Lookup returns the region identifier for a slug produced by slug.Make.
// The second return value is false when the slug is not a known voivodeship.
func Lookup(slug string) (string, bool) {
	id, ok := bySlug[slug]
	return id, ok
}

// Slugs returns the known slugs in identifier order.
func Slugs() []string {
	out := make([]string, len(registry))
	for i, r := range registry {
		out[i] = r.slug
	}
	return out
}

// Len is the number of known regions.
func Len() int {
	return len(registry)
}
