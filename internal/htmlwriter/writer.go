// =============================================================================
// Points Directory - HTML Writer
// =============================================================================
//
// Renders the grouped directory into the HTML page and persists it.
//
// TEMPLATE CONTRACT:
//   The template receives a Page. Page.States is the *types.Directory:
//
//     {{range .States.Regions}}           region buckets, first-seen order
//       {{.Key.ID}} {{.Key.Label}}        ID is empty for unknown regions
//       {{range .Cities}}                 city buckets
//         {{.Key.Name}} {{.Key.Slug}}
//         {{range .Points}}{{with view .}}  per-point projection
//           {{.Central}} {{.Phone}} ...
//
//   Helper functions: view, yesno, flagClass, regionAnchor, cityAnchor.
//   The anchor helpers return ids that are unique within the page.
//
// OUTPUT:
//   Render builds the complete document in memory. Write replaces the output
//   file atomically, so a failed run never leaves a partial page behind.
//
// =============================================================================

package htmlwriter

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ginjaninja78/points-directory/internal/slug"
	"github.com/ginjaninja78/points-directory/internal/types"
	"github.com/ginjaninja78/points-directory/internal/validation"
	"github.com/ginjaninja78/points-directory/pkg/utils"
)

//go:embed templates/points.html
var defaultTemplate string

// DefaultTemplateName is the name of the built-in template.
const DefaultTemplateName = "points.html"

// =============================================================================
// OPTIONS AND PAGE
// =============================================================================

// Options configures the writer.
type Options struct {
	// TemplateFile is an html/template file. Empty selects the built-in one.
	TemplateFile string
}

// Page is the value handed to the template.
type Page struct {
	// States is the grouped directory.
	States *types.Directory

	// GeneratedAt is the time the run started.
	GeneratedAt time.Time

	// RunID identifies the run that produced the page.
	RunID string
}

// =============================================================================
// WRITER
// =============================================================================

// Writer renders pages from a parsed template.
type Writer struct {
	tmpl *template.Template
}

// New parses the configured template.
func New(opts Options) (*Writer, error) {
	name, text := DefaultTemplateName, defaultTemplate

	if opts.TemplateFile != "" {
		data, err := os.ReadFile(opts.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read template: %w", validation.ErrIO, err)
		}
		name, text = filepath.Base(opts.TemplateFile), string(data)
	}

	tmpl, err := template.New(name).Funcs(Funcs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template: %w", validation.ErrTemplate, err)
	}

	return &Writer{tmpl: tmpl}, nil
}

// Render executes the template into memory. Anchors are assigned per page,
// so regionAnchor and cityAnchor never repeat an id within one document.
func (w *Writer) Render(page Page) ([]byte, error) {
	if page.States == nil {
		page.States = types.NewDirectory()
	}

	tmpl, err := w.tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to clone %s: %w", validation.ErrTemplate, w.tmpl.Name(), err)
	}
	a := newAnchors(page.States)
	tmpl.Funcs(template.FuncMap{
		"regionAnchor": a.region,
		"cityAnchor":   a.city,
	})

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("%w: failed to render %s: %w", validation.ErrTemplate, w.tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// Write replaces path with doc.
func Write(path string, doc []byte) error {
	if err := utils.WriteFileAtomic(path, doc, 0o644); err != nil {
		return fmt.Errorf("%w: %w", validation.ErrIO, err)
	}
	return nil
}

// =============================================================================
// TEMPLATE FUNCTIONS
// =============================================================================

// Funcs returns the helper functions available to page templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"view":         func(p types.PointRecord) types.PointView { return p.View() },
		"yesno":        yesNo,
		"flagClass":    flagClass,
		"regionAnchor": func(rk types.RegionKey) string { return rk.ID },
		"cityAnchor":   CityAnchor,
	}
}

func yesNo(b bool) string {
	if b {
		return "tak"
	}
	return "nie"
}

func flagClass(b bool) string {
	if b {
		return "flag-yes"
	}
	return "flag-no"
}

// CityAnchor is the element id of a city section. Cities in a known region
// are prefixed with the region id ("pl7-warszawa"); cities in an unknown
// region with "x-" and the region label slug ("x-bawaria-monachium").
func CityAnchor(rk types.RegionKey, ck types.CityKey) string {
	prefix := rk.ID
	if !rk.Known() {
		prefix = "x"
		if s := slug.Make(rk.Label); s != "" {
			prefix += "-" + s
		}
	}
	if ck.Slug == "" {
		return prefix
	}
	return prefix + "-" + ck.Slug
}

// anchors holds the element ids of one page. A region id repeats when two
// labels share a registry id ("Małopolskie", "Malopolskie"); a city id
// repeats when names differ only in case or accents. Repeats get "-2", "-3"
// in directory order.
type anchors struct {
	regions map[types.RegionKey]string
	cities  map[cityRef]string
}

type cityRef struct {
	region types.RegionKey
	city   types.CityKey
}

func newAnchors(dir *types.Directory) *anchors {
	a := &anchors{
		regions: make(map[types.RegionKey]string),
		cities:  make(map[cityRef]string),
	}
	used := make(map[string]int)
	unique := func(id string) string {
		used[id]++
		if n := used[id]; n > 1 {
			return fmt.Sprintf("%s-%d", id, n)
		}
		return id
	}

	for _, r := range dir.Regions {
		if r.Key.Known() {
			a.regions[r.Key] = unique(r.Key.ID)
		}
		for _, c := range r.Cities {
			a.cities[cityRef{r.Key, c.Key}] = unique(CityAnchor(r.Key, c.Key))
		}
	}
	return a
}

// region returns the section id of a region, empty for unknown regions.
func (a *anchors) region(rk types.RegionKey) string {
	return a.regions[rk]
}

func (a *anchors) city(rk types.RegionKey, ck types.CityKey) string {
	if id, ok := a.cities[cityRef{rk, ck}]; ok {
		return id
	}
	return CityAnchor(rk, ck)
}

// =============================================================================
// PRESENTATION ORDER
// =============================================================================

// PolishCompare returns a comparison function ordering strings by Polish
// collation (ą after a, ł after l, ...). For use with Directory.Sorted.
func PolishCompare() func(a, b string) int {
	c := collate.New(language.Polish)
	return c.CompareString
}
