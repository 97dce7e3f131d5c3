// =============================================================================
// Points Directory - Slugs
// =============================================================================
//
// Turns display strings (city and region names) into ASCII, URL and file name
// safe identifiers:
//
//   "Łódź"                 -> "lodz"
//   "Kujawsko-Pomorskie"   -> "kujawsko-pomorskie"
//   "Bielsko  Biała (gm.)" -> "bielsko-biala-gm"
//
// Combining marks are removed after canonical decomposition. Letters that do
// not decompose (ł, ø, ß, ...) are mapped explicitly first.
//
// =============================================================================

package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// undecomposable covers lowercase letters with no canonical decomposition.
// Input is lowercased before this runs.
var undecomposable = strings.NewReplacer(
	"ł", "l",
	"đ", "d",
	"ø", "o",
	"ħ", "h",
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
)

// Make returns the slug of s. The result contains only [a-z0-9] separated by
// single hyphens, and Make(Make(s)) == Make(s).
func Make(s string) string {
	s = undecomposable.Replace(strings.ToLower(s))

	// transform.Chain is stateful, so one per call.
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Capitalize upper-cases the first letter of s and leaves the rest as is.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}

// CapitalizeLower upper-cases the first letter of s and lower-cases the rest,
// so "MAZOWIECKIE", "mazowieckie" and "Mazowieckie" all read "Mazowieckie".
func CapitalizeLower(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + cases.Lower(language.Polish).String(s[size:])
}
