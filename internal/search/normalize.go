// Package search implements station name resolution: query normalization,
// matching, ranking and result memoization.
package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFolds maps accented characters to their unaccented spelling.
var accentFolds = strings.NewReplacer(
	"Š", "S", "š", "s", "Ž", "Z", "ž", "z",
	"À", "A", "Á", "A", "Â", "A", "Ã", "A", "Ä", "A", "Å", "A", "Æ", "A",
	"Ç", "C", "È", "E", "É", "E", "Ê", "E", "Ë", "E",
	"Ì", "I", "Í", "I", "Î", "I", "Ï", "I", "Ñ", "N",
	"Ò", "O", "Ó", "O", "Ô", "O", "Õ", "O", "Ö", "O", "Ø", "O",
	"Ù", "U", "Ú", "U", "Û", "U", "Ü", "U", "Ý", "Y", "Þ", "Th", "ß", "Ss",
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a", "æ", "a",
	"ç", "c", "è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ð", "o", "ñ", "n",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u", "ý", "y", "ÿ", "y", "þ", "th",
	"œ", "oe", "Œ", "OE", "Đ", "Dj", "đ", "dj",
	"Č", "C", "č", "c", "Ć", "C", "ć", "c", "Ŕ", "R", "ŕ", "r",
)

// alias rewrites a known historical or abbreviated station name. Patterns
// run on lowercase, accent-folded, space-separated text.
type alias struct {
	pattern *regexp.Regexp
	replace string
}

var aliases = []alias{
	{regexp.MustCompile(`\bbrussel nat.*`), "brussels airport"},
	{regexp.MustCompile(`\bbrussels airport( zaventem)?\b`), "brussels airport"},
	{regexp.MustCompile(`\bl alleud\b`), "l'alleud"},
	{regexp.MustCompile(`\bcdg\b`), "charles de gaulle"},
	{regexp.MustCompile(`\bfrankfurt fl`), "frankfurt main fl"},
	{regexp.MustCompile(`\bbru\.`), "brussel"},
	{regexp.MustCompile(`\bbrux\.`), "bruxelles"},
	{regexp.MustCompile(`\bmaastricht randwijck\b`), "maastricht randwyck"},
}

var (
	parentheticals = regexp.MustCompile(`\s?\(.*?\)`)
	dashesSpaces   = regexp.MustCompile(`[-\s]+`)
	saintDot       = regexp.MustCompile(`(^|[-\s])st\.`)
)

// Normalize canonicalizes a station name or query into the form used for
// comparison. It is applied identically to queries and candidate names and
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	s := norm.NFC.String(raw)
	s = parentheticals.ReplaceAllString(s, "")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	// Lowercase first so capitals without a fold entry (ẞ) still reach the
	// table in their lowercase form.
	s = stripMarks(accentFolds.Replace(strings.ToLower(s)))
	for saintDot.MatchString(s) {
		s = saintDot.ReplaceAllString(s, "${1}st ")
	}

	tokens := dropInteriorAm(tokenize(s))
	s = strings.Join(tokens, " ")

	return strings.Join(tokenize(applyAliases(s)), " ")
}

// stripMarks removes combining marks the fold table does not cover. Chains
// carry state, so one is built per call.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		return out
	}
	return s
}

// applyAliases rewrites until no alias changes the text, so an alias whose
// output feeds another still normalizes in a single call.
func applyAliases(s string) string {
	for pass := 0; pass <= len(aliases); pass++ {
		before := s
		for _, a := range aliases {
			s = a.pattern.ReplaceAllString(s, a.replace)
		}
		if s == before {
			break
		}
	}
	return s
}

func tokenize(s string) []string {
	s = strings.TrimSpace(dashesSpaces.ReplaceAllString(s, " "))
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

// dropInteriorAm folds "Frankfurt am Main" onto "Frankfurt Main".
func dropInteriorAm(tokens []string) []string {
	out := tokens[:0]
	for i, t := range tokens {
		if t == "am" && i > 0 && i < len(tokens)-1 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// isSaint reports whether a normalized token denotes "Saint"/"Sint".
func isSaint(token string) bool {
	switch token {
	case "st", "sint", "saint":
		return true
	}
	return false
}
