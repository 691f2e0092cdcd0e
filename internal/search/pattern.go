package search

import (
	"regexp"
	"strings"
)

const saintPattern = "(?:saint|st|sint)"

// queryPattern is a compiled normalized query.
type queryPattern struct {
	exact   *regexp.Regexp
	partial *regexp.Regexp
}

// compilePattern turns a normalized query into anchored and unanchored
// matchers. Tokens are matched literally except the saint token, which
// matches any of its spellings.
func compilePattern(normalized string) queryPattern {
	tokens := strings.Fields(normalized)
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		if isSaint(t) {
			parts[i] = saintPattern
		} else {
			parts[i] = regexp.QuoteMeta(t)
		}
	}
	body := strings.Join(parts, " ")

	return queryPattern{
		exact:   regexp.MustCompile("^(?:" + body + ")$"),
		partial: regexp.MustCompile(body),
	}
}

// candidateForms returns a normalized name and, when it contains an
// apostrophe, the variant with apostrophes read as spaces.
func candidateForms(name string) []string {
	n := Normalize(name)
	if !strings.Contains(n, "'") {
		return []string{n}
	}
	return []string{n, strings.Join(tokenize(strings.ReplaceAll(n, "'", " ")), " ")}
}

func (p queryPattern) isExact(forms []string) bool {
	for _, f := range forms {
		if p.exact.MatchString(f) {
			return true
		}
	}
	return false
}

func (p queryPattern) isPartial(forms []string) bool {
	for _, f := range forms {
		if p.partial.MatchString(f) {
			return true
		}
	}
	return false
}
