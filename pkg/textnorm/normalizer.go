package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TokenProfile selects which stoplists apply when tokenizing a course name.
type TokenProfile int

const (
	// ProfileSimilarity drops noise words, generic golf words, corporate
	// suffixes and purely numeric tokens. Used when comparing two names.
	ProfileSimilarity TokenProfile = iota
	// ProfileQuery drops only noise and generic golf words; numbers and
	// corporate suffixes may be meaningful search terms.
	ProfileQuery
	// ProfileNoise drops only noise words. Used for the relaxed
	// similarity fallback on short or generic names.
	ProfileNoise
)

var noiseWords = map[string]struct{}{
	"the": {}, "at": {}, "and": {}, "of": {}, "de": {}, "la": {}, "le": {},
}

var genericGolfWords = map[string]struct{}{
	"golf": {}, "course": {}, "club": {}, "gc": {}, "links": {}, "resort": {},
	"centre": {}, "center": {}, "country": {}, "cc": {},
}

var corporateSuffixes = map[string]struct{}{
	"ltd": {}, "limited": {},
}

// Normalize canonicalizes a free-text course name: diacritics stripped,
// lowercased, punctuation flattened to spaces, whitespace collapsed, and
// the standalone abbreviation "st" expanded to "saint".
func Normalize(name string) string {
	s := name
	// Chained transformers carry state, so build one per call.
	deaccenter := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(deaccenter, s); err == nil {
		s = out
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	for i, tok := range fields {
		if tok == "st" {
			fields[i] = "saint"
		}
	}
	return strings.Join(fields, " ")
}

// IsUnnamed reports whether a raw name carries no usable identity. Unnamed
// inputs are gated tighter and matched on distance alone.
func IsUnnamed(name string) bool {
	n := Normalize(name)
	return n == "" || n == "unnamed golf course" || strings.HasPrefix(n, "unnamed")
}

// Tokens normalizes a name and returns its tokens filtered by profile.
func Tokens(name string, profile TokenProfile) []string {
	var out []string
	for _, tok := range strings.Fields(Normalize(name)) {
		if dropToken(tok, profile) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TokenSet is Tokens as a set, for intersection/union arithmetic.
func TokenSet(name string, profile TokenProfile) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(name, profile) {
		set[tok] = struct{}{}
	}
	return set
}

func dropToken(tok string, profile TokenProfile) bool {
	if _, ok := noiseWords[tok]; ok {
		return true
	}
	if profile == ProfileNoise {
		return false
	}
	if _, ok := genericGolfWords[tok]; ok {
		return true
	}
	if profile == ProfileQuery {
		return false
	}
	if _, ok := corporateSuffixes[tok]; ok {
		return true
	}
	return isNumeric(tok)
}

func isNumeric(tok string) bool {
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return tok != ""
}
