package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

var parenNumericCode = regexp.MustCompile(`\(\s*[#0-9][^)]*\)`)
var trailingCorporate = regexp.MustCompile(`(?i)[,\s]+(ltd\.?|limited)\s*$`)

// CleanCatalogName strips parenthesized numeric codes and corporate
// suffixes from a catalog-sourced course name, keeping its casing.
func CleanCatalogName(name string) string {
	s := parenNumericCode.ReplaceAllString(name, " ")
	s = trailingCorporate.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveDisplayName reconciles the original map-sourced name with the
// matched catalog name into one canonical display name. Names carrying
// fewer embedded digits (internal reference numbers) are preferred, then
// fewer tokens; a full tie keeps the original.
func ResolveDisplayName(original, catalogName string) string {
	cleaned := CleanCatalogName(catalogName)

	if IsUnnamed(original) {
		if cleaned != "" {
			return cleaned
		}
		return original
	}
	if cleaned == "" {
		return original
	}

	origDigits := digitCount(original)
	catDigits := digitCount(cleaned)
	if catDigits < origDigits {
		return cleaned
	}
	if origDigits < catDigits {
		return original
	}

	origTokens := len(strings.Fields(original))
	catTokens := len(strings.Fields(cleaned))
	if catTokens < origTokens {
		return cleaned
	}
	return original
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
