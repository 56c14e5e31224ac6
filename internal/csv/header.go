package csv

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordChars  = regexp.MustCompile(`[^0-9A-Za-z_]`)
)

// CleanHeader normalizes one column name into an identifier-safe form:
// runs of whitespace become a single underscore, then every remaining
// non-word character is stripped. Names starting with a digit pass through
// unchanged; rewriting those is the caller's problem.
func CleanHeader(name string) string {
	return nonWordChars.ReplaceAllString(whitespaceRun.ReplaceAllString(name, "_"), "")
}

// normalizeName is the comparison form used during deduplication. It
// collapses whitespace to hyphens instead of underscores; the hyphens are
// then removed by the non-word strip. Kept separate from CleanHeader
// because downstream output depends on the two passes staying independent.
func normalizeName(name string) string {
	return nonWordChars.ReplaceAllString(whitespaceRun.ReplaceAllString(name, "-"), "")
}

// SanitizeHeader rewrites row 0 of t into cleaned, unique column names and
// returns t. Data rows are untouched.
//
// Deduplication is a forward scan per anchor: for each position i, every
// later position whose normalized form matches (case-insensitively) is
// renamed to the anchor's name plus a 1-based suffix. Later names are
// compared in their current state, so a name renamed by one anchor can be
// renamed again by a later one; the last match wins. That behavior looks
// accidental but existing consumers depend on the exact output, so it is
// preserved.
func SanitizeHeader(t Table) Table {
	if len(t) == 0 {
		return t
	}

	header := t[0]
	for i, name := range header {
		header[i] = CleanHeader(name)
	}

	for i := 0; i < len(header); i++ {
		suffix := 1
		for j := i + 1; j < len(header); j++ {
			if strings.EqualFold(normalizeName(header[j]), header[i]) {
				header[j] = header[i] + strconv.Itoa(suffix)
				suffix++
			}
		}
	}

	return t
}
