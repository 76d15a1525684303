// Package cleantext normalizes free-form text imported from dictionary and
// sentence-mining exports before it enters the card pipeline.
package cleantext

import (
	"regexp"
	"strings"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// entities are the four entities common in exported sentence fields
var entities = strings.NewReplacer(
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

// Clean strips markup tags, collapses whitespace runs to single spaces,
// trims the ends and decodes common HTML entities. Clean is idempotent:
// the result is a fixed point, so re-cleaning already cleaned text (for
// example when re-ingesting exported records) changes nothing.
func Clean(s string) string {
	for {
		next := cleanOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func cleanOnce(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return entities.Replace(s)
}

// FirstClause returns the first /-separated sense of a definition, trimmed.
// Definitions in the CC-CEDICT style pack several senses into one field;
// prompts and previews only want the leading one.
func FirstClause(s string) string {
	clause, _, _ := strings.Cut(s, "/")
	return strings.TrimSpace(clause)
}
