package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL slug: lowercase, accents stripped,
// runs of anything else collapsed to one hyphen, no leading or trailing
// hyphen. Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	lower := cases.Lower(language.Und).String(title)

	// The chain is stateful, so build one per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, lower)
	if err != nil {
		plain = lower
	}

	return strings.Trim(slugSeparators.ReplaceAllString(plain, "-"), "-")
}

// uniquePageSlug returns base, or base-2, base-3... when another page of the
// site already uses it. The page with exceptID is ignored.
func uniquePageSlug(pages []domain.Page, base, exceptID string) string {
	if base == "" {
		base = "page"
	}
	taken := make(map[string]bool, len(pages))
	for i := range pages {
		if pages[i].ID != exceptID {
			taken[pages[i].Slug] = true
		}
	}
	slug := base
	for n := 2; taken[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	return slug
}
