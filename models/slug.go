package models

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify converts a title or name to a URL-safe slug.
//
// Accents are folded ("Café" becomes "cafe"), "&" is spelled out as "and",
// runs of spaces, hyphens and underscores become a single hyphen and every
// other character is dropped.
//
//	Slugify("Pharma & API Intermediates") // "pharma-and-api-intermediates"
//	Slugify("H-Acid (98%)")               // "h-acid-98"
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, "&", " and ")

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '\t':
			pendingHyphen = true
		}
	}
	return b.String()
}

// IsSlug reports whether s is already in canonical slug form.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
