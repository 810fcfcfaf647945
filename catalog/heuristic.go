package catalog

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gyangroup/models"
	"gyangroup/store"
)

// NamePatternStore finds a category whose name matches any LIKE pattern.
type NamePatternStore interface {
	CategoryByNamePatterns(ctx context.Context, patterns []string) (*models.Category, error)
}

// NameHeuristic matches a slug against category names by trying spelling
// variants: singular forms and "&"/"and" swaps.
type NameHeuristic struct {
	Store NamePatternStore
}

func (h NameHeuristic) Match(ctx context.Context, slug string) (*models.Category, error) {
	candidates := Candidates(slug)
	if len(candidates) == 0 {
		return nil, nil
	}

	patterns := make([]string, len(candidates))
	for i, c := range candidates {
		patterns[i] = store.ContainsPattern(c)
	}

	category, err := h.Store.CategoryByNamePatterns(ctx, patterns)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	intermediatesRe = regexp.MustCompile(`(?i)\bintermediates\b`)
	ampersandRe     = regexp.MustCompile(`\s*&\s*`)
	andWordRe       = regexp.MustCompile(`(?i)\s+and\s+`)
)

// Candidates returns the distinct, non-empty lower-cased name spellings tried
// for slug, base form first.
func Candidates(slug string) []string {
	base := strings.ToLower(normalize(slug))
	if base == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = normalize(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	addForms := func(s string) {
		add(s)
		if strings.HasSuffix(s, "s") {
			add(strings.TrimSuffix(s, "s"))
		}
		if intermediatesRe.MatchString(s) {
			add(intermediatesRe.ReplaceAllString(s, "intermediate"))
		}
	}

	addForms(base)
	if strings.Contains(base, "&") {
		addForms(ampersandRe.ReplaceAllString(base, " and "))
	}
	if andWordRe.MatchString(base) {
		addForms(andWordRe.ReplaceAllString(base, " & "))
	}
	return out
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
