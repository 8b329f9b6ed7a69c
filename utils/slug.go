package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and drops anything that is not
// plain ASCII, so "Éxample" folds to "Example" before slugging.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Slugify turns a human-readable string into a URL-safe slug: lowercase,
// separator runs collapsed to single hyphens, everything else stripped.
// With dnsSafe, underscores fold into hyphens as well, leaving only
// [a-z0-9-]. Idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(text string, dnsSafe bool) string {
	if folded, _, err := transform.String(asciiFold, text); err == nil {
		text = folded
	}

	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r == '_', r == '-',
			unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	slug := strings.TrimSpace(b.String())
	slug = collapse(slug, func(r rune) bool { return r == '-' || unicode.IsSpace(r) })
	if dnsSafe {
		slug = collapse(slug, func(r rune) bool { return r == '-' || r == '_' })
	}
	return slug
}

// collapse replaces every run of separator runes with a single hyphen.
func collapse(s string, isSep func(rune) bool) string {
	var b strings.Builder
	inRun := false
	for _, r := range s {
		if isSep(r) {
			inRun = true
			continue
		}
		if inRun {
			b.WriteByte('-')
			inRun = false
		}
		b.WriteRune(r)
	}
	if inRun {
		b.WriteByte('-')
	}
	return b.String()
}
