// Package slugify derives URL slugs from titles.
// Functions here are safe for concurrent use.
package slugify

import (
	"crypto/rand"
	"errors"
	"strings"
	"unicode"
)

const (
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// MaxSlugLength bounds derived slugs; longer titles are truncated at
	// a word boundary where possible.
	MaxSlugLength = 80
)

// FromTitle derives a slug from a human-readable title: lowercase,
// non-alphanumeric runs collapsed to single hyphens, trimmed, truncated.
// Returns "" for titles with no usable characters.
func FromTitle(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
		if i := strings.LastIndexByte(slug, '-'); i > 0 {
			slug = slug[:i]
		}
	}
	return slug
}

// WithSuffix appends a random base62 suffix to slug, for retrying after
// a uniqueness conflict.
func WithSuffix(slug string, length int) (string, error) {
	if length <= 0 {
		return "", errors.New("suffix length must be positive")
	}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = base62Chars[int(b[i])%len(base62Chars)]
	}

	if slug == "" {
		return string(b), nil
	}
	return slug + "-" + string(b), nil
}
