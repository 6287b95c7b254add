package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/julianstephens/nocturne/internal/constants"
)

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(parts ...string) string {
	var b strings.Builder
	dash := false
	for _, part := range parts {
		for _, r := range strings.ToLower(part) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				if dash && b.Len() > 0 {
					b.WriteByte('-')
				}
				dash = false
				b.WriteRune(r)
				continue
			}
			dash = true
		}
		dash = true
	}
	return b.String()
}

// UniqueSlug builds a slug from parts and appends a short random suffix.
func UniqueSlug(parts ...string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:constants.SlugSuffixLen]
	base := Slugify(parts...)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
