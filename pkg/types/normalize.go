package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims surrounding whitespace and lower-cases s. Shopping items,
// suggestions and ingredient lines are compared in this form.
func Normalize(s string) string {
	return Lower(strings.TrimSpace(s))
}

// Lower lower-cases s with Unicode case folding, keeping whitespace.
func Lower(s string) string {
	// A Caser holds state, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// EqualFold reports whether a and b are equal after normalization.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
