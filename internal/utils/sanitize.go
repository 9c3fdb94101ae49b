// Package utils carries the small shared helpers: corpus sanitization, TOML
// handling, filesystem checks, and display formatting.
package utils

import (
	"strings"
	"unicode"
)

// Sanitize lowers a raw corpus line to letters, digits and spaces. Every
// other rune is dropped. Numbers are deliberately kept.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// HasContent reports whether s contains at least one non-space rune.
func HasContent(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r != ' ' })
}

// IsRepetitive reports a string that is one byte repeated three or more
// times ("aaa", "wwww"), which never makes a useful query.
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// IsValidQuery filters interactive input: the prefix must sanitize to
// something with content and not be a repeated-rune run.
func IsValidQuery(s string) bool {
	if !HasContent(Sanitize(s)) {
		return false
	}
	return !IsRepetitive(s)
}
