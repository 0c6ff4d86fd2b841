// Package nameutil validates the free-form labels attached to recorded checks.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLen is the longest accepted label, in runes.
const MaxLabelLen = 64

// ValidateLabel checks whether label is acceptable. It does NOT mutate the
// input; use SanitizeLabel to strip undesirable characters first.
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("invalid label: label cannot be empty")
	}
	if !utf8.ValidString(label) {
		return fmt.Errorf("invalid label: contains invalid encoding")
	}
	if n := utf8.RuneCountInString(label); n > MaxLabelLen {
		return fmt.Errorf("invalid label: %d characters, at most %d allowed", n, MaxLabelLen)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid label: contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// SanitizeLabel removes control and zero-width characters (as introduced by
// copy/paste) and trims surrounding whitespace. The boolean reports whether
// anything changed.
func SanitizeLabel(label string) (string, bool) {
	if label == "" {
		return label, false
	}
	out := make([]rune, 0, len(label))
	for _, r := range label {
		if unicode.IsControl(r) {
			continue
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			continue
		}
		out = append(out, r)
	}
	res := strings.TrimSpace(string(out))
	return res, res != label
}
