package render

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Prettify re-indents s when it is valid JSON and returns it unchanged otherwise.
func Prettify(s string) string {
	if s == "" || !json.Valid([]byte(s)) {
		return s
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

// wrapText breaks every line of s so that no line exceeds width runes.
// Lines break at the last space that fits, or hard at width when there is
// none. Whitespace inside a line is kept as is.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		r := []rune(line)
		for len(r) > width {
			cut, next := width, width
			if i := breakAt(r[:width+1]); i > 0 {
				cut, next = i, i+1
			}
			out = append(out, string(r[:cut]))
			r = r[next:]
		}
		out = append(out, string(r))
	}
	return out
}

// breakAt returns the index of the last space in r that follows some
// non-space text, or -1.
func breakAt(r []rune) int {
	for i := len(r) - 1; i > 0; i-- {
		if r[i] == ' ' && strings.TrimSpace(string(r[:i])) != "" {
			return i
		}
	}
	return -1
}

// wrapCell is wrapText joined back into a single cell value.
func wrapCell(s string, width int) string {
	return strings.Join(wrapText(s, width), "\n")
}
