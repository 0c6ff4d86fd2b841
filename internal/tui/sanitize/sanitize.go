// Package sanitize makes document text safe to draw inside the TUI. JSON
// strings may carry raw escape sequences; anything that could move the cursor
// or change terminal state is removed before a value reaches the screen.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	oscRe = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)?`)
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
)

// Cell removes escape sequences and control characters from s. Newlines and
// tabs survive; CRLF and lone CR become LF.
func Cell(s string) string {
	out := strings.ReplaceAll(s, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = oscRe.ReplaceAllString(out, "")
	out = csiRe.ReplaceAllString(out, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
			return -1
		}
		return r
	}, out)
}

// Line is Cell with newlines and tabs collapsed to spaces, for single-line
// table cells.
func Line(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(Cell(s), "\t", " ")), " ")
}
