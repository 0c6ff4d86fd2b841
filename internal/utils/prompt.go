// Package utils provides small interactive helpers for the CLI.
package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt writes msg to w and reads one trimmed line from r.
func Prompt(r *bufio.Reader, w io.Writer, msg string) (string, error) {
	_, _ = fmt.Fprint(w, msg)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks msg as a yes/no question. Anything but y or yes, including
// a closed input, is a no.
func Confirm(r *bufio.Reader, w io.Writer, msg string) bool {
	resp, err := Prompt(r, w, msg+" [y/N]: ")
	if err != nil {
		return false
	}
	resp = strings.ToLower(resp)
	return resp == "y" || resp == "yes"
}
