package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/VoxDroid/dtf/internal/check"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"\r", "",
	"\n", "<br>",
)

// escapeCell escapes markdown in s. Line breaks become <br>, the only raw
// HTML a cell can carry since "<" is always escaped.
func escapeCell(s string) string {
	return markdownEscaper.Replace(s)
}

// Markdown renders the selected categories as GitHub-flavoured markdown tables.
func Markdown(d check.DiffCollection, wc *check.WorkingContext) string {
	fileA, fileB := wc.FileNames()
	var b strings.Builder
	fmt.Fprintf(&b, "# %s ↔ %s\n\n", escapeCell(fileA), escapeCell(fileB))
	opts := Options{}
	for _, cat := range check.Categories {
		if !wc.Config.Renders(cat) || d.Len(cat) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", cat.Title())
		fmt.Fprintf(&b, "| Key | %s | %s |\n|---|---|---|\n", escapeCell(fileA), escapeCell(fileB))
		for _, row := range Rows(cat, d, wc, opts) {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = escapeCell(c)
			}
			fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n", Summary(d, wc))
	return b.String()
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #999; padding: 4px 8px; vertical-align: top; font-family: monospace; white-space: pre-wrap; }
th { background: #eee; }
</style>
</head>
<body>
`

const pageTail = "</body>\n</html>\n"

// HTML writes a standalone HTML report of the result to w.
func HTML(w io.Writer, d check.DiffCollection, wc *check.WorkingContext) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(d, wc)), &body); err != nil {
		return fmt.Errorf("convert report: %w", err)
	}
	fileA, fileB := wc.FileNames()
	title := html.EscapeString(fmt.Sprintf("dtf: %s vs %s", fileA, fileB))
	if _, err := fmt.Fprintf(w, pageHead, title); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, pageTail)
	return err
}

// WriteHTMLFile writes the HTML report to path.
func WriteHTMLFile(path string, d check.DiffCollection, wc *check.WorkingContext) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := HTML(f, d, wc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
