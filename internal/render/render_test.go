package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/jsondiff"
)

func testContext(cfg check.Config) *check.WorkingContext {
	return &check.WorkingContext{
		Lib:    jsondiff.NewWorkingContext("file_a.json", "file_b.json", jsondiff.Config{}),
		Config: cfg,
	}
}

func allChecks() check.Config {
	return check.NewConfig(check.WithChecks(true, true, true, true), check.WithFiles("file_a.json", "file_b.json"))
}

func sample() check.DiffCollection {
	return check.DiffCollection{
		Keys:   []jsondiff.KeyDiff{{Key: "key1", Has: "file_a.json", Misses: "file_b.json"}},
		Types:  []jsondiff.TypeDiff{{Key: "t", Type1: "string", Type2: "number"}},
		Values: []jsondiff.ValueDiff{{Key: "v", Value1: `{"a":1}`, Value2: "plain"}},
		Arrays: []jsondiff.ArrayDiff{
			{Key: "arr", Descriptor: jsondiff.AHas, Value: "1"},
			{Key: "arr", Descriptor: jsondiff.BHas, Value: "2"},
		},
	}
}

func TestPrettify(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", Prettify(`{"a":1}`))
	assert.Equal(t, "not json", Prettify("not json"))
	assert.Equal(t, "", Prettify(""))
	assert.Equal(t, "1.50", Prettify("1.50"))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"aaa bb", "cc"}, wrapText("aaa bb cc", 6))
	assert.Equal(t, []string{"abcd", "ef"}, wrapText("abcdef", 4))
	assert.Equal(t, []string{"  indented"}, wrapText("  indented", 20))
	assert.Equal(t, []string{"x"}, wrapText("x", 0))
	assert.Equal(t, []string{"a  b\tc"}, wrapText("a  b\tc", 20))
	assert.Equal(t, []string{"ab ", "cd"}, wrapText("ab  cd", 3))
}

func TestValueTableKeepsWhitespace(t *testing.T) {
	d := check.DiffCollection{Values: []jsondiff.ValueDiff{{Key: "s", Value1: "a  b", Value2: "a b"}}}
	out := Table(check.Values, d, testContext(allChecks()), DefaultOptions())
	assert.Contains(t, out, "a  b")
	assert.Contains(t, out, "a b ")
}

func TestKeyRowsMarkOwningFile(t *testing.T) {
	rows := Rows(check.Keys, sample(), testContext(allChecks()), DefaultOptions())
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"key1", Checkmark, Multiply}, rows[0])
}

func TestArrayRowsPlaceValueOnItsSide(t *testing.T) {
	rows := Rows(check.Arrays, sample(), testContext(allChecks()), DefaultOptions())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"arr", "1", Multiply}, rows[0])
	assert.Equal(t, []string{"arr", Multiply, "2"}, rows[1])
}

func TestTableIncludesTitleAndFiles(t *testing.T) {
	out := Table(check.Values, sample(), testContext(allChecks()), DefaultOptions())
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "Value Differences"))
	assert.Contains(t, out, "file_a.json")
	assert.Contains(t, out, "file_b.json")
	assert.Contains(t, out, `"a": 1`)
	assert.Contains(t, out, "plain")
}

func TestTablesSkipsEmptyAndUnrendered(t *testing.T) {
	d := sample()
	d.Types = []jsondiff.TypeDiff{}
	cfg := check.NewConfig(check.WithChecks(true, true, true, true), check.WithRender(true, true, false, true))

	tables := Tables(d, testContext(cfg), DefaultOptions())
	require.Len(t, tables, 2)
	assert.Contains(t, tables[0], "Key Differences")
	assert.Contains(t, tables[1], "Array Differences")
	assert.Equal(t, "3 differences", Summary(d, testContext(cfg)))
}

func TestWriteNoDifferences(t *testing.T) {
	var buf bytes.Buffer
	d := check.DiffCollection{Keys: []jsondiff.KeyDiff{}}
	require.NoError(t, Write(&buf, d, testContext(allChecks()), DefaultOptions()))
	assert.Equal(t, "No differences found\n", buf.String())
}

func TestColumnWidthIsCapped(t *testing.T) {
	d := check.DiffCollection{Values: []jsondiff.ValueDiff{{Key: "k", Value1: strings.Repeat("x", 50), Value2: "y"}}}
	out := Table(check.Values, d, testContext(allChecks()), Options{MaxColumnWidth: 10})
	assert.NotContains(t, out, strings.Repeat("x", 11))
}

func TestMarkdownEscapesCells(t *testing.T) {
	d := check.DiffCollection{Values: []jsondiff.ValueDiff{{Key: "a|b", Value1: "x*y", Value2: "<b>"}}}
	md := Markdown(d, testContext(allChecks()))
	assert.Contains(t, md, "## Value Differences")
	assert.Contains(t, md, `a\|b`)
	assert.Contains(t, md, `x\*y`)
	assert.Contains(t, md, `\<b\>`)
}

func TestWriteHTMLFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "report", "out.html")
	require.NoError(t, WriteHTMLFile(p, sample(), testContext(allChecks())))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	html := string(b)
	assert.Contains(t, html, "<title>dtf: file_a.json vs file_b.json</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<h2>Key Differences</h2>")
	assert.Contains(t, html, Checkmark)
	assert.Contains(t, html, "5 differences")
}

func TestHTMLKeepsLineBreaksAndEscapesMarkup(t *testing.T) {
	d := check.DiffCollection{Values: []jsondiff.ValueDiff{{Key: "v", Value1: `{"a":1}`, Value2: "<b>x</b>"}}}
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, d, testContext(allChecks())))
	out := buf.String()
	assert.Contains(t, out, "{<br>")
	assert.Contains(t, out, "<br>}")
	assert.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
	assert.NotContains(t, out, "<b>x")
}
