package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/security"
)

func TestRootWithoutInputShowsHelp(t *testing.T) {
	setupTempDB(t)
	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCheckRendersSelectedCategories(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	out, err := runCLI(t, "-k", "-v", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "Key Differences")
	assert.Contains(t, out, "Value Differences")
	assert.NotContains(t, out, "Type Differences")
	assert.Contains(t, out, "only_a")
	assert.Contains(t, out, "2 differences")

	checks := recordedChecks(t)
	require.Len(t, checks, 1)
	assert.Equal(t, a, checks[0].FileA)
	assert.Equal(t, 1, checks[0].KeyCount)
	assert.Equal(t, 1, checks[0].ValueCount)
}

func TestCheckFilesFlag(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	out, err := runCLI(t, "-c", a+","+b, "-t", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "Type Differences")
	assert.Contains(t, out, "string")
	assert.Contains(t, out, "number")
	assert.Empty(t, recordedChecks(t))
}

func TestCheckInputErrors(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)

	_, err := runCLI(t, a, b)
	assert.ErrorIs(t, err, check.ErrNoChecks)

	_, err = runCLI(t, "-k", a)
	assert.Error(t, err)

	_, err = runCLI(t, "-k", "-c", a+","+b, a, b)
	assert.Error(t, err)

	_, err = runCLI(t, "-k", "-r", "saved.json", a, b)
	assert.ErrorIs(t, err, check.ErrConflictingInput)

	_, err = runCLI(t, "-k", "--label", strings.Repeat("x", 100), a, b)
	assert.Error(t, err)

	_, err = runCLI(t, "-k", a, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't read file")
}

func TestWriteThenReadSavedResult(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	saved := filepath.Join(t.TempDir(), "result.json")

	out, err := runCLI(t, "-k", "-t", "-v", "-a", a, b, "-w", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote result to "+saved)
	assert.NotContains(t, out, "Key Differences")

	out, err = runCLI(t, "-r", saved, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Value Differences")
	assert.NotContains(t, out, "Key Differences")

	out, err = runCLI(t, "-r", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "Key Differences")
	assert.Contains(t, out, "Array Differences")

	// re-rendering a saved result does not add to history
	assert.Len(t, recordedChecks(t), 1)
}

func TestArraySameOrderReportsIndexedValues(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	out, err := runCLI(t, "-v", "-a", "-o", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "tags[1]")
	assert.NotContains(t, out, "Array Differences")
}

func TestHTMLReport(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	report := filepath.Join(t.TempDir(), "report.html")
	out, err := runCLI(t, "-k", "-v", "--html", report, a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote report to")

	body, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<h2>Key Differences</h2>")
}

func TestExitCode(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	_, err := runCLI(t, "-k", "--exit-code", a, b)
	assert.True(t, errors.Is(err, ErrDifferencesFound))

	_, err = runCLI(t, "-k", "--exit-code", a, a)
	assert.NoError(t, err)
}

func TestIdenticalFiles(t *testing.T) {
	setupTempDB(t)
	a, _ := sampleFiles(t)
	out, err := runCLI(t, "-k", "-t", "-v", "-a", a, a)
	require.NoError(t, err)
	assert.Equal(t, "No differences found\n", out)
}

func TestSettingsDisableHistory(t *testing.T) {
	home := setupTempDB(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.yaml"), []byte("history: false\n"), 0o644))
	a, b := sampleFiles(t)
	_, err := runCLI(t, "-k", a, b)
	require.NoError(t, err)
	assert.Empty(t, recordedChecks(t))
}

func TestInvalidLogLevel(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	_, err := runCLI(t, "-k", "--log-level", "loud", a, b)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	setupTempDB(t)
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dtf "))
}

func TestOutputMayNotOverwriteInput(t *testing.T) {
	setupTempDB(t)
	a, b := sampleFiles(t)
	_, err := runCLI(t, "-k", a, b, "-w", a)
	assert.ErrorIs(t, err, security.ErrOverwritesInput)

	_, err = runCLI(t, "-k", a, b, "--html", b)
	assert.ErrorIs(t, err, security.ErrOverwritesInput)
}
