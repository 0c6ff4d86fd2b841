package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/dtf/internal/jsondiff"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no input", NewConfig(WithChecks(true, false, false, false)), ErrNoInput},
		{"one file", NewConfig(WithChecks(true, false, false, false), WithFiles("a", "")), ErrNoInput},
		{"no checks", NewConfig(WithFiles("a", "b")), ErrNoChecks},
		{"conflict", NewConfig(WithChecks(true, false, false, false), WithFiles("a", "b"), WithSavedResult("s")), ErrConflictingInput},
		{"saved without checks", NewConfig(WithSavedResult("s")), nil},
		{"files", NewConfig(WithChecks(false, false, true, false), WithFiles("a", "b")), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewConfigRendersWhatIsChecked(t *testing.T) {
	c := NewConfig(WithChecks(true, false, true, false))
	assert.True(t, c.Renders(Keys))
	assert.False(t, c.Renders(Types))
	assert.True(t, c.Renders(Values))

	c = NewConfig(WithChecks(true, true, true, true), WithRender(false, true, false, false))
	assert.False(t, c.Renders(Keys))
	assert.True(t, c.Renders(Types))
}

func TestRunFreshCheck(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"x": 1, "only_a": true, "arr": [1, 2]}`)
	b := writeFile(t, dir, "b.json", `{"x": 2, "arr": [2, 3]}`)

	wc, err := NewWorkingContext(NewConfig(WithChecks(true, false, true, false), WithFiles(a, b)))
	require.NoError(t, err)

	d, err := Run(context.Background(), wc)
	require.NoError(t, err)
	assert.Equal(t, []jsondiff.KeyDiff{{Key: "only_a", Has: a, Misses: b}}, d.Keys)
	assert.Equal(t, []jsondiff.ValueDiff{{Key: "x", Value1: "1", Value2: "2"}}, d.Values)
	assert.Nil(t, d.Types)
	assert.Nil(t, d.Arrays)
	assert.True(t, d.HasDifferences())
	assert.Equal(t, 2, d.Count())
}

func TestRunCheckedButIdenticalIsEmptyNotNil(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"x": 1}`)
	b := writeFile(t, dir, "b.json", `{"x": 1}`)
	wc, err := NewWorkingContext(NewConfig(WithChecks(true, true, true, true), WithFiles(a, b)))
	require.NoError(t, err)

	d, err := Run(context.Background(), wc)
	require.NoError(t, err)
	assert.NotNil(t, d.Keys)
	assert.Empty(t, d.Keys)
	assert.False(t, d.HasDifferences())
}

func TestRunReportsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"x": 1}`)
	wc, err := NewWorkingContext(NewConfig(WithChecks(true, false, false, false), WithFiles(a, filepath.Join(dir, "missing.json"))))
	require.NoError(t, err)

	_, err = Run(context.Background(), wc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestWriteAndReadSavedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"arr": [1], "t": "s"}`)
	b := writeFile(t, dir, "b.json", `{"arr": [2], "t": 1}`)
	out := filepath.Join(dir, "out", "saved.json")

	wc, err := NewWorkingContext(NewConfig(WithChecks(false, true, false, true), WithFiles(a, b), WithOutputFile(out)))
	require.NoError(t, err)
	d, err := Run(context.Background(), wc)
	require.NoError(t, err)
	require.NoError(t, WriteSaved(d, wc))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"check_for_type_diffs": true`)
	assert.Contains(t, string(raw), `"descriptor": "AHas"`)
	assert.Contains(t, string(raw), `"key_diff": []`)

	// reading back re-uses the saved checks and files, not the caller's
	loaded, err := NewWorkingContext(NewConfig(WithSavedResult(out)))
	require.NoError(t, err)
	require.NotNil(t, loaded.Saved)
	fa, fb := loaded.FileNames()
	assert.Equal(t, a, fa)
	assert.Equal(t, b, fb)
	assert.False(t, loaded.Config.CheckKeys)
	assert.True(t, loaded.Config.RenderTypes)
	assert.True(t, loaded.Config.RenderArrays)
	assert.False(t, loaded.Config.RenderKeys)

	got, err := Run(context.Background(), loaded)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestFromSavedRespectsRenderSelection(t *testing.T) {
	saved := &SavedContext{Config: SavedConfig{CheckForKeyDiffs: true, CheckForValueDiffs: true, FileA: "a", FileB: "b"}}
	wc := FromSaved(saved, NewConfig(WithSavedResult("s"), WithRender(false, true, true, false)))
	assert.False(t, wc.Config.RenderKeys)
	assert.False(t, wc.Config.RenderTypes, "types were never checked")
	assert.True(t, wc.Config.RenderValues)
}

func TestWriteSavedWithoutDestination(t *testing.T) {
	wc := &WorkingContext{Config: NewConfig()}
	assert.ErrorIs(t, WriteSaved(DiffCollection{}, wc), ErrNoOutput)
}

func TestReadSavedOriginalFormat(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "saved.json", `{"key_diff":[{"key":"k","has":"a.json","misses":"b.json"}],"type_diff":[],"value_diff":[],"array_diff":[{"key":"arr","descriptor":"BHas","value":"5"}],"config":{"check_for_key_diffs":true,"check_for_type_diffs":false,"check_for_value_diffs":false,"check_for_array_diffs":true,"file_a":"a.json","file_b":"b.json","array_same_order":false}}`)

	s, err := ReadSaved(p)
	require.NoError(t, err)
	d := s.Collection()
	assert.Len(t, d.Keys, 1)
	assert.Nil(t, d.Types)
	require.Len(t, d.Arrays, 1)
	assert.Equal(t, jsondiff.BHas, d.Arrays[0].Descriptor)
}
