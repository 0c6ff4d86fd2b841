package jsondiff

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"n": 12345678901234567890, "s": "x"}`), 0o644))

	m, err := ReadJSONFile(p)
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), m["n"])
	assert.Equal(t, "x", m["s"])
}

func TestReadJSONFile_Missing(t *testing.T) {
	_, err := ReadJSONFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_RejectsNonObjectRoot(t *testing.T) {
	_, err := DecodeBytes([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestDecode_RejectsTrailingData(t *testing.T) {
	_, err := DecodeBytes([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)

	_, err = DecodeBytes([]byte("{\"a\": 1}\n\n"))
	assert.NoError(t, err)
}

func TestArrayDiffDesc_JSON(t *testing.T) {
	b, err := json.Marshal(ArrayDiff{Key: "k", Descriptor: BMisses, Value: "1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key": "k", "descriptor": "BMisses", "value": "1"}`, string(b))

	var d ArrayDiff
	require.NoError(t, json.Unmarshal([]byte(`{"key": "k", "descriptor": "AHas", "value": "x"}`), &d))
	assert.Equal(t, AHas, d.Descriptor)

	assert.Error(t, json.Unmarshal([]byte(`{"descriptor": "Nope"}`), &d))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "null", TypeOf(nil).String())
	assert.Equal(t, "bool", TypeOf(true).String())
	assert.Equal(t, "number", TypeOf(json.Number("1")).String())
	assert.Equal(t, "string", TypeOf("s").String())
	assert.Equal(t, "array", TypeOf([]any{}).String())
	assert.Equal(t, "object", TypeOf(map[string]any{}).String())
}
