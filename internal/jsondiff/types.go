// Package jsondiff finds structural differences between two JSON objects.
//
// A comparison walks both documents in lock step and sorts every mismatch into
// one of four categories: keys present on one side only, values whose JSON
// types differ, primitive values that differ, and array members that are not
// shared by both sides.
package jsondiff

import (
	"encoding/json"
	"fmt"
)

// ValueType names the kind of a decoded JSON value.
type ValueType int

const (
	Null ValueType = iota
	Boolean
	Number
	String
	Array
	Object
)

func (v ValueType) String() string {
	switch v {
	case Null:
		return "null"
	case Boolean:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return fmt.Sprintf("ValueType(%d)", int(v))
}

// TypeOf reports the JSON kind of a value produced by ReadJSONFile or
// encoding/json with UseNumber. Unknown Go types are reported as Null.
func TypeOf(v any) ValueType {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	}
	return Null
}

// ArrayDiffDesc tells which side of the comparison an array member belongs to.
type ArrayDiffDesc int

const (
	// AHas marks a member present in A but not in B.
	AHas ArrayDiffDesc = iota
	// AMisses marks a member of B where A has no array at all.
	AMisses
	// BHas marks a member present in B but not in A.
	BHas
	// BMisses marks a member of A where B has no array at all.
	BMisses
)

var arrayDiffDescNames = map[ArrayDiffDesc]string{
	AHas:    "AHas",
	AMisses: "AMisses",
	BHas:    "BHas",
	BMisses: "BMisses",
}

func (d ArrayDiffDesc) String() string {
	if s, ok := arrayDiffDescNames[d]; ok {
		return s
	}
	return fmt.Sprintf("ArrayDiffDesc(%d)", int(d))
}

// OnA reports whether the value belongs in file A's column.
func (d ArrayDiffDesc) OnA() bool { return d == AHas || d == BMisses }

// MarshalJSON encodes the descriptor by name so saved results stay readable.
func (d ArrayDiffDesc) MarshalJSON() ([]byte, error) {
	s, ok := arrayDiffDescNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown array diff descriptor %d", int(d))
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a descriptor name.
func (d *ArrayDiffDesc) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("array diff descriptor: %w", err)
	}
	for k, v := range arrayDiffDescNames {
		if v == s {
			*d = k
			return nil
		}
	}
	return fmt.Errorf("unknown array diff descriptor %q", s)
}

// WorkingFile identifies one side of a comparison.
type WorkingFile struct {
	Name string
}

// Config tunes the comparison.
type Config struct {
	// ArraySameOrder compares arrays index by index and reports value
	// differences instead of membership differences.
	ArraySameOrder bool
}

// WorkingContext carries the names of both sides and the comparison config.
type WorkingContext struct {
	FileA  WorkingFile
	FileB  WorkingFile
	Config Config
}

// NewWorkingContext returns a context comparing fileA against fileB.
func NewWorkingContext(fileA, fileB string, cfg Config) WorkingContext {
	return WorkingContext{FileA: WorkingFile{Name: fileA}, FileB: WorkingFile{Name: fileB}, Config: cfg}
}

// Diff is implemented by every difference record.
type Diff interface {
	Path() string
}

// KeyDiff is a key that exists in one document only.
type KeyDiff struct {
	Key    string `json:"key"`
	Has    string `json:"has"`
	Misses string `json:"misses"`
}

// Path returns the dotted key path.
func (d KeyDiff) Path() string { return d.Key }

// TypeDiff is a key whose JSON kind differs between the documents.
type TypeDiff struct {
	Key   string `json:"key"`
	Type1 string `json:"type1"`
	Type2 string `json:"type2"`
}

// Path returns the dotted key path.
func (d TypeDiff) Path() string { return d.Key }

// ValueDiff is a primitive whose value differs. An empty side means the
// element does not exist there.
type ValueDiff struct {
	Key    string `json:"key"`
	Value1 string `json:"value1"`
	Value2 string `json:"value2"`
}

// Path returns the dotted key path.
func (d ValueDiff) Path() string { return d.Key }

// ArrayDiff is an array member found on one side only.
type ArrayDiff struct {
	Key        string        `json:"key"`
	Descriptor ArrayDiffDesc `json:"descriptor"`
	Value      string        `json:"value"`
}

// Path returns the dotted key path.
func (d ArrayDiff) Path() string { return d.Key }

// Result groups the differences of one comparison by category.
type Result struct {
	Keys   []KeyDiff
	Types  []TypeDiff
	Values []ValueDiff
	Arrays []ArrayDiff
}

// Empty reports whether no difference of any category was found.
func (r Result) Empty() bool { return r.Count() == 0 }

// Count returns the number of differences across all categories.
func (r Result) Count() int {
	return len(r.Keys) + len(r.Types) + len(r.Values) + len(r.Arrays)
}

func (r *Result) merge(o Result) {
	r.Keys = append(r.Keys, o.Keys...)
	r.Types = append(r.Types, o.Types...)
	r.Values = append(r.Values, o.Values...)
	r.Arrays = append(r.Arrays, o.Arrays...)
}
