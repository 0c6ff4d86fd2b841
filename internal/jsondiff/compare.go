package jsondiff

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// FindKeyDiffs returns the keys present in only one of a and b, recursing into
// shared objects (and into arrays when arrays are compared in order).
func FindKeyDiffs(prefix string, a, b map[string]any, wc WorkingContext) []KeyDiff {
	return compareObjects(prefix, a, b, wc).Keys
}

// FindTypeDiffs returns the shared keys whose JSON kinds differ.
func FindTypeDiffs(prefix string, a, b map[string]any, wc WorkingContext) []TypeDiff {
	return compareObjects(prefix, a, b, wc).Types
}

// FindValueDiffs returns the shared primitives whose values differ.
func FindValueDiffs(prefix string, a, b map[string]any, wc WorkingContext) []ValueDiff {
	return compareObjects(prefix, a, b, wc).Values
}

// FindArrayDiffs returns array members present on one side only. It is empty
// when arrays are compared in order; those mismatches are value differences.
func FindArrayDiffs(prefix string, a, b map[string]any, wc WorkingContext) []ArrayDiff {
	return compareObjects(prefix, a, b, wc).Arrays
}

// Compare runs a full comparison of two documents.
func Compare(a, b map[string]any, wc WorkingContext) Result {
	return compareObjects("", a, b, wc)
}

// CompareField compares a single value found under key in both documents.
func CompareField(key string, a, b any, wc WorkingContext) Result {
	ta, tb := TypeOf(a), TypeOf(b)
	switch {
	case ta == Null && tb == Null:
		return Result{}
	case ta == tb && ta == Object:
		return compareObjects(key, a.(map[string]any), b.(map[string]any), wc)
	case ta == tb && ta == Array:
		return compareArrays(key, a.([]any), b.([]any), wc)
	case ta == tb:
		return Result{Values: comparePrimitives(key, a, b)}
	case ta == Null || tb == Null:
		return compareWithNull(key, a, b, ta, tb, wc)
	default:
		return Result{Types: []TypeDiff{{Key: key, Type1: ta.String(), Type2: tb.String()}}}
	}
}

func compareObjects(prefix string, a, b map[string]any, wc WorkingContext) Result {
	var res Result
	for _, k := range sortedKeys(a) {
		path := joinKey(prefix, k)
		bv, ok := b[k]
		if !ok {
			res.Keys = append(res.Keys, KeyDiff{Key: path, Has: wc.FileA.Name, Misses: wc.FileB.Name})
			continue
		}
		res.merge(CompareField(path, a[k], bv, wc))
	}
	for _, k := range sortedKeys(b) {
		if _, ok := a[k]; ok {
			continue
		}
		res.Keys = append(res.Keys, KeyDiff{Key: joinKey(prefix, k), Has: wc.FileB.Name, Misses: wc.FileA.Name})
	}
	return res
}

func compareArrays(key string, a, b []any, wc WorkingContext) Result {
	var res Result
	if wc.Config.ArraySameOrder {
		n := max(len(a), len(b))
		for i := 0; i < n; i++ {
			path := indexKey(key, i)
			switch {
			case i >= len(a):
				res.Values = append(res.Values, ValueDiff{Key: path, Value2: valueText(b[i])})
			case i >= len(b):
				res.Values = append(res.Values, ValueDiff{Key: path, Value1: valueText(a[i])})
			default:
				res.merge(CompareField(path, a[i], b[i], wc))
			}
		}
		return res
	}
	for _, v := range a {
		if !contains(b, v) {
			res.Arrays = append(res.Arrays, ArrayDiff{Key: key, Descriptor: AHas, Value: valueText(v)})
		}
	}
	for _, v := range b {
		if !contains(a, v) {
			res.Arrays = append(res.Arrays, ArrayDiff{Key: key, Descriptor: BHas, Value: valueText(v)})
		}
	}
	return res
}

func comparePrimitives(key string, a, b any) []ValueDiff {
	if equalValues(a, b) {
		return nil
	}
	va, vb := valueText(a), valueText(b)
	return []ValueDiff{{Key: key, Value1: va, Value2: vb}}
}

// compareWithNull handles a null on exactly one side.
func compareWithNull(key string, a, b any, ta, tb ValueType, wc WorkingContext) Result {
	present, desc := b, AMisses
	if tb == Null {
		present, desc = a, BMisses
	}
	switch TypeOf(present) {
	case Array:
		var res Result
		for _, v := range present.([]any) {
			res.Arrays = append(res.Arrays, ArrayDiff{Key: key, Descriptor: desc, Value: valueText(v)})
		}
		return res
	case Object:
		empty := map[string]any{}
		if ta == Null {
			return compareObjects(key, empty, b.(map[string]any), wc)
		}
		return compareObjects(key, a.(map[string]any), empty, wc)
	default:
		return Result{Values: []ValueDiff{{Key: key, Value1: valueText(a), Value2: valueText(b)}}}
	}
}

func contains(haystack []any, v any) bool {
	for _, h := range haystack {
		if equalValues(h, v) {
			return true
		}
	}
	return false
}

// equalValues is deep equality where numbers compare by value.
func equalValues(a, b any) bool {
	switch x := a.(type) {
	case json.Number:
		y, ok := b.(json.Number)
		return ok && numbersEqual(x, y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalValues(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equalValues(xv, yv) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// numbersEqual compares integers with integers and floats with floats, so
// 1.50 equals 1.5 while 1 and 1.0 stay different.
func numbersEqual(a, b json.Number) bool {
	ia, aInt := integerText(a)
	ib, bInt := integerText(b)
	if aInt || bInt {
		return aInt && bInt && ia == ib
	}
	fa, errA := a.Float64()
	fb, errB := b.Float64()
	if errA != nil || errB != nil {
		return a == b
	}
	return fa == fb
}

// integerText reports whether n is an integer literal that fits 64 bits.
// Larger integers are treated as floats.
func integerText(n json.Number) (string, bool) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return "", false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s, true
	}
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return s, true
	}
	return "", false
}

// valueText renders strings verbatim and everything else as compact JSON.
func valueText(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func indexKey(key string, i int) string {
	return fmt.Sprintf("%s[%d]", key, i)
}
