package payload

import (
	"encoding/json"
	"strconv"
)

// Sentinel is the placeholder substituted for any field that is absent or
// malformed in an upstream payload. Callers render it as-is.
const Sentinel = "N/A"

// Tree is a raw decoded JSON object as returned by the weather API.
type Tree map[string]any

// Decode parses a JSON body into a Tree. A body whose top level is not an
// object is an error.
func Decode(body []byte) (Tree, error) {
	var t Tree
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// At walks the nested maps along path and returns the value at the leaf.
// It returns (nil, false) if any intermediate level is missing or is not an
// object, or if the leaf key is absent.
func At(t Tree, path ...string) (any, bool) {
	if t == nil || len(path) == 0 {
		return nil, false
	}
	var cur any = map[string]any(t)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String renders the value at path for display, or Sentinel if the value is
// missing or not a displayable leaf. JSON numbers render without a trailing
// zero fraction (21.5 -> "21.5", 80 -> "80").
func String(t Tree, path ...string) string {
	v, ok := At(t, path...)
	if !ok {
		return Sentinel
	}
	return render(v)
}

// Element returns index i of the array at path. It returns (nil, false) when
// the value is not an array or the index is out of range.
func Element(t Tree, i int, path ...string) (Tree, bool) {
	v, ok := At(t, path...)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return nil, false
	}
	m, ok := arr[i].(map[string]any)
	if !ok {
		return nil, false
	}
	return Tree(m), true
}

// Len returns the length of the array at path, or 0 if the value is missing
// or not an array.
func Len(t Tree, path ...string) int {
	v, ok := At(t, path...)
	if !ok {
		return 0
	}
	arr, ok := v.([]any)
	if !ok {
		return 0
	}
	return len(arr)
}

func render(v any) string {
	switch x := v.(type) {
	case string:
		if x == "" {
			return Sentinel
		}
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	default:
		// Objects, arrays and nulls are not displayable leaves.
		return Sentinel
	}
}
