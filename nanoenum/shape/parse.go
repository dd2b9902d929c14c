package shape

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
)

var digitsPattern = regexp.MustCompile(`^\d+$`)

// Parse classifies untyped label data into one of the accepted shapes.
//
// Exactly one container is expected. Bare strings are rejected: a lone
// string followed by more strings has no container and is ambiguous.
func Parse(label ...any) (Shape, error) {
	if len(label) == 0 {
		return nil, fmt.Errorf("%w: no label data", ErrTypeConflict)
	}
	if s, ok := label[0].(string); ok {
		return nil, fmt.Errorf("%w: bare string %q, wrap names in a list", ErrTypeConflict, s)
	}
	if len(label) > 1 {
		return nil, fmt.Errorf("%w: expected one label container, got %d arguments", ErrTypeConflict, len(label))
	}
	return classify(label[0], true)
}

// classify tries the accepted shapes in priority order. canStrip allows one
// level of surplus nesting to be removed.
func classify(v any, canStrip bool) (Shape, error) {
	switch x := v.(type) {
	case Shape:
		return x, nil
	case []string:
		return StringList(x), nil
	case map[string]struct{}:
		return NewSet(sortedKeys(x)...), nil
	case map[string]bool:
		names := make([]string, 0, len(x))
		for _, k := range sortedKeys(x) {
			if x[k] {
				names = append(names, k)
			}
		}
		return NewSet(names...), nil
	case map[string]int:
		return IndexObject(x), nil
	case []Pair:
		return PairList(x), nil
	case []IndexID:
		return IndexIDObject(x), nil
	case [][]any:
		items := make([]any, len(x))
		for i := range x {
			items[i] = x[i]
		}
		return classifyList(items, canStrip)
	case [][]string:
		items := make([]any, len(x))
		for i := range x {
			items[i] = x[i]
		}
		return classifyList(items, canStrip)
	case []any:
		return classifyList(x, canStrip)
	case map[string]any:
		return classifyObject(x), nil
	}
	return nil, fmt.Errorf("%w: cannot handle label of type %T", ErrTypeConflict, v)
}

func classifyList(items []any, canStrip bool) (Shape, error) {
	if len(items) == 0 {
		return StringList{}, nil
	}

	switch head := items[0].(type) {
	case string:
		names := make(StringList, len(items))
		for i, item := range items {
			// Non-strings keep their slot and fail the entry predicate
			names[i], _ = item.(string)
		}
		return names, nil

	case []any, []string:
		row := asList(head)
		if len(row) == 0 {
			return strip(items, canStrip)
		}
		if _, ok := row[0].(string); !ok {
			// One level deeper than expected
			return strip(items, canStrip)
		}
		switch {
		case len(row) == 2 && isNumericIndex(row[1]):
			return pairList(items), nil
		case len(row) == 1:
			return singletons(items), nil
		case len(items) == 1:
			return classify(head, false)
		}
		return nil, fmt.Errorf("%w: list of %d name lists", ErrTypeConflict, len(items))

	case map[string]any:
		if isSerializedMember(head) {
			return indexIDList(items), nil
		}
		if len(items) == 1 {
			return classifyObject(head), nil
		}
		return nil, fmt.Errorf("%w: list of %d objects", ErrTypeConflict, len(items))
	}

	return strip(items, canStrip)
}

func strip(items []any, canStrip bool) (Shape, error) {
	if !canStrip {
		return nil, fmt.Errorf("%w: label nested too deeply", ErrTypeConflict)
	}
	return classify(items[0], false)
}

// classifyObject handles plain key/value objects: scalar values make an
// IndexObject, [index, id] values an IndexIDObject
func classifyObject(m map[string]any) Shape {
	pairs := false
	for _, v := range m {
		if _, ok := v.([]any); ok {
			pairs = true
			break
		}
	}

	if !pairs {
		out := make(IndexObject, len(m))
		for k, v := range m {
			out[k] = indexOrInvalid(v)
		}
		return out
	}

	triples := make(map[string]IndexID, len(m))
	for k, v := range m {
		triples[k] = indexID(k, v)
	}
	out := make(IndexIDObject, 0, len(m))
	for _, k := range sortedNames(triples, func(e IndexID) int { return e.Index }) {
		out = append(out, triples[k])
	}
	return out
}

func pairList(items []any) PairList {
	out := make(PairList, 0, len(items))
	for _, item := range items {
		row := asList(item)
		p := Pair{Index: -1}
		if len(row) == 2 {
			p.Name, _ = row[0].(string)
			p.Index = indexOrInvalid(row[1])
		}
		out = append(out, p)
	}
	return out
}

// singletons unwraps a list of one-element name lists
func singletons(items []any) StringList {
	out := make(StringList, len(items))
	for i, item := range items {
		if row := asList(item); len(row) == 1 {
			out[i], _ = row[0].(string)
		}
	}
	return out
}

func indexIDList(items []any) IndexIDObject {
	out := make(IndexIDObject, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok || len(m) != 1 {
			continue
		}
		for k, v := range m {
			out = append(out, indexID(k, v))
		}
	}
	return out
}

func indexID(name string, v any) IndexID {
	e := IndexID{Name: name, Index: -1}
	row, ok := v.([]any)
	if !ok || len(row) != 2 {
		return e
	}
	id, ok := row[1].(string)
	if !ok {
		return e
	}
	e.Index = indexOrInvalid(row[0])
	e.ID = id
	return e
}

// isSerializedMember reports whether m looks like {name: [index, id]}
func isSerializedMember(m map[string]any) bool {
	if len(m) != 1 {
		return false
	}
	for _, v := range m {
		row, ok := v.([]any)
		return ok && len(row) == 2
	}
	return false
}

func asList(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	}
	return nil
}

func isIndex(v any) bool {
	_, ok := toIndex(v)
	return ok
}

// isNumericIndex is isIndex without digit strings. A list whose first row
// is [name, "1"] is a name list, not a pair list.
func isNumericIndex(v any) bool {
	if _, ok := v.(string); ok {
		return false
	}
	return isIndex(v)
}

func indexOrInvalid(v any) int {
	if i, ok := toIndex(v); ok {
		return i
	}
	return -1
}

// toIndex accepts values whose text form is a plain digit string
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n >= 0
	case int8:
		return int(n), n >= 0
	case int16:
		return int(n), n >= 0
	case int32:
		return int(n), n >= 0
	case int64:
		return int(n), n >= 0
	case uint:
		return int(n), n <= math.MaxInt
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), uint64(n) <= math.MaxInt
	case uint64:
		return int(n), n <= math.MaxInt
	case float64:
		return int(n), n >= 0 && n == math.Trunc(n) && n <= 1<<53
	case float32:
		return int(n), n >= 0 && float64(n) == math.Trunc(float64(n)) && n <= 1<<24
	case json.Number:
		return atoi(string(n))
	case string:
		return atoi(n)
	}
	return 0, false
}

func atoi(s string) (int, bool) {
	if !digitsPattern.MatchString(s) {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	return i, err == nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
