package shape

import (
	"regexp"

	"github.com/arthur-debert/nanoenum/types"
)

// A usable name starts with neither whitespace nor a digit
var namePattern = regexp.MustCompile(`^[^\s\d]`)

// accept is the single entry predicate applied to every candidate.
// Indices must be non-negative integers.
func accept(name string, index int) bool {
	return namePattern.MatchString(name) && index >= 0
}

// Normalize reduces s to its ordered entries. Candidates failing the entry
// predicate are dropped silently; the result is empty, never nil, when none
// survive.
func Normalize(s Shape) []types.Entry {
	switch v := s.(type) {
	case StringList:
		return positional(v)
	case *SetOf:
		if v == nil {
			return []types.Entry{}
		}
		return positional(v.items)
	case *MapOf:
		if v == nil {
			return []types.Entry{}
		}
		out := make([]types.Entry, 0, len(v.keys))
		for _, name := range v.keys {
			out = appendExplicit(out, name, v.values[name], "")
		}
		return out
	case PairList:
		out := make([]types.Entry, 0, len(v))
		for _, p := range v {
			out = appendExplicit(out, p.Name, p.Index, "")
		}
		return out
	case IndexObject:
		out := make([]types.Entry, 0, len(v))
		for _, name := range sortedNames(map[string]int(v), func(i int) int { return i }) {
			out = appendExplicit(out, name, v[name], "")
		}
		return out
	case IndexIDObject:
		out := make([]types.Entry, 0, len(v))
		for _, e := range v {
			out = appendExplicit(out, e.Name, e.Index, e.ID)
		}
		return out
	default:
		return []types.Entry{}
	}
}

// positional keeps each name's original position, gaps included
func positional(names []string) []types.Entry {
	out := make([]types.Entry, 0, len(names))
	for i, name := range names {
		if accept(name, i) {
			out = append(out, types.Entry{Name: name, Index: i})
		}
	}
	return out
}

func appendExplicit(out []types.Entry, name string, index int, id string) []types.Entry {
	if !accept(name, index) {
		return out
	}
	return append(out, types.Entry{Name: name, Index: index, ID: id, Explicit: true})
}
