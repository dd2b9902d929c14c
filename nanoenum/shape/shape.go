// Package shape turns the loosely structured label data accepted by the
// enumeration factory into one canonical, ordered list of entries.
//
// Six shapes are accepted, each with its own type:
//
//	StringList     []string{"Enterprise", "Yamato"}                index = position
//	*SetOf         NewSet("Enterprise", "Yamato")                  index = position
//	*MapOf         NewMap().Set("Enterprise", 3)                   index = supplied
//	PairList       PairList{{"Enterprise", 3}}                     index = supplied
//	IndexObject    IndexObject{"Enterprise": 3}                    index = supplied
//	IndexIDObject  IndexIDObject{{"Enterprise", 3, "0A1F-..."}}    index and id supplied
//
// Parse classifies untyped values (variadic call arguments, decoded JSON)
// into one of these types; Normalize reduces any of them to entries.
package shape

import (
	"errors"
	"sort"
)

// ErrTypeConflict is returned when label data matches no accepted shape
var ErrTypeConflict = errors.New("type conflict")

// Shape is implemented by the six accepted label shapes only
type Shape interface {
	shape()
}

// StringList is a sequence of names; each name gets its position as index
type StringList []string

// SetOf is an insertion-ordered set of names
type SetOf struct {
	items []string
	index map[string]struct{}
}

// MapOf is an insertion-ordered mapping from name to index
type MapOf struct {
	keys   []string
	values map[string]int
}

// Pair is one (name, index) pair of a PairList
type Pair struct {
	Name  string
	Index int
}

// PairList is a sequence of (name, index) pairs
type PairList []Pair

// IndexObject maps names to indices. Go maps are unordered, so entries are
// normalized in index order, then name order.
type IndexObject map[string]int

// IndexID is one (name, index, id) triple of an IndexIDObject
type IndexID struct {
	Name  string
	Index int
	ID    string
}

// IndexIDObject is an ordered name -> (index, id) mapping, the shape
// produced by serializing an enumeration
type IndexIDObject []IndexID

func (StringList) shape()    {}
func (*SetOf) shape()        {}
func (*MapOf) shape()        {}
func (PairList) shape()      {}
func (IndexObject) shape()   {}
func (IndexIDObject) shape() {}

// NewSet creates a set holding names in order; repeated names are ignored
func NewSet(names ...string) *SetOf {
	s := &SetOf{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add appends name unless it is already present. It reports whether the
// set changed.
func (s *SetOf) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.items = append(s.items, name)
	return true
}

// Has reports whether name is in the set
func (s *SetOf) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of names
func (s *SetOf) Len() int {
	return len(s.items)
}

// Items returns the names in insertion order
func (s *SetOf) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// NewMap creates an empty ordered map
func NewMap() *MapOf {
	return &MapOf{values: make(map[string]int)}
}

// Set stores index under name. A new name is appended; an existing name
// keeps its position. Set returns m to allow chaining.
func (m *MapOf) Set(name string, index int) *MapOf {
	if m.values == nil {
		m.values = make(map[string]int)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = index
	return m
}

// Get returns the index stored under name
func (m *MapOf) Get(name string) (int, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of names
func (m *MapOf) Len() int {
	return len(m.keys)
}

// Keys returns the names in insertion order
func (m *MapOf) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// sortedNames returns the keys of m ordered by their index, then by name
func sortedNames[V any](m map[string]V, index func(V) int) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := index(m[names[i]]), index(m[names[j]])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}
