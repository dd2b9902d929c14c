package nanoenum

import (
	"fmt"
	"iter"

	"github.com/arthur-debert/nanoenum/types"
)

// Enumeration is a named, closed and ordered set of members.
// It cannot be changed once built.
type Enumeration struct {
	name        string
	policy      types.Policy
	startOffset int
	cause       string
	members     []*Member
	byName      map[string]*Member
	byIndex     map[int]*Member
}

// Name returns the type name
func (e *Enumeration) Name() string { return e.name }

// Policy returns the effective index policy
func (e *Enumeration) Policy() types.Policy { return e.policy }

// StartOffset returns the offset the indices were computed from
func (e *Enumeration) StartOffset() int { return e.startOffset }

// Cause returns the provenance tag of the options that built e
func (e *Enumeration) Cause() string { return e.cause }

// Len returns the number of members
func (e *Enumeration) Len() int { return len(e.members) }

// String returns the type name
func (e *Enumeration) String() string { return e.name }

// Members returns the members in declaration order
func (e *Enumeration) Members() []*Member {
	out := make([]*Member, len(e.members))
	copy(out, e.members)
	return out
}

// Names returns the member names in declaration order
func (e *Enumeration) Names() []string {
	out := make([]string, len(e.members))
	for i, m := range e.members {
		out[i] = m.name
	}
	return out
}

// Get returns the member called name
func (e *Enumeration) Get(name string) (*Member, bool) {
	m, ok := e.byName[name]
	return m, ok
}

// ByIndex returns the member holding index
func (e *Enumeration) ByIndex(index int) (*Member, bool) {
	m, ok := e.byIndex[index]
	return m, ok
}

// Has reports whether m belongs to e
func (e *Enumeration) Has(m *Member) bool {
	return m != nil && m.enum == e
}

// All returns an iterator over the members keyed by name, in declaration
// order. Every call starts a fresh traversal.
func (e *Enumeration) All() iter.Seq2[string, *Member] {
	return func(yield func(string, *Member) bool) {
		for _, m := range e.members {
			if !yield(m.name, m) {
				return
			}
		}
	}
}

// ForEach calls fn for every member in declaration order with its name,
// the member, its 0-based position and e itself
func (e *Enumeration) ForEach(fn func(key string, m *Member, i int, e *Enumeration)) {
	for i, m := range e.members {
		fn(m.name, m, i, e)
	}
}

// Bitmask returns the bitwise OR of the indices of members. Operands may be
// members of e, member names or member indices.
func (e *Enumeration) Bitmask(members ...any) (int, error) {
	mask := 0
	for _, operand := range members {
		m, err := e.resolve(operand)
		if err != nil {
			return 0, &EnumError{Op: "bitmask", Type: e.name, Err: err}
		}
		mask |= m.index
	}
	return mask, nil
}

// MembersFromBitmask returns, in declaration order, the members whose index
// shares at least one bit with mask
func (e *Enumeration) MembersFromBitmask(mask int) []*Member {
	out := []*Member{}
	for _, m := range e.members {
		if mask&m.index != 0 {
			out = append(out, m)
		}
	}
	return out
}

func (e *Enumeration) resolve(operand any) (*Member, error) {
	switch v := operand.(type) {
	case *Member:
		if e.Has(v) {
			return v, nil
		}
		if v != nil && v.enum != nil {
			return nil, fmt.Errorf("%w: %s belongs to %s", ErrNotAMember, v.name, v.enum.name)
		}
	case string:
		if m, ok := e.byName[v]; ok {
			return m, nil
		}
	case int:
		if m, ok := e.byIndex[v]; ok {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrNotAMember, operand)
}
