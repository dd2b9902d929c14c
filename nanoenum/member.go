package nanoenum

import (
	"cmp"
	"fmt"
	"sync"
	"unicode/utf16"

	"github.com/google/uuid"
)

// Member is one constant of an Enumeration. Its name, index, id and ordinal
// are fixed at construction; only the value slot can be written.
//
// Members come from an Enumeration. A zero Member belongs to none: it is
// rejected as a Bitmask operand and its slot starts out false.
type Member struct {
	name    string
	index   int
	id      string
	ordinal int
	uuid    uuid.UUID
	hash    string
	enum    *Enumeration

	mu       sync.RWMutex
	value    any
	hasValue bool
}

func newMember(name string, index int, id string, ordinal int, enum *Enumeration) *Member {
	return &Member{
		name:    name,
		index:   index,
		id:      id,
		ordinal: ordinal,
		uuid:    uuid.New(),
		hash:    MemberHash(enum.name, name),
		enum:    enum,
	}
}

// MemberHash returns the 32-bit hash naming a member of typeName, as eight
// lowercase hex digits. The hashed text is "Enum:<type>.EnumEntry:<name>",
// read as UTF-16 code units.
func MemberHash(typeName, name string) string {
	var h int32
	for _, u := range utf16.Encode([]rune("Enum:" + typeName + ".EnumEntry:" + name)) {
		h = h*31 + int32(u)
	}
	return fmt.Sprintf("%08x", uint32(h))
}

// Name returns the member name
func (m *Member) Name() string { return m.name }

// ToIndex returns the member index
func (m *Member) ToIndex() int { return m.index }

// ToID returns the member id
func (m *Member) ToID() string { return m.id }

// Ordinal returns the 0-based declaration position
func (m *Member) Ordinal() int { return m.ordinal }

// Type returns the enumeration owning m
func (m *Member) Type() *Enumeration { return m.enum }

// String returns the member name
func (m *Member) String() string { return m.name }

// UUID returns the random UUID drawn when the member was built. Unlike the
// id it is never serialized, so a restored member gets a new one.
func (m *Member) UUID() uuid.UUID { return m.uuid }

// Hash returns MemberHash of the member's type and name
func (m *Member) Hash() string { return m.hash }

// Value returns the payload stored in the slot, false until set
func (m *Member) Value() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasValue {
		return false
	}
	return m.value
}

// SetValue replaces the payload stored in the slot
func (m *Member) SetValue(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.hasValue = true
}

// Compare orders members by index, then by ordinal. It returns -1, 0 or +1
// and is suitable for slices.SortFunc.
func Compare(a, b *Member) int {
	if c := cmp.Compare(a.index, b.index); c != 0 {
		return c
	}
	return cmp.Compare(a.ordinal, b.ordinal)
}
