package types

// Entry is one normalized (name, index, id) triple produced from caller input.
// Entries are consumed by the engine immediately and never stored.
type Entry struct {
	Name  string // Member name
	Index int    // Supplied index, or the position for name-only shapes
	ID    string // Supplied id; empty when the caller gave none

	// Explicit is true when Index came from the caller rather than position
	Explicit bool
}

// Indices returns the index of every entry in order
func Indices(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Index
	}
	return out
}

// Positional reports whether no entry carries a caller-supplied index
func Positional(entries []Entry) bool {
	for _, e := range entries {
		if e.Explicit {
			return false
		}
	}
	return true
}
