package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMalformedRecord is returned when a serialized enumeration cannot be decoded
var ErrMalformedRecord = errors.New("malformed enumeration record")

// Header is the policy header of a serialized enumeration
type Header struct {
	Cause       string `json:"cause" yaml:"cause"`
	IndexPolicy Policy `json:"indexPolicy" yaml:"indexPolicy"`
}

// MemberRecord is one serialized member
type MemberRecord struct {
	Name  string
	Index int
	ID    string
}

// Record is the persisted form of an enumeration.
//
// On the wire it is a three element array that can be handed back to the
// engine as call arguments:
//
//	[{"cause":"json","indexPolicy":"BINARY"}, "Galaxy", [{"Enterprise":[4,"3A1F-..."]}, ...]]
type Record struct {
	Header   Header
	TypeName string
	Members  []MemberRecord
}

// Entries converts the members into explicit entries, ids included
func (r Record) Entries() []Entry {
	entries := make([]Entry, len(r.Members))
	for i, m := range r.Members {
		entries[i] = Entry{Name: m.Name, Index: m.Index, ID: m.ID, Explicit: true}
	}
	return entries
}

// Args returns the record as loosely typed call arguments, the same values
// a JSON decoder produces for the wire form
func (r Record) Args() []any {
	members := make([]any, len(r.Members))
	for i, m := range r.Members {
		members[i] = map[string]any{m.Name: []any{m.Index, m.ID}}
	}
	return []any{
		map[string]any{KeyCause: r.Header.Cause, KeyIndexPolicy: string(r.Header.IndexPolicy)},
		r.TypeName,
		members,
	}
}

func (r Record) wireMembers() []map[string][]any {
	out := make([]map[string][]any, len(r.Members))
	for i, m := range r.Members {
		out[i] = map[string][]any{m.Name: {m.Index, m.ID}}
	}
	return out
}

// MarshalJSON implements json.Marshaler
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Header, r.TypeName, r.wireMembers()})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Record) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("%w: expected 3 elements, got %d", ErrMalformedRecord, len(parts))
	}

	var out Record
	if err := json.Unmarshal(parts[0], &out.Header); err != nil {
		return fmt.Errorf("%w: header: %v", ErrMalformedRecord, err)
	}
	if err := json.Unmarshal(parts[1], &out.TypeName); err != nil {
		return fmt.Errorf("%w: type name: %v", ErrMalformedRecord, err)
	}

	var members []map[string][]json.RawMessage
	if err := json.Unmarshal(parts[2], &members); err != nil {
		return fmt.Errorf("%w: members: %v", ErrMalformedRecord, err)
	}
	out.Members = make([]MemberRecord, 0, len(members))
	for i, entry := range members {
		if len(entry) != 1 {
			return fmt.Errorf("%w: member %d has %d keys", ErrMalformedRecord, i, len(entry))
		}
		for name, pair := range entry {
			if len(pair) != 2 {
				return fmt.Errorf("%w: member %q needs [index, id]", ErrMalformedRecord, name)
			}
			m := MemberRecord{Name: name}
			if err := json.Unmarshal(pair[0], &m.Index); err != nil {
				return fmt.Errorf("%w: member %q index: %v", ErrMalformedRecord, name, err)
			}
			if err := json.Unmarshal(pair[1], &m.ID); err != nil {
				return fmt.Errorf("%w: member %q id: %v", ErrMalformedRecord, name, err)
			}
			out.Members = append(out.Members, m)
		}
	}

	*r = out
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (r Record) MarshalYAML() (interface{}, error) {
	return []any{r.Header, r.TypeName, r.wireMembers()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 3 {
		return fmt.Errorf("%w: expected a 3 element sequence at line %d", ErrMalformedRecord, value.Line)
	}

	var out Record
	if err := value.Content[0].Decode(&out.Header); err != nil {
		return fmt.Errorf("%w: header: %v", ErrMalformedRecord, err)
	}
	if err := value.Content[1].Decode(&out.TypeName); err != nil {
		return fmt.Errorf("%w: type name: %v", ErrMalformedRecord, err)
	}

	list := value.Content[2]
	if list.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: members must be a sequence", ErrMalformedRecord)
	}
	out.Members = make([]MemberRecord, 0, len(list.Content))
	for _, node := range list.Content {
		// A mapping node stores key and value as consecutive children
		if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
			return fmt.Errorf("%w: member at line %d must have exactly one key", ErrMalformedRecord, node.Line)
		}
		name := node.Content[0].Value
		pair := node.Content[1]
		if pair.Kind != yaml.SequenceNode || len(pair.Content) != 2 {
			return fmt.Errorf("%w: member %q needs [index, id]", ErrMalformedRecord, name)
		}
		m := MemberRecord{Name: name}
		if err := pair.Content[0].Decode(&m.Index); err != nil {
			return fmt.Errorf("%w: member %q index: %v", ErrMalformedRecord, name, err)
		}
		if err := pair.Content[1].Decode(&m.ID); err != nil {
			return fmt.Errorf("%w: member %q id: %v", ErrMalformedRecord, name, err)
		}
		out.Members = append(out.Members, m)
	}

	*r = out
	return nil
}
