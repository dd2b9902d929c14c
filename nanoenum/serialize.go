package nanoenum

import (
	"encoding/json"

	"github.com/arthur-debert/nanoenum/types"
)

// Serialize returns the persisted form of e. Engine.Deserialize, or
// Engine.New with the record's Args, rebuilds an identical enumeration.
func (e *Enumeration) Serialize() types.Record {
	r := types.Record{
		Header: types.Header{
			Cause:       types.CauseJSON,
			IndexPolicy: e.policy,
		},
		TypeName: e.name,
		Members:  make([]types.MemberRecord, len(e.members)),
	}
	for i, m := range e.members {
		r.Members[i] = types.MemberRecord{Name: m.name, Index: m.index, ID: m.id}
	}
	return r
}

// MarshalJSON implements json.Marshaler using the serialized form
func (e *Enumeration) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Serialize())
}

// MarshalYAML implements yaml.Marshaler using the serialized form
func (e *Enumeration) MarshalYAML() (interface{}, error) {
	return e.Serialize().MarshalYAML()
}
