// Package nanoenum builds enumerations at runtime from loosely shaped label
// data.
//
// An Engine accepts names as a list, a set, an ordered map, (name, index)
// pairs, a name to index object or a serialized record, and produces an
// immutable *Enumeration whose members carry a name, an index, a unique id
// and an ordinal:
//
//	engine := nanoenum.NewEngine()
//	galaxy, err := engine.New(
//	    types.Options{IndexPolicy: types.Binary, StartOffset: 2},
//	    "Galaxy", []string{"Enterprise", "Yamato", "Odyssey"})
//	// indices 4, 8, 16
//	mask, _ := galaxy.Bitmask("Enterprise", "Yamato") // 12
//
// When no policy is requested and indices come from positions, Classify
// decides between AUTO, BINARY and SERIES. Every type name can be built
// once per engine.
package nanoenum

import (
	"github.com/arthur-debert/nanoenum/types"
)

// Options is an alias for types.Options
type Options = types.Options

// Policy is an alias for types.Policy
type Policy = types.Policy

// Record is an alias for types.Record
type Record = types.Record

// Index policies
const (
	Auto   = types.Auto
	Binary = types.Binary
	Series = types.Series
)
