package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidOption is returned when an option value has the wrong type
var ErrInvalidOption = errors.New("invalid option")

// Provenance tags recorded in Options.Cause
const (
	CauseDefault = "default" // engine defaults, no call-site override
	CauseParam   = "param"   // call-site options object
	CauseJSON    = "json"    // restored from a serialized record
)

// DefaultIDTemplate is the id template used when none is configured.
// See package ids for the template letters.
const DefaultIDTemplate = "w-7b5-bn6-4bn-6bb-w"

// Keys recognized in map-shaped option objects
const (
	KeyCause       = "cause"
	KeyIndexPolicy = "indexPolicy"
	KeyStartOffset = "startOffset"
	KeyIDTemplate  = "idTemplate"
)

// OptionKeys returns the option keys recognized by the option separator
func OptionKeys() []string {
	return []string{KeyCause, KeyIndexPolicy, KeyStartOffset, KeyIDTemplate}
}

// Options configures how an enumeration is built
type Options struct {
	// Cause tags who provided the options (default, param, json)
	Cause string `json:"cause,omitempty" yaml:"cause,omitempty"`

	// IndexPolicy selects how member indices are assigned.
	// Empty means Auto.
	IndexPolicy Policy `json:"indexPolicy,omitempty" yaml:"indexPolicy,omitempty"`

	// StartOffset is the first index for Series, or the first exponent for Binary
	StartOffset int `json:"startOffset,omitempty" yaml:"startOffset,omitempty"`

	// OffsetSet makes Merge apply StartOffset even when it is zero
	OffsetSet bool `json:"-" yaml:"-"`

	// IDTemplate drives member id generation
	IDTemplate string `json:"idTemplate,omitempty" yaml:"idTemplate,omitempty"`
}

// DefaultOptions returns the library defaults
func DefaultOptions() Options {
	return Options{
		Cause:       CauseDefault,
		IndexPolicy: Auto,
		StartOffset: 0,
		IDTemplate:  DefaultIDTemplate,
	}
}

// Merge returns a copy of o with every non-zero field of over applied.
// A zero StartOffset in over resets the offset only when over.OffsetSet
// is true.
func (o Options) Merge(over Options) Options {
	if over.Cause != "" {
		o.Cause = over.Cause
	}
	if over.IndexPolicy != "" {
		o.IndexPolicy = over.IndexPolicy
	}
	if over.StartOffset != 0 || over.OffsetSet {
		o.StartOffset = over.StartOffset
	}
	if over.IDTemplate != "" {
		o.IDTemplate = over.IDTemplate
	}
	return o
}

// MergeMap returns a copy of o with every recognized key present in m applied.
// Unrecognized keys are ignored.
func (o Options) MergeMap(m map[string]any) (Options, error) {
	if v, ok := m[KeyCause]; ok {
		s, ok := v.(string)
		if !ok {
			return o, fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOption, KeyCause, v)
		}
		o.Cause = s
	}
	if v, ok := m[KeyIndexPolicy]; ok {
		var raw string
		switch p := v.(type) {
		case Policy:
			raw = string(p)
		case string:
			raw = p
		default:
			return o, fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOption, KeyIndexPolicy, v)
		}
		policy, err := ParsePolicy(raw)
		if err != nil {
			return o, err
		}
		o.IndexPolicy = policy
	}
	if v, ok := m[KeyStartOffset]; ok {
		n, err := toInt(v)
		if err != nil {
			return o, fmt.Errorf("%w: %s: %v", ErrInvalidOption, KeyStartOffset, err)
		}
		o.StartOffset = n
	}
	if v, ok := m[KeyIDTemplate]; ok {
		s, ok := v.(string)
		if !ok {
			return o, fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOption, KeyIDTemplate, v)
		}
		o.IDTemplate = s
	}
	return o, nil
}

// toInt converts the loosely typed numbers found in decoded JSON or YAML
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case uint:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
