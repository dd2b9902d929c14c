package nanoenum

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanoenum/types"
)

// optionSentinel may precede an options object that carries no recognized key
const optionSentinel = "option"

// Separate splits variadic constructor arguments into options, the type
// name and the remaining label data.
//
// The leading argument is taken as options when it is a types.Options value,
// or a map exposing at least one key from recognized, or when it is the
// string "option" followed by a map. Detected options are merged over a copy
// of defaults; their Cause becomes "param" unless they name one. A zero
// StartOffset in a types.Options keeps the default offset unless OffsetSet
// is true; a map resets it with an explicit startOffset key. A nil
// recognized list means types.OptionKeys().
//
// Label data is returned unmodified.
func Separate(args []any, defaults types.Options, recognized []string) (types.Options, string, []any, error) {
	if recognized == nil {
		recognized = types.OptionKeys()
	}

	opts := defaults
	rest := args
	if len(rest) > 0 {
		candidate, forced := rest[0], false
		if s, ok := rest[0].(string); ok && strings.EqualFold(s, optionSentinel) && len(rest) > 1 {
			candidate, forced = rest[1], true
		}

		merged, found, err := mergeOptions(defaults, candidate, recognized, forced)
		if err != nil {
			return defaults, "", nil, err
		}
		if found {
			opts = merged
			if forced {
				rest = rest[2:]
			} else {
				rest = rest[1:]
			}
		}
	}

	if len(rest) == 0 {
		return opts, "", nil, ErrMissingName
	}
	name, ok := rest[0].(string)
	if !ok {
		return opts, "", nil, fmt.Errorf("%w: got %T", ErrMissingName, rest[0])
	}
	return opts, name, rest[1:], nil
}

// mergeOptions applies v over defaults when v is an options object.
// forced accepts maps without any recognized key.
func mergeOptions(defaults types.Options, v any, recognized []string, forced bool) (types.Options, bool, error) {
	switch o := v.(type) {
	case types.Options:
		return withCause(defaults.Merge(o), o.Cause), true, nil
	case *types.Options:
		if o == nil {
			return defaults, false, nil
		}
		return withCause(defaults.Merge(*o), o.Cause), true, nil
	case map[string]any:
		if !forced && !hasAnyKey(o, recognized) {
			return defaults, false, nil
		}
		merged, err := defaults.MergeMap(o)
		if err != nil {
			return defaults, false, err
		}
		cause, _ := o[types.KeyCause].(string)
		return withCause(merged, cause), true, nil
	}
	return defaults, false, nil
}

func withCause(o types.Options, cause string) types.Options {
	if cause == "" {
		o.Cause = types.CauseParam
	}
	return o
}

func hasAnyKey(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
