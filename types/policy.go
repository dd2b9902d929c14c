package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPolicy is returned when a string does not name a known index policy
var ErrInvalidPolicy = errors.New("invalid index policy")

// Policy defines how member indices of an enumeration are assigned
type Policy string

const (
	// Auto keeps the indices supplied by the caller (or their position)
	Auto Policy = "AUTO"
	// Binary assigns powers of two: 2^(ordinal+offset)
	Binary Policy = "BINARY"
	// Series assigns consecutive integers: ordinal+offset
	Series Policy = "SERIES"
)

// policyAliases maps legacy spellings onto the canonical policies
var policyAliases = map[string]Policy{
	"AUTO":   Auto,
	"BINARY": Binary,
	"SERIES": Series,
	"SERIAL": Series,
	"SERIEL": Series,
	"COUNT":  Series,
}

// Policies returns the known policies in their canonical order
func Policies() []Policy {
	return []Policy{Auto, Binary, Series}
}

// String returns the string representation of the Policy
func (p Policy) String() string {
	if p == "" {
		return string(Auto)
	}
	return string(p)
}

// Valid reports whether p is one of the canonical policies
func (p Policy) Valid() bool {
	switch p {
	case Auto, Binary, Series:
		return true
	default:
		return false
	}
}

// AcceptsIndices reports whether supplied indices are kept verbatim
func (p Policy) AcceptsIndices() bool {
	return p == Auto || p == ""
}

// ParsePolicy converts a case-insensitive policy name into a Policy.
// An empty string yields Auto.
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Auto, nil
	}
	if p, ok := policyAliases[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}
