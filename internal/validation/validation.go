package validation

import (
	"errors"
	"fmt"
	"math/bits"
	"unicode"

	"github.com/arthur-debert/nanoenum/types"
)

// ErrInvalidOptions is returned when engine defaults are inconsistent
var ErrInvalidOptions = errors.New("invalid options")

// MaxExponent is the largest shift that still yields a positive int
const MaxExponent = bits.UintSize - 2

// MaxTemplateLength bounds id templates
const MaxTemplateLength = 64

// PolicyTypeName is the name of the built-in enumeration of index policies
const PolicyTypeName = "IndexPolicy"

// ValidateOptions checks options meant to serve as engine defaults
func ValidateOptions(o types.Options) error {
	policy, err := types.ParsePolicy(string(o.IndexPolicy))
	if err != nil {
		return err
	}

	switch o.Cause {
	case "", types.CauseDefault, types.CauseParam, types.CauseJSON:
	default:
		return fmt.Errorf("%w: unknown cause %q", ErrInvalidOptions, o.Cause)
	}

	// Positions are ordinal plus offset and must not be negative
	if o.StartOffset < 0 {
		return fmt.Errorf("%w: start offset %d is negative", ErrInvalidOptions, o.StartOffset)
	}
	if policy == types.Binary && o.StartOffset > MaxExponent {
		return fmt.Errorf("%w: start exponent %d exceeds %d", ErrInvalidOptions, o.StartOffset, MaxExponent)
	}

	return ValidateTemplate(o.IDTemplate)
}

// ValidateTemplate checks an id template. An empty template selects the
// default and is accepted.
func ValidateTemplate(template string) error {
	if len(template) > MaxTemplateLength {
		return fmt.Errorf("%w: id template longer than %d bytes", ErrInvalidOptions, MaxTemplateLength)
	}
	if !IsValidTemplate(template) {
		return fmt.Errorf("%w: id template %q contains spaces or control characters", ErrInvalidOptions, template)
	}
	return nil
}

// IsValidTemplate checks that a template holds only printable, non-space
// characters, so generated ids stay single tokens
func IsValidTemplate(template string) bool {
	for _, r := range template {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// IsReservedName checks if a type name collides with the built-in policy
// enumeration or one of its members
func IsReservedName(name string) bool {
	if name == PolicyTypeName {
		return true
	}
	for _, p := range types.Policies() {
		if name == string(p) {
			return true
		}
	}
	return false
}
