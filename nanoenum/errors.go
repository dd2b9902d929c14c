package nanoenum

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/nanoenum/nanoenum/shape"
	"github.com/arthur-debert/nanoenum/types"
)

var (
	// ErrTypeConflict is returned when label data matches no accepted shape
	ErrTypeConflict = shape.ErrTypeConflict

	// ErrNameRequired is returned when the type name is empty or not a string
	ErrNameRequired = errors.New("enumeration type name required")

	// ErrMissingName is returned by the option separator when no string
	// name follows the options. It matches ErrNameRequired as well.
	ErrMissingName = fmt.Errorf("%w: required enum type name missing", ErrNameRequired)

	// ErrDuplicateType is returned when a type name is already registered
	ErrDuplicateType = errors.New("enumeration type already defined")

	// ErrReservedName is returned when a type name collides with the
	// built-in index policy constants
	ErrReservedName = errors.New("reserved enumeration type name")

	// ErrNotAMember is returned when an operand does not resolve to a
	// member of the enumeration
	ErrNotAMember = errors.New("not a member")

	// ErrDuplicateMember is returned when two entries share a name or an index
	ErrDuplicateMember = errors.New("duplicate member")

	// ErrIndexRange is returned when a computed index does not fit an int
	ErrIndexRange = errors.New("index out of range")

	// ErrInvalidPolicy is returned for unknown index policy names
	ErrInvalidPolicy = types.ErrInvalidPolicy
)

// EnumError describes a failed engine operation
type EnumError struct {
	Op   string // new, build, bitmask or defaults
	Type string // Enumeration type name, when known
	Err  error
}

// Error implements the error interface
func (e *EnumError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Type, e.Err)
}

// Unwrap allows error unwrapping
func (e *EnumError) Unwrap() error {
	return e.Err
}
