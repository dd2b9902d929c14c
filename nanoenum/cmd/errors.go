package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanoenum/nanoenum"
	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "define", "show", "mask")
	Cause       string   // The underlying cause (e.g., "enumeration not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for validation failures
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError creates an error for missing enumerations
func NewNotFoundError(operation, name string, available []string) *CLIError {
	suggestions := []string{CommonSuggestions.RunList}
	if len(available) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Available enumerations: %s", strings.Join(available, ", ")))
	}
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("enumeration %q not found", name),
		Suggestions: suggestions,
		Underlying:  catalog.ErrNotFound,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewCatalogError creates an error for catalog and enumeration failures.
// Known library errors get a friendlier cause and matching suggestions.
func NewCatalogError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "catalog operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		switch {
		case errors.Is(underlying, catalog.ErrLocked):
			cause = "catalog is currently locked by another process"
			suggestions = append(suggestions, "Retry once the other nanoenum process has finished")
		case errors.Is(underlying, catalog.ErrExists), errors.Is(underlying, nanoenum.ErrDuplicateType):
			cause = "enumeration already defined"
			suggestions = append(suggestions, "Delete the existing enumeration first, or pick another name")
		case errors.Is(underlying, catalog.ErrNotFound):
			cause = "enumeration not found"
			suggestions = append(suggestions, CommonSuggestions.RunList)
		case errors.Is(underlying, nanoenum.ErrReservedName):
			cause = "name is reserved"
			suggestions = append(suggestions, "IndexPolicy, AUTO, BINARY and SERIES are built in")
		case errors.Is(underlying, nanoenum.ErrTypeConflict):
			cause = "members could not be interpreted"
			suggestions = append(suggestions, "Give members as Name or Name=Index, not both")
		case errors.Is(underlying, nanoenum.ErrNotAMember):
			cause = "not a member of the enumeration"
			suggestions = append(suggestions, "Run 'nanoenum show <name>' to see its members")
		case errors.Is(underlying, nanoenum.ErrInvalidPolicy):
			cause = "invalid index policy"
			suggestions = append(suggestions, CommonSuggestions.CheckPolicy)
		case errors.Is(underlying, nanoenum.ErrIndexRange), errors.Is(underlying, nanoenum.ErrDuplicateMember):
			cause = "invalid data provided"
		case strings.Contains(strings.ToLower(details), "permission denied"):
			cause = "insufficient permissions to access catalog"
			suggestions = append(suggestions, CommonSuggestions.CheckPerms)
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewCatalogError(operation, err, suggestions...)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CheckCatalog string
		CheckPolicy  string
		CheckConfig  string
		RunList      string
		RunHelp      string
		CheckPerms   string
	}{
		CheckCatalog: "Verify --catalog points to a valid catalog file",
		CheckPolicy:  "Use one of AUTO, BINARY or SERIES",
		CheckConfig:  "Check your configuration file or NANOENUM_* environment variables",
		RunList:      "Run 'nanoenum list' to see defined enumerations",
		RunHelp:      "Run command with --help for usage information",
		CheckPerms:   "Check file permissions and directory access",
	}
)
