package errors

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed schema description
type ParseError struct {
	Source string // file path or "<memory>"
	Entry  int    // 0-based index in the schema sequence (-1 if document-level)
	Field  string // offending field, e.g. "identity.name"
	Reason string
	Err    error // underlying decoder error, if any
}

func (e *ParseError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("schema parse error in %s", e.Source))

	if e.Entry >= 0 {
		parts = append(parts, fmt.Sprintf("entry %d", e.Entry))
	}

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field %s", e.Field))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " - ")
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// KeyError reports an unknown column or attribute path
type KeyError struct {
	Column string
	Path   string // empty when the column itself is at fault
	Reason string
}

func (e *KeyError) Error() string {
	target := e.Column
	if e.Path != "" {
		target = fmt.Sprintf("%s[%s]", e.Column, e.Path)
	}
	if e.Reason == "" {
		return fmt.Sprintf("key error: %s", target)
	}
	return fmt.Sprintf("key error: %s - %s", target, e.Reason)
}

// StateError reports an operation invoked in the wrong lifecycle state
// (revert with nothing pending, a second edit before commit, etc.)
type StateError struct {
	Op     string // "set", "upgrade", "revert", ...
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state for %s: %s", e.Op, e.Reason)
}

// ConversionError reports a data cell that cannot be cast to a logical type
type ConversionError struct {
	Column string
	Row    int
	Value  interface{}
	Target string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s at row %d (value=%v, %T) to %s",
		e.Column, e.Row, e.Value, e.Value, e.Target)
}

func NewUnknownColumn(column string) *KeyError {
	return &KeyError{
		Column: column,
		Reason: "unknown column",
	}
}

func NewUnknownPath(column, path string) *KeyError {
	return &KeyError{
		Column: column,
		Path:   path,
		Reason: "unknown attribute path",
	}
}

func NewNothingPending(op string) *StateError {
	return &StateError{
		Op:     op,
		Reason: "no pending edit",
	}
}

// ValueError reports a value that does not fit the attribute it is assigned to
type ValueError struct {
	Column string
	Path   string
	Value  interface{}
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for %s[%s]: value=%v - %s", e.Column, e.Path, e.Value, e.Reason)
}
