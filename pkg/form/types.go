package form

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the tag used by the element factory to select a variant.
type Type string

const (
	TypeText     Type = "text"
	TypeInteger  Type = "integer"
	TypePassword Type = "password"
	TypeHidden   Type = "hidden"
	TypeDropdown Type = "dropdown"
)

// ErrorKind names a validation problem recorded on an element.
type ErrorKind string

const (
	EmptyValue     ErrorKind = "EMPTY_VALUE"
	InvalidFormat  ErrorKind = "INVALID_FORMAT"
	MinExceeded    ErrorKind = "MIN_EXCEEDED"
	MaxExceeded    ErrorKind = "MAX_EXCEEDED"
	RegexpMismatch ErrorKind = "REGEXP_MISMATCH"
)

var (
	// ErrUnknownElementType is returned when a type tag has no registered
	// constructor.
	ErrUnknownElementType = errors.New("form: unknown element type")
	// ErrInvalidArgument is returned when constructor arguments do not match
	// what the element variant expects.
	ErrInvalidArgument = errors.New("form: invalid element argument")
	// ErrTypeMismatch is returned by Add when the constructed element is not
	// of the requested Go type.
	ErrTypeMismatch = errors.New("form: element type mismatch")
	// ErrNameRequired is returned when an element is added without a name.
	ErrNameRequired = errors.New("form: element name is required")
)

// ParseType resolves a type tag case-insensitively.
func ParseType(tag string) (Type, error) {
	candidate := Type(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := constructors[candidate]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownElementType, tag)
	}
	return candidate, nil
}

// Types returns every registered type tag in declaration order.
func Types() []Type {
	return []Type{TypeText, TypeInteger, TypePassword, TypeHidden, TypeDropdown}
}
