package models

import (
	"fmt"
	"strings"
)

// AccessModifier is the visibility keyword of a pass-through constructor
type AccessModifier int

const (
	AccessPublic AccessModifier = iota
	AccessProtected
	// AccessPackagePrivate renders without a keyword
	AccessPackagePrivate
)

// Keyword returns the Java keyword for the modifier, empty for package-private
func (m AccessModifier) Keyword() string {
	switch m {
	case AccessProtected:
		return "protected"
	case AccessPackagePrivate:
		return ""
	default:
		return "public"
	}
}

// String returns the name used in JSON models and diagnostics
func (m AccessModifier) String() string {
	if m == AccessPackagePrivate {
		return "package-private"
	}
	return m.Keyword()
}

// MarshalText implements encoding.TextMarshaler
func (m AccessModifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *AccessModifier) UnmarshalText(text []byte) error {
	parsed, err := ParseAccessModifier(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseAccessModifier parses public, protected or package-private; an empty string means public
func ParseAccessModifier(s string) (AccessModifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return AccessPublic, nil
	case "protected":
		return AccessProtected, nil
	case "package-private", "package", "default":
		return AccessPackagePrivate, nil
	default:
		return AccessPublic, fmt.Errorf("%w: %q", ErrInvalidAccessModifier, s)
	}
}

// VariableSpec is a named, typed slot: a constructor parameter or builder field.
// Type is an opaque Java type expression echoed verbatim.
type VariableSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
