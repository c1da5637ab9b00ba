package annotations

import (
	"fmt"
	"strings"

	"github.com/toyz/beangen/internal/errors"
)

// AnnotationType represents the type of marker annotation
type AnnotationType int

const (
	BeanAnnotation AnnotationType = iota
	BeanTemplateAnnotation
	BuilderAnnotation
)

// String returns the Java simple name of the annotation
func (a AnnotationType) String() string {
	switch a {
	case BeanAnnotation:
		return "Bean"
	case BeanTemplateAnnotation:
		return "BeanTemplate"
	case BuilderAnnotation:
		return "Builder"
	default:
		return "unknown"
	}
}

// MarkerPackage is the Java package declaring @Bean, @BeanTemplate and @Builder
const MarkerPackage = "au.id.villar.utils.beangen"

// Imports maps simple names to the qualified names a file imports them as
type Imports map[string]string

// Qualify returns the name an annotation written as name refers to. Simple
// names without a single-type import stay simple.
func (i Imports) Qualify(name string) string {
	if strings.IndexByte(name, '.') >= 0 {
		return name
	}
	if q, ok := i[name]; ok {
		return q
	}
	return name
}

// IsMarkerName reports whether name can denote a beangen marker: a simple
// name, or a name qualified with MarkerPackage. @lombok.Builder is not one.
func IsMarkerName(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	return dot < 0 || name[:dot] == MarkerPackage
}

// ParseAnnotationType recognizes an annotation by simple name, or by a
// qualified name whose last segment is a known marker
func ParseAnnotationType(name string) (AnnotationType, error) {
	simple := name[strings.LastIndexByte(name, '.')+1:]
	switch simple {
	case "Bean":
		return BeanAnnotation, nil
	case "BeanTemplate":
		return BeanTemplateAnnotation, nil
	case "Builder":
		return BuilderAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", name)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation = errors.SourceLocation

// ParsedAnnotation represents a fully parsed annotation with type-safe parameters
type ParsedAnnotation struct {
	Type       AnnotationType         // Annotation type enum
	Name       string                 // Name as written, possibly qualified
	Parameters map[string]interface{} // Typed parameters, explicit and defaulted
	Explicit   map[string]bool        // Parameters present in the source
	Location   SourceLocation         // Source location
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(paramName string, defaultValue ...bool) bool {
	if value, exists := p.Parameters[paramName]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetInt returns an integer parameter value with optional default
func (p *ParsedAnnotation) GetInt(paramName string, defaultValue ...int) int {
	if value, exists := p.Parameters[paramName]; exists {
		if intValue, ok := value.(int); ok {
			return intValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// HasParameter reports whether the parameter was written in the source
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	return p.Explicit[paramName]
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
	IntType
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "boolean"
	case IntType:
		return "int"
	case StringSliceType:
		return "string[]"
	default:
		return "unknown"
	}
}

// ParameterSpec describes one annotation parameter
type ParameterSpec struct {
	Type         ParameterType           // Parameter type
	DefaultValue interface{}             // Default value if not provided
	Description  string                  // Parameter description
	Validator    func(interface{}) error // Custom validator function
}

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Description string                   // Human-readable description
	Parameters  map[string]ParameterSpec // Parameter specifications
	Examples    []string                 // Usage examples
}
