package errors

import (
	"fmt"
	"strings"
)

// Annotations-specific error constructors. Annotation names are passed as their
// simple Java names (Bean, BeanTemplate, Builder) so this package stays free of
// imports from the annotations package.

// NewAnnotationValidationError creates a validation error specific to annotations
func NewAnnotationValidationError(parameter, expected, actual string, loc SourceLocation, annotation string) *ValidationError {
	err := NewValidationError(parameter, expected, actual)
	err.BaseError.Code = AnnotationErrorCode
	err.WithLocation(loc)
	err.WithContext("annotation", annotation)

	suggestion := generateValidationSuggestion(parameter, expected, actual, annotation)
	if suggestion != "" {
		err.WithSuggestion(suggestion)
	}

	return err
}

// NewAnnotationSyntaxError creates a syntax error specific to annotations
func NewAnnotationSyntaxError(message string, loc SourceLocation, context string) *SyntaxError {
	err := NewSyntaxError(message)
	err.WithLocation(loc)
	err.BaseError.WithContext("parse_context", context)

	suggestion := generateSyntaxSuggestion(message)
	if suggestion != "" {
		err.WithSuggestion(suggestion)
	}

	return err
}

// NewAnnotationSchemaError creates a schema error specific to annotations
func NewAnnotationSchemaError(message string, loc SourceLocation, annotation string) *SchemaError {
	err := NewSchemaErrorWithDetails(annotation, message)
	err.WithLocation(loc)

	suggestion := generateSchemaSuggestion(message, annotation)
	if suggestion != "" {
		err.BaseError.WithSuggestion(suggestion)
	}

	return err
}

// generateSyntaxSuggestion provides context-aware suggestions for syntax errors
func generateSyntaxSuggestion(msg string) string {
	msg = strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "unterminated"):
		return "Make sure string literals are closed with a matching double quote"
	case strings.Contains(msg, "unexpected token"):
		return "Annotation format: @Bean, @Bean(typeName = \"Person\") or @BeanTemplate(name = \"person\")"
	default:
		return "Check annotation syntax: @Name or @Name(key = value, ...)"
	}
}

// generateValidationSuggestion provides suggestions for attribute validation errors
func generateValidationSuggestion(parameter, expected, actual, annotation string) string {
	switch parameter {
	case "typeName":
		return "typeName should be a string literal naming the generated class. Example: typeName = \"Person\""
	case "noArgsConstructor":
		return "noArgsConstructor is a boolean. Example: noArgsConstructor = true"
	case "setters":
		return "setters is a boolean. Example: setters = false"
	case "name":
		return "name should be a string literal with the entity name. Example: name = \"person\""
	default:
		return fmt.Sprintf("@%s attribute '%s' should be %s, got '%s'", annotation, parameter, expected, actual)
	}
}

// generateSchemaSuggestion provides context-aware suggestions for schema errors
func generateSchemaSuggestion(msg, annotation string) string {
	msg = strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "unknown attribute"):
		switch annotation {
		case "Bean":
			return "@Bean supports: typeName, noArgsConstructor, setters"
		case "BeanTemplate":
			return "@BeanTemplate supports: name, typeName, noArgsConstructor"
		case "Builder":
			return "@Builder takes no attributes"
		}
		return "Check the annotation declaration for supported attributes"
	case strings.Contains(msg, "schema not found"):
		return fmt.Sprintf("Annotation '@%s' is not registered", annotation)
	default:
		return "Check annotation schema and attribute definitions"
	}
}
