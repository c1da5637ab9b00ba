package errors

import "fmt"

// ValidationError represents a validation error with detailed context
type ValidationError struct {
	*BaseError
	Field    string // field that failed validation
	Expected string // what was expected
	Actual   string // what was provided
}

// NewValidationError creates a new validation error
func NewValidationError(field, expected, actual string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': expected %s, got %s", field, expected, actual)

	return &ValidationError{
		BaseError: New(ValidationErrorCode, message),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}

// WithLocation adds location information to the error
func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithContext adds context data to the error
func (e *ValidationError) WithContext(key string, value interface{}) *ValidationError {
	e.BaseError.WithContext(key, value)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SyntaxError represents a syntax parsing error
type SyntaxError struct {
	*BaseError
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithCause adds an underlying error cause
func (e *SyntaxError) WithCause(cause error) *SyntaxError {
	e.BaseError.WithCause(cause)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *SyntaxError) WithSuggestion(suggestion string) *SyntaxError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SchemaError represents a schema-related error
type SchemaError struct {
	*BaseError
	SchemaName    string // name of the schema
	ParameterName string // parameter that caused the error (if applicable)
}

// NewSchemaErrorWithDetails creates a schema error with detailed information
func NewSchemaErrorWithDetails(schemaName, message string) *SchemaError {
	return &SchemaError{
		BaseError:  New(SchemaErrorCode, fmt.Sprintf("schema error in '%s': %s", schemaName, message)),
		SchemaName: schemaName,
	}
}

// WithParameterName sets the parameter that caused the error
func (e *SchemaError) WithParameterName(paramName string) *SchemaError {
	e.ParameterName = paramName
	return e
}

// GenerationError represents an error during code generation
type GenerationError struct {
	*BaseError
	TargetName string // qualified name of the class being generated
	TargetFile string // target file being written
	Stage      string // stage of generation where error occurred
}

// WithStage records the generation stage, also shown as report context
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	e.BaseError.WithContext("stage", stage)
	return e
}
