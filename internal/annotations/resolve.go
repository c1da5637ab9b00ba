package annotations

import (
	"fmt"

	"github.com/toyz/beangen/internal/errors"
)

// Resolver turns grammar nodes into ParsedAnnotations checked against a registry
type Resolver struct {
	registry AnnotationRegistry
}

// NewResolver creates a resolver; a nil registry means DefaultRegistry
func NewResolver(registry AnnotationRegistry) *Resolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Resolver{registry: registry}
}

// Resolve converts node when it names a registered marker. ok is false for
// annotations beangen does not handle (e.g. @Override). Attribute problems are
// returned as errors with the annotation's source location.
func (r *Resolver) Resolve(node *Annotation, file string) (parsed *ParsedAnnotation, ok bool, err error) {
	return r.ResolveIn(node, file, nil)
}

// ResolveIn is Resolve for an annotation written in a file with the given
// imports; a simple name imported from another package is not a marker.
func (r *Resolver) ResolveIn(node *Annotation, file string, imports Imports) (parsed *ParsedAnnotation, ok bool, err error) {
	qualified := imports.Qualify(node.QualifiedName())
	if !IsMarkerName(qualified) {
		return nil, false, nil
	}
	annotationType, typeErr := ParseAnnotationType(qualified)
	if typeErr != nil {
		return nil, false, nil
	}
	schema, schemaErr := r.registry.GetSchema(annotationType)
	if schemaErr != nil {
		return nil, false, nil
	}

	loc := SourceLocation{File: file, Line: node.Pos.Line, Column: node.Pos.Column}
	if loc.File == "" {
		loc.File = node.Pos.Filename
	}

	parsed = &ParsedAnnotation{
		Type:       annotationType,
		Name:       node.QualifiedName(),
		Parameters: make(map[string]interface{}),
		Explicit:   make(map[string]bool),
		Location:   loc,
	}

	var errs *errors.MultipleErrors
	for _, pair := range argumentPairs(node) {
		if bErr := r.applyAttribute(parsed, schema, pair.key, pair.value, loc); bErr != nil {
			errors.AddToMultiple(&errs, bErr)
		}
	}

	for name, spec := range schema.Parameters {
		if _, exists := parsed.Parameters[name]; !exists && spec.DefaultValue != nil {
			parsed.Parameters[name] = spec.DefaultValue
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return parsed, true, err
	}
	return parsed, true, nil
}

type attribute struct {
	key   string
	value *ElementValue
}

// argumentPairs flattens both argument forms; a lone value is the 'value' attribute
func argumentPairs(node *Annotation) []attribute {
	if node.Args == nil {
		return nil
	}
	if node.Args.Value != nil {
		return []attribute{{key: "value", value: node.Args.Value}}
	}
	pairs := make([]attribute, len(node.Args.Pairs))
	for i, p := range node.Args.Pairs {
		pairs[i] = attribute{key: p.Key, value: p.Value}
	}
	return pairs
}

func (r *Resolver) applyAttribute(parsed *ParsedAnnotation, schema AnnotationSchema, key string, value *ElementValue, loc SourceLocation) errors.BeanError {
	annotation := schema.Type.String()

	spec, known := schema.Parameters[key]
	if !known {
		return errors.NewAnnotationSchemaError(fmt.Sprintf("unknown attribute '%s'", key), loc, annotation).
			WithParameterName(key)
	}
	if parsed.Explicit[key] {
		return errors.NewAnnotationValidationError(key, "a single value", "duplicate attribute", loc, annotation)
	}

	raw, err := value.Value()
	if err != nil {
		return errors.NewAnnotationSyntaxError(err.Error(), loc, annotation)
	}

	converted, err := convertValue(spec.Type, raw)
	if err != nil {
		return errors.NewAnnotationValidationError(key, spec.Type.String(), fmt.Sprintf("%v", raw), loc, annotation)
	}

	if spec.Validator != nil {
		if err := spec.Validator(converted); err != nil {
			return errors.NewAnnotationValidationError(key, "valid value", err.Error(), loc, annotation)
		}
	}

	parsed.Parameters[key] = converted
	parsed.Explicit[key] = true
	return nil
}

func convertValue(paramType ParameterType, raw interface{}) (interface{}, error) {
	switch paramType {
	case StringType:
		return ConvertToString(raw)
	case BoolType:
		return ConvertToBool(raw)
	case IntType:
		return ConvertToInt(raw)
	case StringSliceType:
		return ConvertToStringSlice(raw)
	default:
		return nil, fmt.Errorf("unsupported parameter type %d", paramType)
	}
}
