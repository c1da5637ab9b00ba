package errors

import "fmt"

// Discovery errors: raised per class, never abort sibling classes.

// NewTargetNameError reports a marked class whose generated name cannot be inferred
func NewTargetNameError(className, suffix string, loc SourceLocation) *BaseError {
	return Newf(ConfigurationErrorCode,
		"cannot infer generated type name for '%s': it has no typeName attribute and does not end with '%s'", className, suffix).
		WithLocation(loc).
		WithContext("class", className).
		WithSuggestions(
			fmt.Sprintf("Rename the class so it ends with '%s'", suffix),
			"Set the typeName attribute, for example @Bean(typeName = \"Person\")",
		)
}

// NewInnerClassError reports a marked class declared inside another type
func NewInnerClassError(className string, loc SourceLocation) *BaseError {
	return Newf(UnsupportedErrorCode, "inner classes not supported: '%s'", className).
		WithLocation(loc).
		WithContext("class", className).
		WithSuggestion("Move the class to its own top-level declaration")
}

// NewConflictingMarkersError reports a class carrying both @Bean and @BeanTemplate
func NewConflictingMarkersError(className string, loc SourceLocation) *BaseError {
	return Newf(ConfigurationErrorCode, "class '%s' is annotated with both @Bean and @BeanTemplate", className).
		WithLocation(loc).
		WithContext("class", className).
		WithSuggestion("Keep exactly one of @Bean or @BeanTemplate")
}

// NewDuplicateTargetError reports two marked classes that would produce the same generated class
func NewDuplicateTargetError(targetName, firstClass, secondClass string, loc SourceLocation) *BaseError {
	return Newf(ConfigurationErrorCode, "generated class '%s' is produced by both '%s' and '%s'",
		targetName, firstClass, secondClass).
		WithLocation(loc).
		WithContext("target", targetName).
		WithContext("class", secondClass).
		WithSuggestion("Give one of the classes a distinct typeName")
}
