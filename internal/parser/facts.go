package parser

import (
	"github.com/toyz/beangen/internal/annotations"
	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/models"
)

// SourceFile holds everything read from one Java compilation unit
type SourceFile struct {
	Path    string
	Package string
	Imports []Import
	Classes []*ClassFacts
}

// Import is a single import declaration
type Import struct {
	Path     string // dotted name without the trailing ".*"
	Static   bool
	OnDemand bool
}

// Modifiers are the keyword modifiers of a declaration in source order
type Modifiers []string

// Has reports whether keyword is present
func (m Modifiers) Has(keyword string) bool {
	for _, mod := range m {
		if mod == keyword {
			return true
		}
	}
	return false
}

// ClassFacts describes a class declaration
type ClassFacts struct {
	Name           string
	QualifiedName  string
	Location       errors.SourceLocation
	Modifiers      Modifiers
	Annotations    []*annotations.Annotation
	TypeParameters []string
	Superclass     string
	Fields         []FieldFacts
	Constructors   []ExecutableFacts
	Methods        []ExecutableFacts
	Nested         []*ClassFacts

	// Enclosing is the qualified name of the enclosing class, empty for top-level classes
	Enclosing string
}

// IsNested reports whether the class is declared inside another class
func (c *ClassFacts) IsNested() bool {
	return c.Enclosing != ""
}

// FieldFacts describes one field declarator
type FieldFacts struct {
	Name      string
	Type      string
	Modifiers Modifiers
	Location  errors.SourceLocation
}

// IsStatic reports whether the field is static
func (f FieldFacts) IsStatic() bool { return f.Modifiers.Has("static") }

// IsFinal reports whether the field is final
func (f FieldFacts) IsFinal() bool { return f.Modifiers.Has("final") }

// ExecutableFacts describes a constructor or a method
type ExecutableFacts struct {
	Name        string
	Modifiers   Modifiers
	Annotations []*annotations.Annotation
	Params      []models.VariableSpec
	Location    errors.SourceLocation
}

// HasAnnotation reports whether an annotation with the given simple name is present
func (e ExecutableFacts) HasAnnotation(simpleName string) bool {
	for _, a := range e.Annotations {
		if a.SimpleName() == simpleName {
			return true
		}
	}
	return false
}

// AllClasses returns top-level classes followed by their nested classes, depth first
func (f *SourceFile) AllClasses() []*ClassFacts {
	var out []*ClassFacts
	var walk func(classes []*ClassFacts)
	walk = func(classes []*ClassFacts) {
		for _, c := range classes {
			out = append(out, c)
			walk(c.Nested)
		}
	}
	walk(f.Classes)
	return out
}
