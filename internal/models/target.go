package models

import "strings"

// GenerationTarget is the complete description of one class to generate
type GenerationTarget struct {
	IsEntityStyle           bool              `json:"isEntityStyle,omitempty"`
	QualifiedName           string            `json:"qualifiedName"`
	SuperclassQualifiedName string            `json:"superclassQualifiedName"`
	EntityDisplayName       string            `json:"entityDisplayName,omitempty"`
	EmitSetters             bool              `json:"emitSetters"`
	TypeParameters          []string          `json:"typeParameters,omitempty"`
	Constructors            []ConstructorSpec `json:"constructors,omitempty"`
	Properties              PropertySet       `json:"properties"`
}

// PackageName returns the text before the last dot of a qualified name, or "" when there is none
func PackageName(qualifiedName string) string {
	i := strings.LastIndexByte(qualifiedName, '.')
	if i < 0 {
		return ""
	}
	return qualifiedName[:i]
}

// SingleName returns the text after the last dot of a qualified name, or the whole name
func SingleName(qualifiedName string) string {
	return qualifiedName[strings.LastIndexByte(qualifiedName, '.')+1:]
}

// QualifiedName joins a package and a simple name; an empty package yields the bare name
func QualifiedName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// PackageName returns the package of the generated class
func (t GenerationTarget) PackageName() string {
	return PackageName(t.QualifiedName)
}

// SingleName returns the simple name of the generated class
func (t GenerationTarget) SingleName() string {
	return SingleName(t.QualifiedName)
}

// InferredSuperclassReference is the simple superclass name when it shares the
// target's package, otherwise its qualified name
func (t GenerationTarget) InferredSuperclassReference() string {
	if PackageName(t.SuperclassQualifiedName) == t.PackageName() {
		return SingleName(t.SuperclassQualifiedName)
	}
	return t.SuperclassQualifiedName
}

// EffectiveConstructors returns the declared constructors, or the synthesized
// public no-arg constructor when none are declared
func (t GenerationTarget) EffectiveConstructors() []ConstructorSpec {
	if len(t.Constructors) == 0 {
		return []ConstructorSpec{DefaultConstructor()}
	}
	return t.Constructors
}

// BuilderConstructor returns the constructor backing the builder. A builder
// exists only when exactly one constructor is marked.
func (t GenerationTarget) BuilderConstructor() (ConstructorSpec, bool) {
	var found ConstructorSpec
	count := 0
	for _, c := range t.Constructors {
		if c.UsedByBuilder {
			found = c
			count++
		}
	}
	return found, count == 1
}

// BuilderName returns the simple name of the nested builder class
func (t GenerationTarget) BuilderName() string {
	return t.SingleName() + "Builder"
}

// Path returns the slash-separated source path of the generated class, e.g. com/x/Person.java
func (t GenerationTarget) Path() string {
	return strings.ReplaceAll(t.QualifiedName, ".", "/") + ".java"
}
