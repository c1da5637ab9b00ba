package models

// TargetBuilder provides a fluent interface for assembling a GenerationTarget
type TargetBuilder struct {
	target GenerationTarget
}

// NewTargetBuilder starts a plain bean target with setters enabled
func NewTargetBuilder(qualifiedName, superclass string) *TargetBuilder {
	return &TargetBuilder{
		target: GenerationTarget{
			QualifiedName:           qualifiedName,
			SuperclassQualifiedName: superclass,
			EmitSetters:             true,
		},
	}
}

// AsEntity switches the target to entity style, which always emits setters
func (b *TargetBuilder) AsEntity(displayName string) *TargetBuilder {
	b.target.IsEntityStyle = true
	b.target.EntityDisplayName = displayName
	b.target.EmitSetters = true
	return b
}

// WithSetters toggles setter emission
func (b *TargetBuilder) WithSetters(enabled bool) *TargetBuilder {
	b.target.EmitSetters = enabled
	return b
}

// WithTypeParameters appends class type parameter names
func (b *TargetBuilder) WithTypeParameters(names ...string) *TargetBuilder {
	b.target.TypeParameters = append(b.target.TypeParameters, names...)
	return b
}

// WithConstructor appends a constructor
func (b *TargetBuilder) WithConstructor(access AccessModifier, params ...VariableSpec) *TargetBuilder {
	b.target.Constructors = append(b.target.Constructors, ConstructorSpec{
		AccessModifier: access,
		Parameters:     params,
	})
	return b
}

// WithBuilderConstructor appends a constructor marked as the builder's target
func (b *TargetBuilder) WithBuilderConstructor(access AccessModifier, params ...VariableSpec) *TargetBuilder {
	b.target.Constructors = append(b.target.Constructors, ConstructorSpec{
		AccessModifier: access,
		Parameters:     params,
		UsedByBuilder:  true,
	})
	return b
}

// WithProperty adds a property needing both accessors
func (b *TargetBuilder) WithProperty(name, typ string) *TargetBuilder {
	b.target.Properties.Put(NewProperty(name, typ))
	return b
}

// WithFinalProperty adds a final property
func (b *TargetBuilder) WithFinalProperty(name, typ string) *TargetBuilder {
	p := NewProperty(name, typ)
	p.IsFinal = true
	b.target.Properties.Put(p)
	return b
}

// WithPropertySpec adds a fully specified property
func (b *TargetBuilder) WithPropertySpec(p PropertySpec) *TargetBuilder {
	b.target.Properties.Put(p)
	return b
}

// Build returns the assembled target; the builder may keep being used afterwards
func (b *TargetBuilder) Build() GenerationTarget {
	t := b.target
	t.TypeParameters = append([]string(nil), b.target.TypeParameters...)
	t.Constructors = append([]ConstructorSpec(nil), b.target.Constructors...)
	return t
}

// Var is shorthand for a VariableSpec
func Var(name, typ string) VariableSpec {
	return VariableSpec{Name: name, Type: typ}
}
