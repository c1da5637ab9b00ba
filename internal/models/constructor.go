package models

// ConstructorSpec describes one constructor of the generated class that forwards to super
type ConstructorSpec struct {
	AccessModifier AccessModifier `json:"accessModifier"`
	Parameters     []VariableSpec `json:"parameters"`
	UsedByBuilder  bool           `json:"usedByBuilder,omitempty"`
}

// ParameterNames returns the parameter names in declaration order
func (c ConstructorSpec) ParameterNames() []string {
	names := make([]string, len(c.Parameters))
	for i, p := range c.Parameters {
		names[i] = p.Name
	}
	return names
}

// IsNoArgs reports whether the constructor takes no parameters
func (c ConstructorSpec) IsNoArgs() bool {
	return len(c.Parameters) == 0
}

// DefaultConstructor is the constructor emitted when a target declares none
func DefaultConstructor() ConstructorSpec {
	return ConstructorSpec{AccessModifier: AccessPublic}
}
