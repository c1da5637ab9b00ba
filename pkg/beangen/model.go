// Package beangen provides public APIs for generating bean companion classes
// from a GenerationTarget model, independent of how the model was discovered.
package beangen

import (
	"github.com/toyz/beangen/internal/generator"
	"github.com/toyz/beangen/internal/models"
)

// Model types
type (
	GenerationTarget = models.GenerationTarget
	ConstructorSpec  = models.ConstructorSpec
	PropertySpec     = models.PropertySpec
	PropertySet      = models.PropertySet
	VariableSpec     = models.VariableSpec
	AccessModifier   = models.AccessModifier
	GeneratedSource  = models.GeneratedSource
	TargetBuilder    = models.TargetBuilder

	// Options controls indentation, line endings and the generated marker
	Options = generator.Options
)

// Constructor access levels
const (
	AccessPublic         = models.AccessPublic
	AccessProtected      = models.AccessProtected
	AccessPackagePrivate = models.AccessPackagePrivate
)

// DefaultOptions returns the standard emission settings
func DefaultOptions() Options {
	return generator.DefaultOptions()
}

// NewTargetBuilder starts a target for the generated class qualifiedName extending superclass
func NewTargetBuilder(qualifiedName, superclass string) *TargetBuilder {
	return models.NewTargetBuilder(qualifiedName, superclass)
}

// NewProperty returns a non-final property that needs both accessors
func NewProperty(name, typ string) PropertySpec {
	return models.NewProperty(name, typ)
}

// NewPropertySet builds an insertion-ordered property set
func NewPropertySet(props ...PropertySpec) PropertySet {
	return models.NewPropertySet(props...)
}

// Var returns a parameter declaration
func Var(name, typ string) VariableSpec {
	return models.Var(name, typ)
}

// Lines renders target as source lines without terminators
func Lines(target GenerationTarget, opts Options) []string {
	return generator.NewEmitter(opts).Lines(target)
}

// Render renders target as one source text with every line terminated
func Render(target GenerationTarget, opts Options) string {
	return generator.NewEmitter(opts).Render(target)
}

// Generate renders every target into a source file description, in order
func Generate(targets []GenerationTarget, opts Options) []*GeneratedSource {
	emitter := generator.NewEmitter(opts)

	sources := make([]*GeneratedSource, 0, len(targets))
	for _, t := range targets {
		src, _ := emitter.Generate(t)
		sources = append(sources, src)
	}
	return sources
}
