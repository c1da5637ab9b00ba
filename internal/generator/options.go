package generator

// Default emission settings
const (
	DefaultIndent          = "\t"
	DefaultLineEnding      = "\n"
	DefaultGeneratorName   = "Simple bean generator"
	DefaultGeneratedImport = "javax.annotation.processing.Generated"
	DefaultEntityImport    = "javax.persistence.Entity"
)

// Options controls the textual details of emitted source
type Options struct {
	Indent          string // one indentation unit
	LineEnding      string // appended to every line by Render
	GeneratorName   string // value of the @Generated marker
	GeneratedImport string // import providing @Generated
	EntityImport    string // import providing @Entity for entity-style targets
}

// DefaultOptions returns the standard settings
func DefaultOptions() Options {
	return Options{
		Indent:          DefaultIndent,
		LineEnding:      DefaultLineEnding,
		GeneratorName:   DefaultGeneratorName,
		GeneratedImport: DefaultGeneratedImport,
		EntityImport:    DefaultEntityImport,
	}
}

// withDefaults fills empty fields from DefaultOptions
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Indent == "" {
		o.Indent = d.Indent
	}
	if o.LineEnding == "" {
		o.LineEnding = d.LineEnding
	}
	if o.GeneratorName == "" {
		o.GeneratorName = d.GeneratorName
	}
	if o.GeneratedImport == "" {
		o.GeneratedImport = d.GeneratedImport
	}
	if o.EntityImport == "" {
		o.EntityImport = d.EntityImport
	}
	return o
}

// Marker returns the @Generated line that identifies files written by the emitter
func (o Options) Marker() string {
	return `@Generated("` + o.withDefaults().GeneratorName + `")`
}
