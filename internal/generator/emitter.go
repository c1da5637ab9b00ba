package generator

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/beangen/internal/models"
)

// CodeGenerator turns a generation target into a source file
type CodeGenerator interface {
	Generate(target models.GenerationTarget) (*models.GeneratedSource, error)
}

// Emitter renders GenerationTargets as Java source. It holds no mutable state
// and is safe for concurrent use.
type Emitter struct {
	opts Options
}

// NewEmitter creates an emitter; empty option fields take their defaults
func NewEmitter(opts Options) *Emitter {
	return &Emitter{opts: opts.withDefaults()}
}

// Options returns the effective options
func (e *Emitter) Options() Options {
	return e.opts
}

// Lines renders target as ordered source lines without line terminators
func (e *Emitter) Lines(target models.GenerationTarget) []string {
	w := newSourceWriter(e.opts.Indent)

	e.writePackage(w, target)
	e.writeImports(w, target)
	e.writeClassHeader(w, target)
	e.writeConstructors(w, target)
	e.writeAccessors(w, target)
	e.writeBuilder(w, target)
	w.line(0, "}")

	return w.lines
}

// Render renders target as one string with every line terminated
func (e *Emitter) Render(target models.GenerationTarget) string {
	lines := e.Lines(target)

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString(e.opts.LineEnding)
	}
	return sb.String()
}

// Generate implements CodeGenerator. Emission itself cannot fail.
func (e *Emitter) Generate(target models.GenerationTarget) (*models.GeneratedSource, error) {
	return &models.GeneratedSource{
		QualifiedName: target.QualifiedName,
		Path:          target.Path(),
		Content:       e.Render(target),
	}, nil
}

func (e *Emitter) writePackage(w *sourceWriter, t models.GenerationTarget) {
	if pkg := t.PackageName(); pkg != "" {
		w.linef(0, "package %s;", pkg)
		w.blank()
	}
}

func (e *Emitter) writeImports(w *sourceWriter, t models.GenerationTarget) {
	imports := []string{e.opts.GeneratedImport}
	if t.IsEntityStyle {
		imports = append(imports, e.opts.EntityImport)
	}
	sort.Strings(imports)

	for _, imp := range imports {
		w.linef(0, "import %s;", imp)
	}
	w.blank()
}

func (e *Emitter) writeClassHeader(w *sourceWriter, t models.GenerationTarget) {
	w.line(0, e.opts.Marker())
	if t.IsEntityStyle {
		if t.EntityDisplayName != "" {
			w.linef(0, `@Entity(name="%s")`, t.EntityDisplayName)
		} else {
			w.line(0, "@Entity")
		}
	}
	w.linef(0, "public class %s%s extends %s {",
		t.SingleName(), typeParams(t.TypeParameters), t.InferredSuperclassReference())
}

func (e *Emitter) writeConstructors(w *sourceWriter, t models.GenerationTarget) {
	name := t.SingleName()
	for _, c := range t.EffectiveConstructors() {
		w.blank()
		header := name + "(" + declarations(c.Parameters) + ")"
		if kw := c.AccessModifier.Keyword(); kw != "" {
			header = kw + " " + header
		}
		w.block(1, header, "super("+strings.Join(c.ParameterNames(), ", ")+");")
	}
}

func (e *Emitter) writeAccessors(w *sourceWriter, t models.GenerationTarget) {
	for _, p := range t.Properties.All() {
		if p.NeedsGetter {
			w.blank()
			w.block(1, "public "+p.Type+" get"+capitalize(p.Name)+"()",
				"return "+p.Name+";")
		}
		if !p.IsFinal && p.NeedsSetter && t.EmitSetters {
			w.blank()
			w.block(1, "public void set"+capitalize(p.Name)+"("+p.Type+" "+p.Name+")",
				"this."+p.Name+" = "+p.Name+";")
		}
	}
}

func (e *Emitter) writeBuilder(w *sourceWriter, t models.GenerationTarget) {
	ctor, ok := t.BuilderConstructor()
	if !ok {
		return
	}

	name := t.SingleName()
	builder := t.BuilderName()
	args := strings.Join(ctor.ParameterNames(), ", ")

	w.blank()
	w.blank()
	w.linef(1, "public static class %s%s {", builder, typeParams(t.TypeParameters))

	for _, p := range ctor.Parameters {
		w.blank()
		w.linef(2, "private %s %s;", fieldType(p.Type), p.Name)
	}

	for _, p := range ctor.Parameters {
		w.blank()
		w.block(2, "public "+builder+" "+p.Name+"("+p.Type+" "+p.Name+")",
			"this."+p.Name+" = "+p.Name+";",
			"return this;")
	}

	w.blank()
	w.block(2, "public "+name+" build()", "return new "+name+"("+args+");")
	w.line(1, "}")

	w.blank()
	w.block(1, "public static "+builder+" builder()", "return new "+builder+"();")

	w.blank()
	w.linef(1, "public %s toBuilder() {", builder)
	w.linef(2, "return new %s()", builder)
	chain := make([]string, len(ctor.Parameters))
	for i, p := range ctor.Parameters {
		chain[i] = strings.Repeat(e.opts.Indent, 3) + "." + p.Name + "(" + p.Name + ")"
	}
	if len(chain) == 0 {
		w.line(0, ";")
	} else {
		chain[len(chain)-1] += ";"
		w.lines = append(w.lines, chain...)
	}
	w.line(1, "}")
}

// fieldType turns a varargs parameter type into the array type a field can hold
func fieldType(paramType string) string {
	if base, ok := strings.CutSuffix(paramType, "..."); ok {
		return base + "[]"
	}
	return paramType
}

// typeParams renders <A, B>, or nothing for an empty list
func typeParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

// declarations renders "t1 n1, t2 n2"
func declarations(params []models.VariableSpec) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

// capitalize upper-cases the first character and leaves the rest unchanged
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
