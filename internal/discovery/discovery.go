package discovery

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/beangen/internal/annotations"
	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/models"
	"github.com/toyz/beangen/internal/parser"
)

// TemplateSuffix is stripped from a marked class name to form the generated name
const TemplateSuffix = "Template"

// Target is a generation target together with the class it was read from
type Target struct {
	models.GenerationTarget
	Class    string
	Location errors.SourceLocation
}

// Warning is a non-fatal discovery finding
type Warning struct {
	Message  string
	Location errors.SourceLocation
}

func (w Warning) String() string {
	if w.Location.IsEmpty() {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Location, w.Message)
}

// Result is everything discovered in one source file. Errors are per class.
type Result struct {
	Targets  []Target
	Errors   []errors.BeanError
	Warnings []Warning
}

// HasErrors reports whether any class failed
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Merge appends other to r
func (r *Result) Merge(other Result) {
	r.Targets = append(r.Targets, other.Targets...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Discoverer turns parsed classes carrying @Bean or @BeanTemplate into generation targets
type Discoverer struct {
	resolver *annotations.Resolver
}

// NewDiscoverer creates a discoverer; a nil registry means annotations.DefaultRegistry
func NewDiscoverer(registry annotations.AnnotationRegistry) *Discoverer {
	return &Discoverer{resolver: annotations.NewResolver(registry)}
}

// Discover inspects every class in file, nested ones included
func (d *Discoverer) Discover(file *parser.SourceFile) Result {
	var result Result
	for _, class := range file.AllClasses() {
		target, warnings, errs := d.discoverClass(file, class)
		result.Warnings = append(result.Warnings, warnings...)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		if target != nil {
			result.Targets = append(result.Targets, *target)
		}
	}
	return result
}

// classScan accumulates the findings for one class
type classScan struct {
	d        *Discoverer
	file     string
	imports  annotations.Imports
	errs     []errors.BeanError
	warnings []Warning
}

func (s *classScan) resolve(node *annotations.Annotation) *annotations.ParsedAnnotation {
	parsed, ok, err := s.d.resolver.ResolveIn(node, s.file, s.imports)
	if !ok {
		return nil
	}
	if err != nil {
		s.fail(err)
		return nil
	}
	return parsed
}

func (s *classScan) fail(err error) {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		s.errs = append(s.errs, multi.Errors...)
		return
	}
	var beanErr errors.BeanError
	if stderrors.As(err, &beanErr) {
		s.errs = append(s.errs, beanErr)
		return
	}
	s.errs = append(s.errs, errors.Wrap(errors.UnknownErrorCode, "discovery failed", err))
}

func (s *classScan) warn(loc errors.SourceLocation, format string, args ...interface{}) {
	s.warnings = append(s.warnings, Warning{Message: fmt.Sprintf(format, args...), Location: loc})
}

func (d *Discoverer) discoverClass(file *parser.SourceFile, class *parser.ClassFacts) (*Target, []Warning, []errors.BeanError) {
	scan := &classScan{d: d, file: file.Path, imports: importsOf(file)}

	var markers []*annotations.ParsedAnnotation
	for _, node := range class.Annotations {
		parsed := scan.resolve(node)
		if parsed == nil {
			continue
		}
		switch parsed.Type {
		case annotations.BeanAnnotation, annotations.BeanTemplateAnnotation:
			markers = append(markers, parsed)
		case annotations.BuilderAnnotation:
			scan.warn(parsed.Location, "@Builder on class '%s' has no effect; annotate a constructor instead", class.Name)
		}
	}

	if len(scan.errs) > 0 {
		return nil, scan.warnings, scan.errs
	}
	if len(markers) == 0 {
		return nil, scan.warnings, nil
	}
	if len(markers) > 1 {
		return nil, scan.warnings, []errors.BeanError{errors.NewConflictingMarkersError(class.QualifiedName, class.Location)}
	}
	if class.IsNested() {
		return nil, scan.warnings, []errors.BeanError{errors.NewInnerClassError(class.QualifiedName, class.Location)}
	}
	marker := markers[0]

	name, err := targetName(file.Package, class, marker)
	if err != nil {
		return nil, scan.warnings, []errors.BeanError{err}
	}

	builder := models.NewTargetBuilder(name, class.QualifiedName).
		WithTypeParameters(class.TypeParameters...)
	if marker.Type == annotations.BeanTemplateAnnotation {
		builder.AsEntity(marker.GetString("name"))
	} else {
		builder.WithSetters(marker.GetBool("setters", true))
	}

	for _, ctor := range scan.constructors(class, marker.GetBool("noArgsConstructor")) {
		if ctor.UsedByBuilder {
			builder.WithBuilderConstructor(ctor.AccessModifier, ctor.Parameters...)
		} else {
			builder.WithConstructor(ctor.AccessModifier, ctor.Parameters...)
		}
	}

	for _, p := range properties(class) {
		builder.WithPropertySpec(p)
	}

	if len(scan.errs) > 0 {
		return nil, scan.warnings, scan.errs
	}

	return &Target{
		GenerationTarget: builder.Build(),
		Class:            class.QualifiedName,
		Location:         class.Location,
	}, scan.warnings, nil
}

// targetName applies the typeName attribute, then the Template suffix convention
func targetName(pkg string, class *parser.ClassFacts, marker *annotations.ParsedAnnotation) (string, errors.BeanError) {
	if typeName := marker.GetString("typeName"); typeName != "" {
		if strings.Contains(typeName, ".") {
			return typeName, nil
		}
		return models.QualifiedName(pkg, typeName), nil
	}

	if strings.HasSuffix(class.Name, TemplateSuffix) && class.Name != TemplateSuffix {
		return strings.TrimSuffix(class.QualifiedName, TemplateSuffix), nil
	}

	return "", errors.NewTargetNameError(class.QualifiedName, TemplateSuffix, class.Location)
}

// constructors returns the non-private constructors in declaration order
func (s *classScan) constructors(class *parser.ClassFacts, noArgs bool) []models.ConstructorSpec {
	if len(class.Constructors) == 0 {
		// the implicit constructor takes the access of its class
		implicit := models.ConstructorSpec{AccessModifier: models.AccessPackagePrivate}
		if class.Modifiers.Has("public") {
			implicit.AccessModifier = models.AccessPublic
		}
		return []models.ConstructorSpec{implicit}
	}

	var (
		specs      []models.ConstructorSpec
		hasNoArgs  bool
		builderLoc *errors.SourceLocation
	)

	for _, ctor := range class.Constructors {
		marked := false
		for _, node := range ctor.Annotations {
			if parsed := s.resolve(node); parsed != nil && parsed.Type == annotations.BuilderAnnotation {
				marked = true
			}
		}

		if ctor.Modifiers.Has("private") {
			if marked {
				s.warn(ctor.Location, "@Builder on a private constructor of '%s' is ignored", class.Name)
			}
			continue
		}

		if marked && builderLoc != nil {
			s.warn(ctor.Location, "'%s' has more than one @Builder constructor; using the one at line %d",
				class.Name, builderLoc.Line)
			marked = false
		}
		if marked {
			loc := ctor.Location
			builderLoc = &loc
		}

		params := make([]models.VariableSpec, len(ctor.Params))
		copy(params, ctor.Params)
		specs = append(specs, models.ConstructorSpec{
			AccessModifier: accessOf(ctor.Modifiers),
			Parameters:     params,
			UsedByBuilder:  marked,
		})
		hasNoArgs = hasNoArgs || len(params) == 0
	}

	if noArgs && !hasNoArgs {
		specs = append(specs, models.DefaultConstructor())
	}
	return specs
}

// importsOf collects the single-type imports of file
func importsOf(file *parser.SourceFile) annotations.Imports {
	imports := make(annotations.Imports)
	for _, imp := range file.Imports {
		if imp.Static || imp.OnDemand {
			continue
		}
		imports[imp.Path[strings.LastIndexByte(imp.Path, '.')+1:]] = imp.Path
	}
	return imports
}

func accessOf(mods parser.Modifiers) models.AccessModifier {
	switch {
	case mods.Has("protected"):
		return models.AccessProtected
	case mods.Has("public"):
		return models.AccessPublic
	default:
		return models.AccessPackagePrivate
	}
}

// properties collects instance fields and downgrades the accessors already
// written by hand. Getters match by name only; setters also need the exact type.
func properties(class *parser.ClassFacts) []models.PropertySpec {
	set := models.NewPropertySet()
	for _, f := range class.Fields {
		if f.IsStatic() {
			continue
		}
		p := models.NewProperty(f.Name, f.Type)
		p.IsFinal = f.IsFinal()
		set.Put(p)
	}

	for _, m := range class.Methods {
		switch {
		case len(m.Params) == 0:
			if name, ok := accessorProperty(m.Name, "get"); ok {
				if p, found := set.Get(name); found {
					p.NeedsGetter = false
					set.Put(p)
				}
			}
		case len(m.Params) == 1:
			if name, ok := accessorProperty(m.Name, "set"); ok {
				if p, found := set.Get(name); found && p.Type == arrayType(m.Params[0].Type) {
					p.NeedsSetter = false
					set.Put(p)
				}
			}
		}
	}

	return set.All()
}

// arrayType reads a varargs parameter type as the array it receives
func arrayType(paramType string) string {
	if base, ok := strings.CutSuffix(paramType, "..."); ok {
		return base + "[]"
	}
	return paramType
}

// accessorProperty maps getX/setX to x by lower-casing the first character only
func accessorProperty(method, prefix string) (string, bool) {
	if len(method) <= len(prefix) || !strings.HasPrefix(method, prefix) {
		return "", false
	}
	rest := method[len(prefix):]
	r, size := utf8.DecodeRuneInString(rest)
	return string(unicode.ToLower(r)) + rest[size:], true
}
