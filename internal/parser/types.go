package parser

import "strings"

var primitiveTypes = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
}

// javaLangTypes are the java.lang names qualified without an import
var javaLangTypes = map[string]bool{
	"Boolean":          true,
	"Byte":             true,
	"Character":        true,
	"CharSequence":     true,
	"Class":            true,
	"Comparable":       true,
	"Double":           true,
	"Enum":             true,
	"Error":            true,
	"Exception":        true,
	"Float":            true,
	"Integer":          true,
	"Iterable":         true,
	"Long":             true,
	"Number":           true,
	"Object":           true,
	"Record":           true,
	"Runnable":         true,
	"RuntimeException": true,
	"Short":            true,
	"String":           true,
	"StringBuffer":     true,
	"StringBuilder":    true,
	"Thread":           true,
	"Throwable":        true,
	"Void":             true,
}

// typeScope resolves simple type names the way a compiler model prints them
type typeScope struct {
	pkg     string
	imports map[string]string
	local   map[string]bool
	vars    map[string]bool
}

func newTypeScope(pkg string, imports []Import, localClasses []string) *typeScope {
	s := &typeScope{
		pkg:     pkg,
		imports: make(map[string]string),
		local:   make(map[string]bool),
		vars:    make(map[string]bool),
	}
	for _, imp := range imports {
		if imp.Static || imp.OnDemand {
			continue
		}
		s.imports[imp.Path[strings.LastIndexByte(imp.Path, '.')+1:]] = imp.Path
	}
	for _, name := range localClasses {
		s.local[name] = true
	}
	return s
}

// with returns a child scope that also knows the given type variables and
// member types (simple name to qualified name)
func (s *typeScope) with(typeVars []string, members map[string]string) *typeScope {
	if len(typeVars) == 0 && len(members) == 0 {
		return s
	}
	child := *s
	if len(typeVars) > 0 {
		child.vars = make(map[string]bool, len(s.vars)+len(typeVars))
		for name := range s.vars {
			child.vars[name] = true
		}
		for _, name := range typeVars {
			child.vars[name] = true
		}
	}
	if len(members) > 0 {
		child.imports = make(map[string]string, len(s.imports)+len(members))
		for name, q := range s.imports {
			child.imports[name] = q
		}
		for name, q := range members {
			child.imports[name] = q
		}
	}
	return &child
}

func (s *typeScope) qualify(name string) string {
	switch {
	case primitiveTypes[name], s.vars[name]:
		return name
	case s.imports[name] != "":
		return s.imports[name]
	case s.local[name]:
		if s.pkg == "" {
			return name
		}
		return s.pkg + "." + name
	case javaLangTypes[name]:
		return "java.lang." + name
	default:
		return name
	}
}

// render prints a type reference
func (s *typeScope) render(t *typeRef) string {
	if t == nil {
		return ""
	}

	var sb strings.Builder
	for i, part := range t.Parts {
		if i == 0 {
			if len(t.Parts) == 1 {
				sb.WriteString(s.qualify(part.Name))
			} else {
				sb.WriteString(s.qualifyOuter(part.Name))
			}
		} else {
			sb.WriteByte('.')
			sb.WriteString(part.Name)
		}
		if part.Args != nil {
			sb.WriteString(s.renderArgs(part.Args))
		}
	}
	for range t.Dims {
		sb.WriteString("[]")
	}
	return sb.String()
}

// qualifyOuter handles the first segment of a dotted name: an imported or
// local outer class is qualified, anything else is taken to be a package
func (s *typeScope) qualifyOuter(name string) string {
	if s.vars[name] {
		return name
	}
	if q := s.imports[name]; q != "" {
		return q
	}
	if s.local[name] && s.pkg != "" {
		return s.pkg + "." + name
	}
	return name
}

func (s *typeScope) renderArgs(args *typeArgs) string {
	parts := make([]string, 0, len(args.Args))
	for _, arg := range args.Args {
		switch {
		case arg.Wildcard && arg.Bounded != nil:
			parts = append(parts, "? "+arg.Bound+" "+s.render(arg.Bounded))
		case arg.Wildcard:
			parts = append(parts, "?")
		default:
			parts = append(parts, s.render(arg.Type))
		}
	}
	return "<" + strings.Join(parts, ",") + ">"
}

func typeParamNames(tp *typeParams) []string {
	if tp == nil {
		return nil
	}
	names := make([]string, 0, len(tp.Params))
	for _, p := range tp.Params {
		names = append(names, p.Name)
	}
	return names
}
