package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/beangen/internal/annotations"
	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/models"
	"github.com/toyz/beangen/internal/utils"
)

// Parser reads Java compilation units into SourceFile facts. Parsed files are
// cached by path and reused until the file's modification time or size changes.
type Parser struct {
	grammar *participle.Parser[compilationUnit]
	reader  *utils.FileReader
	cache   *utils.Cache[string, *SourceFile]
}

// NewParser creates a parser reading through reader (nil creates a private one)
func NewParser(reader *utils.FileReader) *Parser {
	if reader == nil {
		reader = utils.NewFileReader()
	}
	return &Parser{
		grammar: participle.MustBuild[compilationUnit](annotations.Options()...),
		reader:  reader,
		cache:   utils.NewCache[string, *SourceFile](),
	}
}

// Reader returns the file reader used by ParseFile
func (p *Parser) Reader() *utils.FileReader {
	return p.reader
}

// ParseFile parses the file at path, using the cache when the file is unchanged
func (p *Parser) ParseFile(path string) (*SourceFile, error) {
	return p.cache.GetOrLoad(path, path, func() (*SourceFile, error) {
		src, err := p.reader.ReadFile(path)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", path, err)
		}
		return p.ParseSource(path, src)
	})
}

// ParseSource parses Java source text; filename is used for locations only
func (p *Parser) ParseSource(filename, src string) (*SourceFile, error) {
	unit, err := p.grammar.ParseString(filename, src)
	if err != nil {
		return nil, annotations.SyntaxErrorFrom(err, filename, "compilation unit")
	}
	return newFactBuilder(filename, unit).build(), nil
}

// Invalidate drops the cached result for path
func (p *Parser) Invalidate(path string) {
	p.cache.Delete(path)
	p.reader.InvalidateFile(path)
}

// CacheStats returns statistics for the parsed-file cache
func (p *Parser) CacheStats() utils.CacheStats {
	return p.cache.GetStats()
}

type factBuilder struct {
	file  string
	unit  *compilationUnit
	pkg   string
	scope *typeScope
}

func newFactBuilder(file string, unit *compilationUnit) *factBuilder {
	b := &factBuilder{file: file, unit: unit}
	if unit.Package != nil {
		b.pkg = strings.Join(unit.Package.Name, ".")
	}
	return b
}

func (b *factBuilder) build() *SourceFile {
	sf := &SourceFile{Path: b.file, Package: b.pkg}

	for _, imp := range b.unit.Imports {
		parts := imp.Parts
		onDemand := len(parts) > 0 && parts[len(parts)-1] == "*"
		if onDemand {
			parts = parts[:len(parts)-1]
		}
		sf.Imports = append(sf.Imports, Import{
			Path:     strings.Join(parts, "."),
			Static:   imp.Static,
			OnDemand: onDemand,
		})
	}

	var local []string
	for _, td := range b.unit.Types {
		local = append(local, td.Body.name())
	}
	b.scope = newTypeScope(b.pkg, sf.Imports, local)

	for _, td := range b.unit.Types {
		if td.Body.Class == nil {
			continue
		}
		sf.Classes = append(sf.Classes, b.class(td.Modifiers, td.Pos, td.Body.Class, "", b.scope))
	}
	return sf
}

func (b *factBuilder) class(mods []*modifier, pos lexer.Position, decl *classDecl, enclosing string, outer *typeScope) *ClassFacts {
	qualified := models.QualifiedName(b.pkg, decl.Name)
	if enclosing != "" {
		qualified = enclosing + "." + decl.Name
	}

	keywords, annos := splitModifiers(mods)
	c := &ClassFacts{
		Name:           decl.Name,
		QualifiedName:  qualified,
		Location:       b.location(pos),
		Modifiers:      keywords,
		Annotations:    annos,
		TypeParameters: typeParamNames(decl.TypeParams),
		Enclosing:      enclosing,
	}

	members := make(map[string]string)
	for _, m := range decl.Members {
		if m.Nested != nil {
			members[m.Nested.name()] = qualified + "." + m.Nested.name()
		}
	}
	scope := outer.with(c.TypeParameters, members)
	c.Superclass = scope.render(decl.Extends)

	for _, m := range decl.Members {
		switch {
		case m.Nested != nil && m.Nested.Class != nil:
			c.Nested = append(c.Nested, b.class(m.Modifiers, m.Pos, m.Nested.Class, qualified, scope))
		case m.Typed != nil:
			b.typedMember(c, m, scope)
		}
	}
	return c
}

func (b *factBuilder) typedMember(c *ClassFacts, m *member, scope *typeScope) {
	t := m.Typed
	keywords, annos := splitModifiers(m.Modifiers)
	loc := b.location(m.Pos)

	switch {
	case t.Ctor != nil:
		// a constructor is a bare class name followed by a parameter list
		if len(t.Type.Parts) != 1 || t.Type.Parts[0].Name != c.Name || t.Type.Parts[0].Args != nil {
			return
		}
		ctorScope := scope.with(typeParamNames(t.TypeParams), nil)
		c.Constructors = append(c.Constructors, ExecutableFacts{
			Name:        c.Name,
			Modifiers:   keywords,
			Annotations: annos,
			Params:      b.params(t.Ctor.Params, ctorScope),
			Location:    loc,
		})

	case t.Method != nil:
		methodScope := scope.with(typeParamNames(t.TypeParams), nil)
		c.Methods = append(c.Methods, ExecutableFacts{
			Name:        t.Name,
			Modifiers:   keywords,
			Annotations: annos,
			Params:      b.params(t.Method.Params, methodScope),
			Location:    loc,
		})

	case t.Field != nil:
		base := scope.render(t.Type)
		c.Fields = append(c.Fields, FieldFacts{
			Name:      t.Name,
			Type:      base + dims(t.Field.Dims),
			Modifiers: keywords,
			Location:  loc,
		})
		for _, d := range t.Field.More {
			c.Fields = append(c.Fields, FieldFacts{
				Name:      d.Name,
				Type:      base + dims(d.Dims),
				Modifiers: keywords,
				Location:  loc,
			})
		}
	}
}

func (b *factBuilder) params(params []*param, scope *typeScope) []models.VariableSpec {
	out := make([]models.VariableSpec, 0, len(params))
	for _, p := range params {
		typ := scope.render(p.Type) + dims(p.Dims)
		if p.Varargs {
			typ += "..."
		}
		out = append(out, models.VariableSpec{Name: p.Name, Type: typ})
	}
	return out
}

func (b *factBuilder) location(pos lexer.Position) errors.SourceLocation {
	return errors.SourceLocation{File: b.file, Line: pos.Line, Column: pos.Column}
}

func (t *typeBody) name() string {
	if t.Class != nil {
		return t.Class.Name
	}
	return t.Other.Name
}

func splitModifiers(mods []*modifier) (Modifiers, []*annotations.Annotation) {
	var keywords Modifiers
	var annos []*annotations.Annotation
	for _, m := range mods {
		if m.Annotation != nil {
			annos = append(annos, m.Annotation)
		} else {
			keywords = append(keywords, m.Keyword)
		}
	}
	return keywords, annos
}

func dims(d []string) string {
	return strings.Repeat("[]", len(d))
}
