package annotations

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/toyz/beangen/internal/errors"
)

// Parser parses standalone annotation text such as `@Bean(typeName = "Person")`
type Parser struct {
	parser   *participle.Parser[Annotation]
	resolver *Resolver
}

// NewParser creates a parser validating against registry (nil means DefaultRegistry)
func NewParser(registry AnnotationRegistry) *Parser {
	return &Parser{
		parser:   participle.MustBuild[Annotation](Options()...),
		resolver: NewResolver(registry),
	}
}

// Options returns the participle options shared by every grammar built on JavaLexer
func Options() []participle.Option {
	return []participle.Option{
		participle.Lexer(JavaLexer),
		participle.Elide(ElidedTokens...),
		participle.UseLookahead(1024),
	}
}

// ParseAnnotation parses and resolves a single annotation
func (p *Parser) ParseAnnotation(text string, location SourceLocation) (*ParsedAnnotation, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "@") {
		return nil, errors.NewAnnotationSyntaxError("annotation must start with '@'", location, text)
	}

	node, err := p.parser.ParseString(location.File, text)
	if err != nil {
		return nil, SyntaxErrorFrom(err, location.File, text)
	}

	parsed, ok, err := p.resolver.Resolve(node, location.File)
	if !ok {
		return nil, errors.NewAnnotationSchemaError(
			fmt.Sprintf("schema not found for '@%s'", node.QualifiedName()), location, node.SimpleName())
	}
	if err != nil {
		return nil, err
	}
	if location.Line > 0 {
		parsed.Location = location
	}
	return parsed, nil
}

// SyntaxErrorFrom converts a participle error into a located SyntaxError
func SyntaxErrorFrom(err error, file, context string) *errors.SyntaxError {
	loc := SourceLocation{File: file}
	msg := err.Error()

	var perr participle.Error
	if stderrors.As(err, &perr) {
		pos := perr.Position()
		loc.Line = pos.Line
		loc.Column = pos.Column
		msg = perr.Message()
		if loc.File == "" {
			loc.File = pos.Filename
		}
	}

	return errors.NewAnnotationSyntaxError(msg, loc, context)
}
