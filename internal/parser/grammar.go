package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/beangen/internal/annotations"
)

// The grammar covers what discovery needs from a compilation unit: the
// package, imports and the member signatures of classes. Method bodies,
// initializers and non-class type declarations are skipped as balanced
// token groups.

type compilationUnit struct {
	Package *packageDecl  `parser:"@@?"`
	Imports []*importDecl `parser:"@@*"`
	Types   []*typeDecl   `parser:"( @@ | ';' )*"`
}

type packageDecl struct {
	Annotations []*annotations.Annotation `parser:"@@*"`
	Name        []string                  `parser:"'package' @Ident ( '.' @Ident )* ';'"`
}

type importDecl struct {
	Static bool     `parser:"'import' @'static'?"`
	Parts  []string `parser:"@Ident ( '.' @( Ident | '*' ) )* ';'"`
}

type typeDecl struct {
	Pos       lexer.Position
	Modifiers []*modifier `parser:"@@*"`
	Body      *typeBody   `parser:"@@"`
}

type typeBody struct {
	Class *classDecl  `parser:"  @@"`
	Other *opaqueDecl `parser:"| @@"`
}

type classDecl struct {
	Pos        lexer.Position
	Name       string      `parser:"'class' @Ident"`
	TypeParams *typeParams `parser:"@@?"`
	Extends    *typeRef    `parser:"( 'extends' @@ )?"`
	Implements []*typeRef  `parser:"( 'implements' @@ ( ',' @@ )* )?"`
	Permits    []*typeRef  `parser:"( 'permits' @@ ( ',' @@ )* )?"`
	Members    []*member   `parser:"'{' @@* '}'"`
}

// opaqueDecl is an interface, enum, record or annotation type
type opaqueDecl struct {
	Pos    lexer.Position
	Kind   string   `parser:"@( 'interface' | 'enum' | 'record' | AtInterface )"`
	Name   string   `parser:"@Ident"`
	Header []string `parser:"@( Ident | Punct | Comma | At | Number | String | Char | Ellipsis | Paren )*"`
	Body   *block   `parser:"@@"`
}

type modifier struct {
	Annotation *annotations.Annotation `parser:"  @@"`
	Keyword    string                  `parser:"| @( 'public' | 'protected' | 'private' | 'static' | 'final' | 'abstract' | 'native' | 'synchronized' | 'transient' | 'volatile' | 'strictfp' | 'sealed' | 'default' )"`
}

type member struct {
	Pos       lexer.Position
	Modifiers []*modifier  `parser:"@@*"`
	Nested    *typeBody    `parser:"(  @@"`
	Init      *block       `parser:" | @@"`
	Typed     *typedMember `parser:" | @@"`
	Empty     bool         `parser:" | @';' )"`
}

// typedMember is a constructor, method or field; they share the prefix up to the type
type typedMember struct {
	TypeParams *typeParams   `parser:"@@?"`
	Type       *typeRef      `parser:"@@"`
	Ctor       *callableTail `parser:"(  @@"`
	Name       string        `parser:" | @Ident"`
	Method     *callableTail `parser:"   ( @@"`
	Field      *fieldTail    `parser:"   | @@ ) )"`
}

type callableTail struct {
	Params   []*param   `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Dims     []string   `parser:"( @'[' ']' )*"`
	Throws   []*typeRef `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Body     *block     `parser:"( @@"`
	Abstract bool       `parser:"| @';' )"`
}

type param struct {
	Modifiers []*modifier `parser:"@@*"`
	Type      *typeRef    `parser:"@@"`
	Varargs   bool        `parser:"@Ellipsis?"`
	Name      string      `parser:"@Ident"`
	Dims      []string    `parser:"( @'[' ']' )*"`
}

type fieldTail struct {
	Dims []string      `parser:"( @'[' ']' )*"`
	Init *initializer  `parser:"@@?"`
	More []*declarator `parser:"( ',' @@ )* ';'"`
}

type declarator struct {
	Name string       `parser:"@Ident"`
	Dims []string     `parser:"( @'[' ']' )*"`
	Init *initializer `parser:"@@?"`
}

type initializer struct {
	Parts []*initPart `parser:"'=' @@+"`
}

// initPart is one piece of a field initializer. Type arguments are matched as a
// group so their commas do not end the declarator; a comparison such as a < b
// falls through to Token.
type initPart struct {
	Group *parenGroup `parser:"  @@"`
	Block *block      `parser:"| @@"`
	Args  *typeArgs   `parser:"| @@"`
	Token string      `parser:"| @( Ident | String | Char | Number | Punct | At | Ellipsis | AtInterface )"`
}

type typeParams struct {
	Params []*typeParam `parser:"'<' @@ ( ',' @@ )* '>'"`
}

type typeParam struct {
	Annotations []*annotations.Annotation `parser:"@@*"`
	Name        string                    `parser:"@Ident"`
	Bounds      []*typeRef                `parser:"( 'extends' @@ ( '&' @@ )* )?"`
}

type typeRef struct {
	Pos         lexer.Position
	Annotations []*annotations.Annotation `parser:"@@*"`
	Parts       []*typePart               `parser:"@@ ( '.' @@ )*"`
	Dims        []string                  `parser:"( @'[' ']' )*"`
}

type typePart struct {
	Name string    `parser:"@Ident"`
	Args *typeArgs `parser:"@@?"`
}

type typeArgs struct {
	Open string     `parser:"@'<'"`
	Args []*typeArg `parser:"( @@ ( ',' @@ )* )? '>'"`
}

type typeArg struct {
	Wildcard bool     `parser:"(  @'?'"`
	Bound    string   `parser:"   ( @( 'extends' | 'super' )"`
	Bounded  *typeRef `parser:"     @@ )?"`
	Type     *typeRef `parser:" | @@ )"`
}

type block struct {
	Open  string       `parser:"@'{'"`
	Parts []*blockPart `parser:"@@* '}'"`
}

type blockPart struct {
	Block *block `parser:"  @@"`
	Token string `parser:"| @( Ident | String | Char | Number | Punct | At | Ellipsis | Comma | Semi | Paren | AtInterface )"`
}

type parenGroup struct {
	Open  string       `parser:"@'('"`
	Parts []*groupPart `parser:"@@* ')'"`
}

type groupPart struct {
	Group *parenGroup `parser:"  @@"`
	Block *block      `parser:"| @@"`
	Token string      `parser:"| @( Ident | String | Char | Number | Punct | At | Ellipsis | Comma | Semi | AtInterface )"`
}
