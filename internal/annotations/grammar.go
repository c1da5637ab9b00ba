package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Annotation is a Java annotation use: @Name, @Name(value) or @Name(k = v, ...)
type Annotation struct {
	Pos  lexer.Position
	Name []string        `parser:"'@' @Ident ( '.' @Ident )*"`
	Args *AnnotationArgs `parser:"( '(' @@? ')' )?"`
}

// QualifiedName returns the annotation name as written, e.g. Bean or com.x.Bean
func (a *Annotation) QualifiedName() string {
	return strings.Join(a.Name, ".")
}

// SimpleName returns the last segment of the annotation name
func (a *Annotation) SimpleName() string {
	return a.Name[len(a.Name)-1]
}

// AnnotationArgs holds either named element-value pairs or a single value
type AnnotationArgs struct {
	Pairs []*ElementValuePair `parser:"  @@ ( ',' @@ )*"`
	Value *ElementValue       `parser:"| @@"`
}

// ElementValuePair is one key = value attribute
type ElementValuePair struct {
	Pos   lexer.Position
	Key   string        `parser:"@Ident '='"`
	Value *ElementValue `parser:"@@"`
}

// ElementValue is a nested annotation, an array initializer or a constant expression
type ElementValue struct {
	Pos        lexer.Position
	Annotation *Annotation   `parser:"  @@"`
	Array      *ElementArray `parser:"| @@"`
	Expr       *ConstExpr    `parser:"| @@"`
}

// ElementArray is {v1, v2, ...}
type ElementArray struct {
	Open   string          `parser:"@'{'"`
	Values []*ElementValue `parser:"( @@ ( ',' @@ )* )? ','? '}'"`
}

// ConstExpr is a '+' separated chain, enough for string concatenation
type ConstExpr struct {
	Operands []*Operand `parser:"@@ ( '+' @@ )*"`
}

// Operand is one literal or name in a constant expression
type Operand struct {
	Neg    bool       `parser:"@'-'?"`
	String *string    `parser:"(  @String"`
	Char   *string    `parser:" | @Char"`
	Number *string    `parser:" | @Number"`
	Bool   *string    `parser:" | @( 'true' | 'false' )"`
	Name   []string   `parser:" | @Ident ( '.' @Ident )*"`
	Group  *ConstExpr `parser:" | '(' @@ ')' )"`
}
