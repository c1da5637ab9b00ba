package annotations

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// JavaLexer tokenizes Java source for both standalone annotation parsing and
// the source reader. Brackets get their own token types so grammars can skip
// balanced bodies without negated matches.
var JavaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\\n])*'`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F_]+[lL]?|[0-9][0-9_]*(\.[0-9_]+)?([eE][+-]?[0-9]+)?[lLfFdD]?`},
	{Name: "AtInterface", Pattern: `@\s*interface\b`},
	{Name: "At", Pattern: `@`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	{Name: "Brace", Pattern: `[{}]`},
	{Name: "Paren", Pattern: `[()]`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Punct", Pattern: `[-+*/%=<>!&|^~?:.\[\]\\#]`},
})

// ElidedTokens are dropped before parsing
var ElidedTokens = []string{"Comment", "Whitespace"}
