// Package syntax implements a lexer and recursive-descent parser for a
// practical subset of the target scripting language, producing pkg/ast
// trees for pkg/binder to walk. It exists to drive realistic end-to-end
// tests and the command-line demo; it is an ordinary external collaborator
// from pkg/binder's point of view, never a dependency of it.
package syntax

import "github.com/haldis-lang/pyscope/pkg/util/source"

// TokenKind enumerates the lexical token categories the scanner produces.
type TokenKind int

// The recognized token kinds.
const (
	TokEOF TokenKind = iota
	TokNewline
	TokIndent
	TokDedent
	TokName
	TokNumber
	TokString
	TokFString
	TokOp
	TokKeyword
)

// Token is one lexical unit together with its source span.
type Token struct {
	Kind  TokenKind
	Text  string
	Span  source.Span
	Error *ParseError // escape-sequence diagnostics carried by a string token
}

// keywords lists every reserved word of the target language; an
// identifier matching one of these lexes as TokKeyword instead of TokName.
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}
