package syntax

import (
	"strings"

	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// multiCharOps lists operator punctuation longer than one character, longest
// first within each starting byte so greedy matching never mis-splits e.g.
// "**=" into "**" + "=".
var multiCharOps = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"->", ":=", "==", "!=", "<=", ">=", "**", "//", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
}

const singleCharOps = "+-*/%@&|^~<>()[]{},:.;=!"

// Lexer turns source text into a flat token stream with explicit
// Indent/Dedent/Newline tokens, following the target language's
// off-side-rule layout — grouping constructs (parens/brackets/braces)
// suppress newline significance exactly as they do in the host language.
type Lexer struct {
	file        *source.File
	src         []byte
	pos         int
	parenDepth  int
	indents     []int
	atLineStart bool
	tokens      []Token
	errs        []ParseError

	pendingEscapeErrors []stringEscapeErrors
}

// EscapeErrorsFor returns the per-character escape/format diagnostics found
// inside the string token at tokenIndex, if any.
func (l *Lexer) EscapeErrorsFor(tokenIndex int) []ast.EscapeError {
	for _, pe := range l.pendingEscapeErrors {
		if pe.tokenIndex == tokenIndex {
			return pe.errs
		}
	}

	return nil
}

// NewLexer constructs a lexer over file's text.
func NewLexer(file *source.File) *Lexer {
	return &Lexer{file: file, src: file.Text(), indents: []int{0}, atLineStart: true}
}

// Tokenize scans the entire file and returns its token stream together with
// any lexical errors found (e.g. unterminated strings). Bad escape sequences
// and malformed f-strings are not among them: they are recorded per string
// token and returned by EscapeErrorsFor.
func (l *Lexer) Tokenize() ([]Token, []ParseError) {
	for l.pos < len(l.src) {
		if l.atLineStart && l.parenDepth == 0 {
			if l.scanLineStart() {
				continue
			}
		}

		l.scanToken()
	}

	l.finish()

	return l.tokens, l.errs
}

func (l *Lexer) finish() {
	if len(l.tokens) > 0 {
		last := l.tokens[len(l.tokens)-1]
		if last.Kind != TokNewline {
			l.emit(TokNewline, "", l.pos, l.pos)
		}
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(TokDedent, "", l.pos, l.pos)
	}

	l.emit(TokEOF, "", l.pos, l.pos)
}

// scanLineStart consumes leading whitespace of a new logical line, emitting
// Indent/Dedent tokens as needed. It returns true if the whole line was
// blank or comment-only (nothing else to scan on this iteration).
func (l *Lexer) scanLineStart() bool {
	start := l.pos
	width := 0

	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ':
			width++
			l.pos++
		case '\t':
			width += 8 - (width % 8)
			l.pos++
		default:
			goto measured
		}
	}

measured:
	if l.pos >= len(l.src) || l.src[l.pos] == '\n' || l.src[l.pos] == '#' {
		l.skipToNextLine()
		return true
	}

	l.atLineStart = false
	top := l.indents[len(l.indents)-1]

	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.emit(TokIndent, "", start, l.pos)
	case width < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(TokDedent, "", l.pos, l.pos)
		}
	}

	return false
}

func (l *Lexer) skipToNextLine() {
	l.skipComment()

	if l.pos < len(l.src) {
		l.pos++
	}
}

// skipComment advances past a comment's text without consuming the
// terminating newline, so the caller's own newline handling still runs.
func (l *Lexer) skipComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) emit(kind TokenKind, text string, start, end int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Span: source.NewSpan(start, end)})
}

func (l *Lexer) errf(start, end int, msg string) {
	l.errs = append(l.errs, ParseError{Span: source.NewSpan(start, end), Message: msg})
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) scanToken() {
	c := l.src[l.pos]

	switch {
	case c == ' ' || c == '\t':
		l.pos++
	case c == '\\' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n':
		l.pos += 2
	case c == '\n':
		l.pos++

		if l.parenDepth == 0 {
			l.emit(TokNewline, "", l.pos-1, l.pos)
			l.atLineStart = true
		}
	case c == '#':
		l.skipComment()
	case c == '(' || c == '[' || c == '{':
		l.parenDepth++
		l.emitOp(string(c))
	case c == ')' || c == ']' || c == '}':
		if l.parenDepth > 0 {
			l.parenDepth--
		}

		l.emitOp(string(c))
	case isIdentStart(c):
		l.scanNameOrString()
	case isDigit(c):
		l.scanNumber()
	case c == '"' || c == '\'':
		l.scanString("", l.pos)
	default:
		l.scanOperator()
	}
}

func (l *Lexer) emitOp(text string) {
	start := l.pos
	l.pos += len(text)
	l.emit(TokOp, text, start, l.pos)
}

func (l *Lexer) scanNameOrString() {
	start := l.pos

	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}

	text := string(l.src[start:l.pos])

	// A string/bytes prefix ("r", "b", "f", "rb", "fr", "u", ...) directly
	// followed by a quote lexes as a single string token; anything else is
	// a plain identifier or keyword.
	if l.pos < len(l.src) && (l.src[l.pos] == '"' || l.src[l.pos] == '\'') && isStringPrefix(text) {
		l.scanString(strings.ToLower(text), start)
		return
	}

	if keywords[text] {
		l.emit(TokKeyword, text, start, l.pos)
		return
	}

	l.emit(TokName, text, start, l.pos)
}

func isStringPrefix(s string) bool {
	if len(s) > 2 {
		return false
	}

	for _, c := range strings.ToLower(s) {
		switch c {
		case 'r', 'b', 'f', 'u':
		default:
			return false
		}
	}

	return true
}

func (l *Lexer) scanNumber() {
	start := l.pos

	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}

	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++

		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++

		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}

		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'j' || l.src[l.pos] == 'J') {
		l.pos++
	}

	l.emit(TokNumber, string(l.src[start:l.pos]), start, l.pos)
}

func (l *Lexer) scanOperator() {
	rest := l.src[l.pos:]

	for _, op := range multiCharOps {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			l.emitOp(op)
			return
		}
	}

	c := l.src[l.pos]
	if strings.IndexByte(singleCharOps, c) >= 0 {
		l.emitOp(string(c))
		return
	}

	l.errf(l.pos, l.pos+1, "unrecognized character")
	l.pos++
}

// scanString scans a (possibly triple-quoted, possibly raw/f-string) string
// literal starting at the quote following prefix, validating escape
// sequences and, for f-strings, brace balance, and records any problems as
// ast.EscapeError values for the binder to surface verbatim.
func (l *Lexer) scanString(prefix string, start int) {
	isRaw := strings.Contains(prefix, "r")
	isF := strings.Contains(prefix, "f")
	quoteByte := l.src[l.pos]
	l.pos++

	triple := false
	if l.pos+1 < len(l.src) && l.src[l.pos] == quoteByte && l.src[l.pos+1] == quoteByte {
		triple = true
		l.pos += 2
	}

	contentStart := l.pos
	var escapeErrs []ast.EscapeError
	braceDepth := 0

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		if c == quoteByte {
			if !triple {
				break
			}

			if l.pos+2 < len(l.src) && l.src[l.pos+1] == quoteByte && l.src[l.pos+2] == quoteByte {
				break
			}
		}

		if c == '\n' && !triple {
			break
		}

		if c == '\\' {
			if braceDepth > 0 {
				escapeErrs = append(escapeErrs, ast.EscapeError{
					Sp: source.NewSpan(l.pos, l.pos+1), Kind: ast.EscapeInFormatExpression})
				l.pos++
				continue
			}

			if !isRaw && l.pos+1 < len(l.src) && !isValidEscape(l.src[l.pos+1]) {
				escapeErrs = append(escapeErrs, ast.EscapeError{
					Sp: source.NewSpan(l.pos, l.pos+2), Kind: ast.InvalidEscapeSequence})
			}

			l.pos += 2

			continue
		}

		if isF && c == '{' {
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' && braceDepth == 0 {
				l.pos += 2
				continue
			}

			braceDepth++
			l.pos++

			continue
		}

		if isF && c == '}' {
			if braceDepth == 0 {
				if l.pos+1 < len(l.src) && l.src[l.pos+1] == '}' {
					l.pos += 2
					continue
				}

				escapeErrs = append(escapeErrs, ast.EscapeError{
					Sp: source.NewSpan(l.pos, l.pos+1), Kind: ast.StrayCloseBrace})
				l.pos++

				continue
			}

			braceDepth--
			l.pos++

			continue
		}

		l.pos++
	}

	contentEnd := l.pos
	value := string(l.src[contentStart:contentEnd])

	if l.pos < len(l.src) {
		if triple {
			l.pos += 3
		} else {
			l.pos++
		}
	} else {
		l.errf(start, l.pos, "unterminated string literal")
	}

	if isF && braceDepth > 0 {
		escapeErrs = append(escapeErrs, ast.EscapeError{
			Sp: source.NewSpan(contentEnd, contentEnd), Kind: ast.UnterminatedFormatExpression})
	}

	kind := TokString
	if isF {
		kind = TokFString
	}

	l.tokens = append(l.tokens, Token{
		Kind: kind,
		Text: value,
		Span: source.NewSpan(start, l.pos),
	})

	if len(escapeErrs) > 0 {
		l.tokens[len(l.tokens)-1].Error = &ParseError{
			Span: source.NewSpan(start, l.pos), Message: "string literal contains escape errors"}
		l.pendingEscapeErrors = append(l.pendingEscapeErrors, stringEscapeErrors{tokenIndex: len(l.tokens) - 1, errs: escapeErrs})
	}
}

func isValidEscape(c byte) bool {
	switch c {
	case '\\', '\'', '"', 'a', 'b', 'f', 'n', 'r', 't', 'v', '0', '1', '2', '3', '4', '5', '6', '7',
		'x', 'N', 'u', 'U', '\n':
		return true
	default:
		return false
	}
}

// stringEscapeErrors associates the escape-sequence errors found in one
// string token with that token's index, since Token itself only carries a
// single *ParseError summary for quick triage.
type stringEscapeErrors struct {
	tokenIndex int
	errs       []ast.EscapeError
}
