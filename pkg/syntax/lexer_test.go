package syntax_test

import (
	"testing"

	"github.com/haldis-lang/pyscope/pkg/syntax"
	"github.com/haldis-lang/pyscope/pkg/util/assert"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

func lexKinds(t *testing.T, text string) []syntax.TokenKind {
	t.Helper()

	lexer := syntax.NewLexer(source.NewFile("t.py", []byte(text)))
	toks, errs := lexer.Tokenize()
	assert.Equal(t, 0, len(errs))

	kinds := make([]syntax.TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexer_IndentDedent(t *testing.T) {
	src := "if x:\n    y = 1\nz = 2\n"

	lexer := syntax.NewLexer(source.NewFile("t.py", []byte(src)))
	toks, errs := lexer.Tokenize()
	assert.Equal(t, 0, len(errs))

	var sawIndent, sawDedent bool

	for _, tok := range toks {
		if tok.Kind == syntax.TokIndent {
			sawIndent = true
		}

		if tok.Kind == syntax.TokDedent {
			sawDedent = true
		}
	}

	assert.True(t, sawIndent, "expected an INDENT token")
	assert.True(t, sawDedent, "expected a DEDENT token")
}

func TestLexer_TrailingCommentKeepsNewline(t *testing.T) {
	kinds := lexKinds(t, "x = 1  # comment\n")

	foundNewline := false

	for _, k := range kinds {
		if k == syntax.TokNewline {
			foundNewline = true
		}
	}

	assert.True(t, foundNewline, "a trailing comment must not swallow the statement's NEWLINE")
}

func TestLexer_BlankAndCommentOnlyLinesAreSilent(t *testing.T) {
	src := "x = 1\n\n# just a comment\ny = 2\n"

	lexer := syntax.NewLexer(source.NewFile("t.py", []byte(src)))
	toks, errs := lexer.Tokenize()
	assert.Equal(t, 0, len(errs))

	newlineCount := 0

	for _, tok := range toks {
		if tok.Kind == syntax.TokNewline {
			newlineCount++
		}
	}

	// Exactly one NEWLINE per real statement; blank/comment-only lines add
	// none of their own.
	assert.Equal(t, 2, newlineCount)
}

func TestLexer_InvalidEscapeSequence(t *testing.T) {
	lexer := syntax.NewLexer(source.NewFile("t.py", []byte(`x = "\q"` + "\n")))
	toks, errs := lexer.Tokenize()
	assert.Equal(t, 0, len(errs))

	var strTok int = -1

	for i, tok := range toks {
		if tok.Kind == syntax.TokString {
			strTok = i
		}
	}

	assert.True(t, strTok >= 0, "expected a string token")

	escs := lexer.EscapeErrorsFor(strTok)
	assert.Equal(t, 1, len(escs))
}

func TestLexer_FStringBraceTracking(t *testing.T) {
	lexer := syntax.NewLexer(source.NewFile("t.py", []byte(`x = f"{{literal}} {value}"` + "\n")))
	toks, errs := lexer.Tokenize()
	assert.Equal(t, 0, len(errs))

	var strTok int = -1

	for i, tok := range toks {
		if tok.Kind == syntax.TokFString {
			strTok = i
		}
	}

	assert.True(t, strTok >= 0, "expected an f-string token")
	assert.Equal(t, 0, len(lexer.EscapeErrorsFor(strTok)))
}

func TestLexer_FStringStrayCloseBrace(t *testing.T) {
	lexer := syntax.NewLexer(source.NewFile("t.py", []byte(`x = f"oops}"` + "\n")))
	toks, _ := lexer.Tokenize()

	var strTok int = -1

	for i, tok := range toks {
		if tok.Kind == syntax.TokFString {
			strTok = i
		}
	}

	assert.True(t, strTok >= 0, "expected an f-string token")
	assert.Equal(t, 1, len(lexer.EscapeErrorsFor(strTok)))
}

func TestLexer_TripleQuotedString(t *testing.T) {
	kinds := lexKinds(t, "x = \"\"\"a\nb\nc\"\"\"\n")

	found := false

	for _, k := range kinds {
		if k == syntax.TokString {
			found = true
		}
	}

	assert.True(t, found, "expected the triple-quoted string to lex as one token")
}

func TestLexer_Ellipsis(t *testing.T) {
	lexer := syntax.NewLexer(source.NewFile("t.py", []byte("x = ...\n")))
	toks, errs := lexer.Tokenize()
	assert.Equal(t, 0, len(errs))

	found := false

	for _, tok := range toks {
		if tok.Kind == syntax.TokOp && tok.Text == "..." {
			found = true
		}
	}

	assert.True(t, found, "expected '...' to lex as a single operator token")
}
