package syntax

import (
	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/util"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// Parser is a recursive-descent parser over a Lexer's token stream,
// producing pkg/ast trees. Parse errors are collected rather than fatal:
// an unexpected token is reported and parsing carries on past it, and a
// panic raised while parsing a statement is recovered by skipping up to
// that statement's next NEWLINE, so the rest of the file still parses,
// mirroring how a real editor-integrated parser
// must keep going after a typo.
type Parser struct {
	lexer *Lexer
	toks  []Token
	pos   int
	errs  []ParseError
}

// ParseModule lexes and parses file's full text into a Module.
func ParseModule(file *source.File) (*ast.Module, []ParseError) {
	lexer := NewLexer(file)
	toks, lexErrs := lexer.Tokenize()

	p := &Parser{lexer: lexer, toks: toks, errs: lexErrs}
	body := p.parseStatementsUntil(TokEOF)

	return ast.NewModule(source.NewSpan(0, len(file.Text())), body), p.errs
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+n]
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return t
}

func (p *Parser) atOp(op string) bool     { return p.cur().Kind == TokOp && p.cur().Text == op }
func (p *Parser) atKeyword(kw string) bool { return p.cur().Kind == TokKeyword && p.cur().Text == kw }
func (p *Parser) atEOF() bool             { return p.cur().Kind == TokEOF }

func (p *Parser) errf(sp source.Span, msg string) {
	p.errs = append(p.errs, ParseError{Span: sp, Message: msg})
}

func (p *Parser) expectOp(op string) Token {
	if !p.atOp(op) {
		p.errf(p.cur().Span, "expected '"+op+"'")
		return p.cur()
	}

	return p.advance()
}

func (p *Parser) expectKeyword(kw string) Token {
	if !p.atKeyword(kw) {
		p.errf(p.cur().Span, "expected '"+kw+"'")
		return p.cur()
	}

	return p.advance()
}

func (p *Parser) expectName() Token {
	if p.cur().Kind != TokName {
		p.errf(p.cur().Span, "expected a name")
		return p.cur()
	}

	return p.advance()
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == TokNewline {
		p.advance()
	}
}

// recoverToNextLine skips tokens up to (and past) the next NEWLINE, used to
// resynchronize after a malformed statement.
func (p *Parser) recoverToNextLine() {
	for p.cur().Kind != TokNewline && p.cur().Kind != TokEOF {
		p.advance()
	}

	if p.cur().Kind == TokNewline {
		p.advance()
	}
}

func (p *Parser) parseStatementsUntil(stop TokenKind) []ast.Stmt {
	var out []ast.Stmt

	p.skipNewlines()

	for p.cur().Kind != stop && p.cur().Kind != TokEOF && p.cur().Kind != TokDedent {
		out = append(out, p.parseStatement()...)
		p.skipNewlines()
	}

	return out
}

// parseBlock parses the suite introduced by a trailing ':' — either an
// indented block or a same-line simple-statement list.
func (p *Parser) parseBlock() []ast.Stmt {
	p.expectOp(":")

	if p.cur().Kind == TokNewline {
		p.advance()
		p.skipNewlines()

		if p.cur().Kind != TokIndent {
			p.errf(p.cur().Span, "expected an indented block")
			return nil
		}

		p.advance()

		body := p.parseStatementsUntil(TokDedent)

		if p.cur().Kind == TokDedent {
			p.advance()
		}

		return body
	}

	return p.parseSimpleStatementLine()
}

// parseSimpleStatementLine parses one or more ';'-separated simple
// statements up to the terminating NEWLINE.
func (p *Parser) parseSimpleStatementLine() []ast.Stmt {
	var out []ast.Stmt

	out = append(out, p.parseSimpleStatement())

	for p.atOp(";") {
		p.advance()

		if p.cur().Kind == TokNewline || p.cur().Kind == TokEOF {
			break
		}

		out = append(out, p.parseSimpleStatement())
	}

	if p.cur().Kind == TokNewline {
		p.advance()
	}

	return out
}

// parseStatement parses one top-level statement, returning possibly more
// than one result only for a ';'-joined simple-statement line.
func (p *Parser) parseStatement() []ast.Stmt {
	defer func() {
		if r := recover(); r != nil {
			p.recoverToNextLine()
		}
	}()

	switch {
	case p.atOp("@"):
		return []ast.Stmt{p.parseDecorated()}
	case p.atKeyword("def"):
		return []ast.Stmt{p.parseFunctionDef(nil, false)}
	case p.atKeyword("async") && p.peek(1).Kind == TokKeyword && p.peek(1).Text == "def":
		p.advance()
		return []ast.Stmt{p.parseFunctionDef(nil, true)}
	case p.atKeyword("class"):
		return []ast.Stmt{p.parseClassDef(nil)}
	case p.atKeyword("if"):
		return []ast.Stmt{p.parseIf()}
	case p.atKeyword("while"):
		return []ast.Stmt{p.parseWhile()}
	case p.atKeyword("for"):
		return []ast.Stmt{p.parseFor(false)}
	case p.atKeyword("async") && p.peek(1).Kind == TokKeyword && p.peek(1).Text == "for":
		p.advance()
		return []ast.Stmt{p.parseFor(true)}
	case p.atKeyword("with"):
		return []ast.Stmt{p.parseWith(false)}
	case p.atKeyword("async") && p.peek(1).Kind == TokKeyword && p.peek(1).Text == "with":
		p.advance()
		return []ast.Stmt{p.parseWith(true)}
	case p.atKeyword("try"):
		return []ast.Stmt{p.parseTry()}
	default:
		return p.parseSimpleStatementLine()
	}
}

func (p *Parser) parseDecorated() ast.Stmt {
	var decorators []ast.Expr

	for p.atOp("@") {
		p.advance()
		decorators = append(decorators, p.parseExpr())

		if p.cur().Kind == TokNewline {
			p.advance()
		}

		p.skipNewlines()
	}

	if p.atKeyword("async") {
		p.advance()
		return p.parseFunctionDef(decorators, true)
	}

	if p.atKeyword("def") {
		return p.parseFunctionDef(decorators, false)
	}

	return p.parseClassDef(decorators)
}

func (p *Parser) parseClassDef(decorators []ast.Expr) ast.Stmt {
	start := p.expectKeyword("class").Span
	nameTok := p.expectName()

	var bases []ast.Expr

	var keywords []ast.Keyword

	if p.atOp("(") {
		p.advance()

		for !p.atOp(")") && p.cur().Kind != TokEOF {
			if p.cur().Kind == TokName && p.peek(1).Kind == TokOp && p.peek(1).Text == "=" {
				kwName := p.advance()
				p.advance()
				keywords = append(keywords, ast.Keyword{Sp: kwName.Span, Name: kwName.Text, Value: p.parseExpr()})
			} else {
				bases = append(bases, p.parseExpr())
			}

			if p.atOp(",") {
				p.advance()
			} else {
				break
			}
		}

		p.expectOp(")")
	}

	body := p.parseBlock()
	node := ast.NewClassDef(start, nameTok.Span, nameTok.Text, bases, keywords, decorators, body)

	return node
}

func (p *Parser) parseFunctionDef(decorators []ast.Expr, isAsync bool) ast.Stmt {
	start := p.expectKeyword("def").Span
	nameTok := p.expectName()
	params := p.parseParamList()

	var retAnnot ast.Expr

	if p.atOp("->") {
		p.advance()
		retAnnot = p.parseExpr()
	}

	body := p.parseBlock()

	return ast.NewFunctionDef(start, nameTok.Span, nameTok.Text, params, retAnnot, decorators, isAsync, body)
}

func (p *Parser) parseParamList() []ast.Param {
	p.expectOp("(")

	var params []ast.Param

	for !p.atOp(")") && p.cur().Kind != TokEOF {
		kind := ast.ParamPlain

		if p.atOp("*") {
			p.advance()
			kind = ast.ParamArgs

			if p.cur().Kind != TokName {
				// bare "*" keyword-only marker; no parameter produced
				if p.atOp(",") {
					p.advance()
					continue
				}

				break
			}
		} else if p.atOp("**") {
			p.advance()
			kind = ast.ParamKwargs
		}

		nameTok := p.expectName()

		var annot, def ast.Expr

		if p.atOp(":") {
			p.advance()
			annot = p.parseExpr()
		}

		if p.atOp("=") {
			p.advance()
			def = p.parseExpr()
		}

		params = append(params, ast.Param{Sp: nameTok.Span, Name: nameTok.Text, Annotation: annot, Default: def, Kind: kind})

		if p.atOp(",") {
			p.advance()
		} else {
			break
		}
	}

	p.expectOp(")")

	return params
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.expectKeyword("if").Span
	test := p.parseNamedExpr()
	body := p.parseBlock()

	var orelse []ast.Stmt

	switch {
	case p.atKeyword("elif"):
		orelse = []ast.Stmt{p.parseElif()}
	case p.atKeyword("else"):
		p.advance()
		orelse = p.parseBlock()
	}

	return ast.NewIfStmt(start, test, body, orelse)
}

func (p *Parser) parseElif() ast.Stmt {
	start := p.expectKeyword("elif").Span
	test := p.parseNamedExpr()
	body := p.parseBlock()

	var orelse []ast.Stmt

	switch {
	case p.atKeyword("elif"):
		orelse = []ast.Stmt{p.parseElif()}
	case p.atKeyword("else"):
		p.advance()
		orelse = p.parseBlock()
	}

	return ast.NewIfStmt(start, test, body, orelse)
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.expectKeyword("while").Span
	test := p.parseNamedExpr()
	body := p.parseBlock()

	var orelse []ast.Stmt

	if p.atKeyword("else") {
		p.advance()
		orelse = p.parseBlock()
	}

	return ast.NewWhileStmt(start, test, body, orelse)
}

func (p *Parser) parseFor(isAsync bool) ast.Stmt {
	start := p.expectKeyword("for").Span
	// The target is parsed below the comparison level so that the loop's
	// own "in" is not consumed as a membership test.
	target := p.parseBitOr()
	if p.atOp(",") {
		elts := []ast.Expr{target}
		for p.atOp(",") {
			p.advance()
			if p.atKeyword("in") {
				break
			}
			elts = append(elts, p.parseBitOr())
		}
		target = ast.NewTupleExpr(elts[0].Span(), elts)
	}
	p.expectKeyword("in")
	iter := p.parseExprList()
	body := p.parseBlock()

	var orelse []ast.Stmt

	if p.atKeyword("else") {
		p.advance()
		orelse = p.parseBlock()
	}

	return ast.NewForStmt(start, target, iter, body, orelse, isAsync)
}

func (p *Parser) parseWith(isAsync bool) ast.Stmt {
	start := p.expectKeyword("with").Span

	var items []ast.WithItem

	for {
		ctx := p.parseExpr()

		var vars ast.Expr

		if p.atKeyword("as") {
			p.advance()
			vars = p.parseTarget()
		}

		items = append(items, ast.WithItem{ContextExpr: ctx, OptionalVars: vars})

		if p.atOp(",") {
			p.advance()
			continue
		}

		break
	}

	body := p.parseBlock()

	return ast.NewWithStmt(start, items, body, isAsync)
}

func (p *Parser) parseTry() ast.Stmt {
	start := p.expectKeyword("try").Span
	body := p.parseBlock()

	var handlers []ast.ExceptHandler

	for p.atKeyword("except") {
		hStart := p.advance().Span

		if p.atOp("*") {
			p.advance()
		}

		var excType ast.Expr

		var name string

		var nameSp source.Span

		if !p.atOp(":") {
			excType = p.parseExpr()

			if p.atKeyword("as") {
				p.advance()
				nameTok := p.expectName()
				name = nameTok.Text
				nameSp = nameTok.Span
			}
		}

		hBody := p.parseBlock()
		handlers = append(handlers, ast.ExceptHandler{Sp: hStart, Type: excType, Name: name, NameSp: nameSp, Body: hBody})
	}

	var orelse, finally []ast.Stmt

	if p.atKeyword("else") {
		p.advance()
		orelse = p.parseBlock()
	}

	if p.atKeyword("finally") {
		p.advance()
		finally = p.parseBlock()
	}

	return ast.NewTryStmt(start, body, handlers, orelse, finally)
}

func (p *Parser) parseSimpleStatement() ast.Stmt {
	switch {
	case p.atKeyword("pass"):
		return ast.NewPassStmt(p.advance().Span)
	case p.atKeyword("break"):
		return ast.NewBreakStmt(p.advance().Span)
	case p.atKeyword("continue"):
		return ast.NewContinueStmt(p.advance().Span)
	case p.atKeyword("return"):
		return p.parseReturn()
	case p.atKeyword("raise"):
		return p.parseRaise()
	case p.atKeyword("global"):
		return p.parseGlobal()
	case p.atKeyword("nonlocal"):
		return p.parseNonlocal()
	case p.atKeyword("del"):
		return p.parseDel()
	case p.atKeyword("import"):
		return p.parseImport()
	case p.atKeyword("from"):
		return p.parseFromImport()
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance().Span

	if p.cur().Kind == TokNewline || p.atOp(";") || p.cur().Kind == TokEOF {
		return ast.NewReturnStmt(start, nil)
	}

	return ast.NewReturnStmt(start, p.parseExprList())
}

func (p *Parser) parseRaise() ast.Stmt {
	start := p.advance().Span

	if p.cur().Kind == TokNewline || p.atOp(";") || p.cur().Kind == TokEOF {
		return ast.NewRaiseStmt(start, nil, nil)
	}

	exc := p.parseExpr()

	var cause ast.Expr

	if p.atKeyword("from") {
		p.advance()
		cause = p.parseExpr()
	}

	return ast.NewRaiseStmt(start, exc, cause)
}

func (p *Parser) parseNameList() []ast.NamePos {
	var names []ast.NamePos

	for {
		n := p.expectName()
		names = append(names, ast.NamePos{Sp: n.Span, Name: n.Text})

		if p.atOp(",") {
			p.advance()
			continue
		}

		break
	}

	return names
}

func (p *Parser) parseGlobal() ast.Stmt {
	start := p.advance().Span
	return ast.NewGlobalStmt(start, p.parseNameList())
}

func (p *Parser) parseNonlocal() ast.Stmt {
	start := p.advance().Span
	return ast.NewNonlocalStmt(start, p.parseNameList())
}

func (p *Parser) parseDel() ast.Stmt {
	start := p.advance().Span

	var targets []ast.Expr

	for {
		targets = append(targets, p.parseTarget())

		if p.atOp(",") {
			p.advance()
			continue
		}

		break
	}

	return ast.NewDelStmt(start, targets)
}

func (p *Parser) parseDottedPath() util.Path {
	first := p.expectName()
	segs := []string{first.Text}

	for p.atOp(".") {
		p.advance()
		segs = append(segs, p.expectName().Text)
	}

	return util.NewPath(segs...)
}

func (p *Parser) parseImport() ast.Stmt {
	start := p.advance().Span

	var names []ast.ImportAlias

	for {
		sp := p.cur().Span
		path := p.parseDottedPath()

		var asName string

		var asSp source.Span

		if p.atKeyword("as") {
			p.advance()
			asTok := p.expectName()
			asName = asTok.Text
			asSp = asTok.Span
		}

		names = append(names, ast.ImportAlias{Sp: sp, Path: path, AsName: asName, AsNameSp: asSp})

		if p.atOp(",") {
			p.advance()
			continue
		}

		break
	}

	return ast.NewImportStmt(start, names)
}

func (p *Parser) parseFromImport() ast.Stmt {
	start := p.advance().Span

	level := 0
	for p.atOp(".") {
		p.advance()
		level++
	}

	var module util.Path
	if p.cur().Kind == TokName {
		module = p.parseDottedPath()
	}

	p.expectKeyword("import")

	if p.atOp("*") {
		p.advance()
		return ast.NewImportFromStmt(start, module, level, nil, true)
	}

	hasParen := p.atOp("(")
	if hasParen {
		p.advance()
	}

	var names []ast.ImportFromName

	for {
		nameTok := p.expectName()

		var asName string

		var asSp source.Span

		if p.atKeyword("as") {
			p.advance()
			asTok := p.expectName()
			asName = asTok.Text
			asSp = asTok.Span
		}

		names = append(names, ast.ImportFromName{Sp: nameTok.Span, Name: nameTok.Text, AsName: asName, AsNameSp: asSp})

		if p.atOp(",") {
			p.advance()
			continue
		}

		break
	}

	if hasParen {
		p.expectOp(")")
	}

	return ast.NewImportFromStmt(start, module, level, names, false)
}

// parseExprOrAssignStatement parses a simple statement that starts with an
// expression: a plain expression statement, an assignment (possibly
// chained), an augmented assignment, or an annotated assignment.
func (p *Parser) parseExprOrAssignStatement() ast.Stmt {
	start := p.cur().Span
	first := p.parseTargetList()

	if p.atOp(":") {
		p.advance()
		annot := p.parseExpr()

		var value ast.Expr

		if p.atOp("=") {
			p.advance()
			value = p.parseExprList()
		}

		return ast.NewAnnAssign(start, first, annot, value)
	}

	if op, ok := p.augAssignOp(); ok {
		p.advance()
		value := p.parseExprList()

		return ast.NewAugAssign(start, first, op, value)
	}

	if p.atOp("=") {
		targets := []ast.Expr{first}

		var value ast.Expr

		for p.atOp("=") {
			p.advance()
			value = p.parseExprList()

			if p.atOp("=") {
				targets = append(targets, value)
			}
		}

		return ast.NewAssign(start, targets, value)
	}

	return ast.NewExprStmt(start, first)
}

var augAssignOps = []string{
	"+=", "-=", "*=", "/=", "//=", "%=", "**=", "&=", "|=", "^=", ">>=", "<<=", "@=",
}

func (p *Parser) augAssignOp() (string, bool) {
	if p.cur().Kind != TokOp {
		return "", false
	}

	for _, op := range augAssignOps {
		if p.cur().Text == op {
			return op, true
		}
	}

	return "", false
}

// parseTargetList parses a comma-separated list of targets as a single
// expression: a bare expr if there's no comma, a TupleExpr otherwise. This
// doubles as general expression parsing for the left side of a statement.
func (p *Parser) parseTargetList() ast.Expr {
	first := p.parseExpr()

	if !p.atOp(",") {
		return first
	}

	sp := first.Span()
	elts := []ast.Expr{first}

	for p.atOp(",") {
		p.advance()

		if p.atOp("=") || p.atOp(":") || p.cur().Kind == TokNewline || p.atOp(";") {
			break
		}

		elts = append(elts, p.parseExpr())
	}

	return ast.NewTupleExpr(sp, elts)
}

func (p *Parser) parseTarget() ast.Expr { return p.parseExpr() }

func (p *Parser) parseExprList() ast.Expr {
	first := p.parseExpr()

	if !p.atOp(",") {
		return first
	}

	sp := first.Span()
	elts := []ast.Expr{first}

	for p.atOp(",") {
		p.advance()

		if p.cur().Kind == TokNewline || p.atOp(";") || p.cur().Kind == TokEOF {
			break
		}

		elts = append(elts, p.parseExpr())
	}

	return ast.NewTupleExpr(sp, elts)
}
