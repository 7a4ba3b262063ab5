package syntax

import (
	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// parseNamedExpr parses a "test [':=' test]" — the only place a bare
// walrus assignment is legal directly as a statement's condition, outside
// any enclosing parentheses.
func (p *Parser) parseNamedExpr() ast.Expr {
	left := p.parseExpr()

	if p.atOp(":=") {
		p.advance()

		name, ok := left.(*ast.Name)
		if !ok {
			p.errf(left.Span(), "left side of ':=' must be a name")
			return left
		}

		value := p.parseExpr()

		return ast.NewNamedExpr(name.Span(), name, value)
	}

	return left
}

// parseExpr parses one expression, entry point for everything except a
// raw comma-separated expression list (see parseExprList).
func (p *Parser) parseExpr() ast.Expr {
	if p.atKeyword("lambda") {
		return p.parseLambda()
	}

	if p.atKeyword("yield") {
		return p.parseYield()
	}

	return p.parseTernary()
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.advance().Span

	var params []ast.Param

	for !p.atOp(":") && p.cur().Kind != TokEOF {
		kind := ast.ParamPlain

		if p.atOp("*") {
			p.advance()
			kind = ast.ParamArgs
		} else if p.atOp("**") {
			p.advance()
			kind = ast.ParamKwargs
		}

		nameTok := p.expectName()

		var def ast.Expr

		if p.atOp("=") {
			p.advance()
			def = p.parseExpr()
		}

		params = append(params, ast.Param{Sp: nameTok.Span, Name: nameTok.Text, Default: def, Kind: kind})

		if p.atOp(",") {
			p.advance()
		} else {
			break
		}
	}

	p.expectOp(":")
	body := p.parseExpr()

	return ast.NewLambda(start, params, body)
}

func (p *Parser) parseYield() ast.Expr {
	start := p.advance().Span

	if p.atKeyword("from") {
		p.advance()
		value := p.parseExpr()

		return ast.NewYieldExpr(start, value, true)
	}

	if p.cur().Kind == TokNewline || p.atOp(")") || p.atOp(";") || p.atOp("]") || p.atOp("}") ||
		p.cur().Kind == TokEOF {
		return ast.NewYieldExpr(start, nil, false)
	}

	return ast.NewYieldExpr(start, p.parseExprList(), false)
}

func (p *Parser) parseTernary() ast.Expr {
	body := p.parseOrTest()

	if p.atKeyword("if") {
		p.advance()
		test := p.parseOrTest()
		p.expectKeyword("else")
		orelse := p.parseExpr()

		return ast.NewIfExp(body.Span(), test, body, orelse)
	}

	return body
}

func (p *Parser) parseOrTest() ast.Expr {
	left := p.parseAndTest()

	if !p.atKeyword("or") {
		return left
	}

	values := []ast.Expr{left}

	for p.atKeyword("or") {
		p.advance()
		values = append(values, p.parseAndTest())
	}

	return ast.NewBoolOp(left.Span(), "or", values)
}

func (p *Parser) parseAndTest() ast.Expr {
	left := p.parseNotTest()

	if !p.atKeyword("and") {
		return left
	}

	values := []ast.Expr{left}

	for p.atKeyword("and") {
		p.advance()
		values = append(values, p.parseNotTest())
	}

	return ast.NewBoolOp(left.Span(), "and", values)
}

func (p *Parser) parseNotTest() ast.Expr {
	if p.atKeyword("not") {
		start := p.advance().Span
		operand := p.parseNotTest()

		return ast.NewUnaryOp(start, "not", operand)
	}

	return p.parseComparison()
}

var comparisonOps = map[string]bool{
	"<": true, ">": true, "==": true, "!=": true, "<=": true, ">=": true,
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseBitOr()

	var ops []string

	var comparators []ast.Expr

	for {
		if p.cur().Kind == TokOp && comparisonOps[p.cur().Text] {
			ops = append(ops, p.advance().Text)
			comparators = append(comparators, p.parseBitOr())
			continue
		}

		if p.atKeyword("in") {
			p.advance()
			ops = append(ops, "in")
			comparators = append(comparators, p.parseBitOr())

			continue
		}

		if p.atKeyword("not") && p.peek(1).Kind == TokKeyword && p.peek(1).Text == "in" {
			p.advance()
			p.advance()
			ops = append(ops, "not in")
			comparators = append(comparators, p.parseBitOr())

			continue
		}

		if p.atKeyword("is") {
			p.advance()

			op := "is"
			if p.atKeyword("not") {
				p.advance()

				op = "is not"
			}

			ops = append(ops, op)
			comparators = append(comparators, p.parseBitOr())

			continue
		}

		break
	}

	if len(ops) == 0 {
		return left
	}

	return ast.NewCompare(left.Span(), left, ops, comparators)
}

func (p *Parser) parseBinaryLevel(next func() ast.Expr, ops ...string) ast.Expr {
	left := next()

	for {
		matched := ""

		if p.cur().Kind == TokOp {
			for _, op := range ops {
				if p.cur().Text == op {
					matched = op
					break
				}
			}
		}

		if matched == "" {
			return left
		}

		p.advance()
		right := next()
		left = ast.NewBinOp(left.Span(), matched, left, right)
	}
}

func (p *Parser) parseBitOr() ast.Expr  { return p.parseBinaryLevel(p.parseBitXor, "|") }
func (p *Parser) parseBitXor() ast.Expr { return p.parseBinaryLevel(p.parseBitAnd, "^") }
func (p *Parser) parseBitAnd() ast.Expr { return p.parseBinaryLevel(p.parseShift, "&") }
func (p *Parser) parseShift() ast.Expr  { return p.parseBinaryLevel(p.parseArith, "<<", ">>") }
func (p *Parser) parseArith() ast.Expr  { return p.parseBinaryLevel(p.parseTerm, "+", "-") }

func (p *Parser) parseTerm() ast.Expr {
	return p.parseBinaryLevel(p.parseUnary, "*", "/", "//", "%", "@")
}

func (p *Parser) parseUnary() ast.Expr {
	if p.atOp("+") || p.atOp("-") || p.atOp("~") {
		op := p.advance()
		operand := p.parseUnary()

		return ast.NewUnaryOp(op.Span, op.Text, operand)
	}

	return p.parsePower()
}

func (p *Parser) parsePower() ast.Expr {
	base := p.parseAwaitOrTrailer()

	if p.atOp("**") {
		p.advance()

		exp := p.parseUnary()

		return ast.NewBinOp(base.Span(), "**", base, exp)
	}

	return base
}

func (p *Parser) parseAwaitOrTrailer() ast.Expr {
	if p.atKeyword("await") {
		start := p.advance().Span
		value := p.parseTrailerChain()

		return ast.NewAwaitExpr(start, value)
	}

	return p.parseTrailerChain()
}

func (p *Parser) parseTrailerChain() ast.Expr {
	expr := p.parseAtom()

	for {
		switch {
		case p.atOp("."):
			p.advance()
			attrTok := p.expectName()
			expr = ast.NewAttribute(expr.Span(), attrTok.Span, expr, attrTok.Text)
		case p.atOp("("):
			expr = p.parseCall(expr)
		case p.atOp("["):
			expr = p.parseSubscript(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	start := p.advance().Span

	var args []ast.Expr

	var keywords []ast.Keyword

	for !p.atOp(")") && p.cur().Kind != TokEOF {
		switch {
		case p.atOp("**"):
			p.advance()
			keywords = append(keywords, ast.Keyword{Sp: start, Value: p.parseExpr()})
		case p.atOp("*"):
			starTok := p.advance()
			args = append(args, ast.NewStarredExpr(starTok.Span, p.parseExpr()))
		case p.cur().Kind == TokName && p.peek(1).Kind == TokOp && p.peek(1).Text == "=":
			kwTok := p.advance()
			p.advance()
			keywords = append(keywords, ast.Keyword{Sp: kwTok.Span, Name: kwTok.Text, Value: p.parseExpr()})
		default:
			e := p.parseExpr()

			if p.atKeyword("for") || (p.atKeyword("async") && p.peek(1).Text == "for") {
				gens := p.parseCompClauses()
				args = append(args, ast.NewGeneratorExp(e.Span(), e, gens))
			} else {
				args = append(args, e)
			}
		}

		if p.atOp(",") {
			p.advance()
		} else {
			break
		}
	}

	p.expectOp(")")

	return ast.NewCall(fn.Span(), fn, args, keywords)
}

func (p *Parser) parseSubscript(value ast.Expr) ast.Expr {
	p.advance()

	var idx ast.Expr

	if p.atOp(":") {
		idx = p.parseSliceFrom(nil)
	} else {
		first := p.parseExpr()

		if p.atOp(":") {
			idx = p.parseSliceFrom(first)
		} else if p.atOp(",") {
			elts := []ast.Expr{first}

			for p.atOp(",") {
				p.advance()

				if p.atOp("]") {
					break
				}

				elts = append(elts, p.parseExpr())
			}

			idx = ast.NewTupleExpr(first.Span(), elts)
		} else {
			idx = first
		}
	}

	p.expectOp("]")

	return ast.NewSubscript(value.Span(), value, idx)
}

// parseSliceFrom parses "[first:] / [first:stop] / [first:stop:step]" once
// the first component (possibly empty, i.e. "[:stop]") and the leading ':'
// have been identified, representing the whole slice as a three-element
// tuple (start, stop, step), with nil for each omitted component, so
// downstream consumers see every sub-expression
// without needing a dedicated Slice node in the AST.
func (p *Parser) parseSliceFrom(first ast.Expr) ast.Expr {
	sp := p.cur().Span
	if first != nil {
		sp = first.Span()
	}

	p.expectOp(":")

	parts := []ast.Expr{first}

	if !p.atOp(":") && !p.atOp("]") {
		parts = append(parts, p.parseExpr())
	} else {
		parts = append(parts, nil)
	}

	if p.atOp(":") {
		p.advance()

		if !p.atOp("]") {
			parts = append(parts, p.parseExpr())
		} else {
			parts = append(parts, nil)
		}
	} else {
		parts = append(parts, nil)
	}

	return ast.NewTupleExpr(sp, parts)
}

func (p *Parser) parseCompClauses() []ast.CompClause {
	var clauses []ast.CompClause

	for p.atKeyword("for") || (p.atKeyword("async") && p.peek(1).Text == "for") {
		isAsync := false
		if p.atKeyword("async") {
			p.advance()
			isAsync = true
		}

		p.expectKeyword("for")
		// As in parseFor, the target stops short of the comparison level so
		// the clause's own "in" is left for expectKeyword.
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
		iter := p.parseOrTest()

		var ifs []ast.Expr

		for p.atKeyword("if") {
			p.advance()
			ifs = append(ifs, p.parseOrTestNoCond())
		}

		clauses = append(clauses, ast.CompClause{Target: target, Iter: iter, Ifs: ifs, IsAsync: isAsync})
	}

	return clauses
}

// parseOrTestNoCond parses a comprehension "if" guard, which in the real
// grammar excludes a trailing conditional expression (no "if/else" of its
// own) to avoid ambiguity with the next "for"/"if" clause.
func (p *Parser) parseOrTestNoCond() ast.Expr { return p.parseOrTest() }

func (p *Parser) parseAtom() ast.Expr {
	switch {
	case p.cur().Kind == TokName:
		t := p.advance()
		return ast.NewName(t.Span, t.Text)
	case p.cur().Kind == TokNumber:
		t := p.advance()
		return ast.NewNumberLit(t.Span, t.Text)
	case p.cur().Kind == TokString || p.cur().Kind == TokFString:
		return p.parseStringGroup()
	case p.atKeyword("True"):
		return ast.NewConstLit(p.advance().Span, ast.ConstTrue)
	case p.atKeyword("False"):
		return ast.NewConstLit(p.advance().Span, ast.ConstFalse)
	case p.atKeyword("None"):
		return ast.NewConstLit(p.advance().Span, ast.ConstNone)
	case p.atOp("..."):
		return ast.NewConstLit(p.advance().Span, ast.ConstEllipsis)
	case p.atOp("("):
		return p.parseParenForm()
	case p.atOp("["):
		return p.parseListForm()
	case p.atOp("{"):
		return p.parseBraceForm()
	case p.atOp("*"):
		t := p.advance()
		return ast.NewStarredExpr(t.Span, p.parseExpr())
	default:
		start := p.cur().Span
		p.errf(start, "expected an expression")
		p.advance()

		return ast.NewConstLit(start, ast.ConstNone)
	}
}

// parseStringGroup concatenates adjacent string literal tokens, matching
// the host language's implicit string-literal concatenation ("a" "b").
func (p *Parser) parseStringGroup() ast.Expr {
	start := p.cur().Span

	var value string

	isF := false

	var escapeErrs []ast.EscapeError

	for p.cur().Kind == TokString || p.cur().Kind == TokFString {
		idx := p.pos
		t := p.advance()
		value += t.Text

		if t.Kind == TokFString {
			isF = true
		}

		escapeErrs = append(escapeErrs, p.lexer.EscapeErrorsFor(idx)...)
	}

	return ast.NewStringLit(start, value, isF, escapeErrs)
}

func (p *Parser) parseParenForm() ast.Expr {
	start := p.advance().Span

	if p.atOp(")") {
		p.advance()
		return ast.NewTupleExpr(start, nil)
	}

	first := p.parseExprOrStarred()

	if p.atKeyword("for") || (p.atKeyword("async") && p.peek(1).Text == "for") {
		gens := p.parseCompClauses()
		p.expectOp(")")

		return ast.NewGeneratorExp(start, first, gens)
	}

	if p.atOp(",") {
		elts := []ast.Expr{first}

		for p.atOp(",") {
			p.advance()

			if p.atOp(")") {
				break
			}

			elts = append(elts, p.parseExprOrStarred())
		}

		p.expectOp(")")

		return ast.NewTupleExpr(start, elts)
	}

	p.expectOp(")")

	return first
}

func (p *Parser) parseExprOrStarred() ast.Expr {
	if p.atOp("*") {
		t := p.advance()
		return ast.NewStarredExpr(t.Span, p.parseExpr())
	}

	return p.parseNamedExprInParen()
}

// parseNamedExprInParen allows a bare walrus assignment inside parens,
// call arguments, and display literals, where the host grammar permits it
// but a bare statement-level expression does not.
func (p *Parser) parseNamedExprInParen() ast.Expr {
	left := p.parseExpr()

	if p.atOp(":=") {
		p.advance()

		name, ok := left.(*ast.Name)
		if !ok {
			p.errf(left.Span(), "left side of ':=' must be a name")
			return left
		}

		return ast.NewNamedExpr(name.Span(), name, p.parseExpr())
	}

	return left
}

func (p *Parser) parseListForm() ast.Expr {
	start := p.advance().Span

	if p.atOp("]") {
		p.advance()
		return ast.NewListExpr(start, nil)
	}

	first := p.parseExprOrStarred()

	if p.atKeyword("for") || (p.atKeyword("async") && p.peek(1).Text == "for") {
		gens := p.parseCompClauses()
		p.expectOp("]")

		return ast.NewListComp(start, first, gens)
	}

	elts := []ast.Expr{first}

	for p.atOp(",") {
		p.advance()

		if p.atOp("]") {
			break
		}

		elts = append(elts, p.parseExprOrStarred())
	}

	p.expectOp("]")

	return ast.NewListExpr(start, elts)
}

func (p *Parser) parseBraceForm() ast.Expr {
	start := p.advance().Span

	if p.atOp("}") {
		p.advance()
		return ast.NewDictExpr(start, nil, nil)
	}

	if p.atOp("**") {
		return p.parseDictFromFirstPair(start, nil, nil)
	}

	first := p.parseExprOrStarred()

	if p.atOp(":") {
		p.advance()
		value := p.parseExpr()

		if p.atKeyword("for") || (p.atKeyword("async") && p.peek(1).Text == "for") {
			gens := p.parseCompClauses()
			p.expectOp("}")

			return ast.NewDictComp(start, first, value, gens)
		}

		return p.parseDictFromFirstPair(start, first, value)
	}

	if p.atKeyword("for") || (p.atKeyword("async") && p.peek(1).Text == "for") {
		gens := p.parseCompClauses()
		p.expectOp("}")

		return ast.NewSetComp(start, first, gens)
	}

	elts := []ast.Expr{first}

	for p.atOp(",") {
		p.advance()

		if p.atOp("}") {
			break
		}

		elts = append(elts, p.parseExprOrStarred())
	}

	p.expectOp("}")

	return ast.NewSetExpr(start, elts)
}

func (p *Parser) parseDictFromFirstPair(start source.Span, firstKey, firstValue ast.Expr) ast.Expr {
	var keys, values []ast.Expr

	if firstKey != nil || firstValue != nil {
		keys = append(keys, firstKey)
		values = append(values, firstValue)
	}

	for p.atOp(",") || p.atOp("**") {
		if p.atOp(",") {
			p.advance()

			if p.atOp("}") {
				break
			}
		}

		if p.atOp("**") {
			p.advance()
			keys = append(keys, nil)
			values = append(values, p.parseExpr())

			continue
		}

		k := p.parseExpr()
		p.expectOp(":")
		v := p.parseExpr()
		keys = append(keys, k)
		values = append(values, v)
	}

	p.expectOp("}")

	return ast.NewDictExpr(start, keys, values)
}
