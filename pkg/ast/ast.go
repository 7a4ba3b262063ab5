// Package ast defines the tagged-variant syntax tree the binder consumes.
// This package is deliberately thin and inert: it carries no binding state of
// its own (the binder keeps scopes in its own Scope tree, each Scope pointing
// back at the node that owns it, see pkg/binder), and nothing here knows how the tree was produced — the
// lexer/parser that builds one (pkg/syntax in this module, or any other)
// is an external collaborator.
package ast

import "github.com/haldis-lang/pyscope/pkg/util/source"

// Node is implemented by every syntax tree element that occupies a source
// range.
type Node interface {
	Span() source.Span
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	isStmt()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	isExpr()
}

// base embeds a span and gives every node its Span() method for free.
type base struct {
	sp source.Span
}

// Span returns the source range covered by this node.
func (b base) Span() source.Span { return b.sp }

// Module is the root of a single file's syntax tree.
type Module struct {
	base
	Body []Stmt
	// Docstring is the module's doc-string statement, if its first
	// statement is a non-f-string string expression.
	Docstring *StringLit
}

// NewModule constructs a module node, extracting its doc-string if present.
func NewModule(sp source.Span, body []Stmt) *Module {
	m := &Module{base{sp}, body, nil}

	if len(body) > 0 {
		if es, ok := body[0].(*ExprStmt); ok {
			if s, ok := es.Value.(*StringLit); ok && !s.IsFString {
				m.Docstring = s
			}
		}
	}

	return m
}

// Param is a single function or lambda parameter.
type Param struct {
	Sp         source.Span
	Name       string
	Annotation Expr // nil if unannotated
	Default    Expr // nil if required
	// Kind distinguishes plain/*args/**kwargs positions. The binder does
	// not read it: every kind binds its name the same way.
	Kind ParamKind
}

// ParamKind enumerates the syntactic forms a parameter may take.
type ParamKind int

const (
	// ParamPlain is an ordinary (possibly keyword-only) parameter.
	ParamPlain ParamKind = iota
	// ParamArgs is the *args catch-all.
	ParamArgs
	// ParamKwargs is the **kwargs catch-all.
	ParamKwargs
)

// ClassDef declares a class.  Base classes are walked in the enclosing
// scope before the class scope is entered.
type ClassDef struct {
	base
	NameSpan   source.Span
	Name       string
	Bases      []Expr
	Keywords   []Keyword
	Decorators []Expr
	Body       []Stmt
	Docstring  *StringLit
}

func (*ClassDef) isStmt() {}

// NewClassDef constructs a class declaration, extracting its doc-string.
func NewClassDef(sp, nameSp source.Span, name string, bases []Expr, kw []Keyword,
	decorators []Expr, body []Stmt) *ClassDef {
	c := &ClassDef{base{sp}, nameSp, name, bases, kw, decorators, body, nil}

	if len(body) > 0 {
		if es, ok := body[0].(*ExprStmt); ok {
			if s, ok := es.Value.(*StringLit); ok && !s.IsFString {
				c.Docstring = s
			}
		}
	}

	return c
}

// Keyword is a "name=value" argument, used both in call expressions and in
// class base lists (where "metaclass=..." is meaningful).
type Keyword struct {
	Sp    source.Span
	Name  string // empty for a bare **kwargs unpack
	Value Expr
}

// FunctionDef declares a (possibly async) function or method.
type FunctionDef struct {
	base
	NameSpan    source.Span
	Name        string
	Params      []Param
	ReturnAnnot Expr // nil if unannotated
	Decorators  []Expr
	IsAsync     bool
	Body        []Stmt
	Docstring   *StringLit
}

func (*FunctionDef) isStmt() {}

// NewFunctionDef constructs a function declaration, extracting its
// doc-string.
func NewFunctionDef(sp, nameSp source.Span, name string, params []Param, ret Expr,
	decorators []Expr, isAsync bool, body []Stmt) *FunctionDef {
	f := &FunctionDef{base{sp}, nameSp, name, params, ret, decorators, isAsync, body, nil}

	if len(body) > 0 {
		if es, ok := body[0].(*ExprStmt); ok {
			if s, ok := es.Value.(*StringLit); ok && !s.IsFString {
				f.Docstring = s
			}
		}
	}

	return f
}

// Lambda is an anonymous function expression.
type Lambda struct {
	base
	Params []Param
	Body   Expr
}

func (*Lambda) isExpr() {}

// NewLambda constructs a lambda expression.
func NewLambda(sp source.Span, params []Param, body Expr) *Lambda {
	return &Lambda{base{sp}, params, body}
}
