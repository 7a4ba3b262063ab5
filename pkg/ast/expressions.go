package ast

import "github.com/haldis-lang/pyscope/pkg/util/source"

// Name is a bare identifier reference or assignment target.
type Name struct {
	base
	Id string
}

func (*Name) isExpr() {}

// NewName constructs a name expression.
func NewName(sp source.Span, id string) *Name { return &Name{base{sp}, id} }

// ConstKind enumerates the singleton constant literals.
type ConstKind int

// The recognized singleton constants.
const (
	ConstTrue ConstKind = iota
	ConstFalse
	ConstNone
	ConstEllipsis
)

// ConstLit is a singleton constant literal (True/False/None/...).
type ConstLit struct {
	base
	Kind ConstKind
}

func (*ConstLit) isExpr() {}

// NewConstLit constructs a constant literal expression.
func NewConstLit(sp source.Span, kind ConstKind) *ConstLit { return &ConstLit{base{sp}, kind} }

// NumberLit is an integer or floating-point literal.
type NumberLit struct {
	base
	Text string
}

func (*NumberLit) isExpr() {}

// NewNumberLit constructs a number literal expression.
func NewNumberLit(sp source.Span, text string) *NumberLit { return &NumberLit{base{sp}, text} }

// EscapeErrorKind enumerates the recognized string/f-string escape
// diagnostics.
type EscapeErrorKind int

// The recognized string/f-string escape diagnostics.
const (
	// InvalidEscapeSequence is e.g. "\q" in a non-raw string.
	InvalidEscapeSequence EscapeErrorKind = iota
	// EscapeInFormatExpression is a backslash inside an f-string's "{...}".
	EscapeInFormatExpression
	// StrayCloseBrace is an unmatched "}" in an f-string.
	StrayCloseBrace
	// UnterminatedFormatExpression is an f-string whose "{...}" never closes.
	UnterminatedFormatExpression
)

// EscapeError anchors one string/f-string escape diagnostic to its span
// within the literal.
type EscapeError struct {
	Sp   source.Span
	Kind EscapeErrorKind
}

// StringLit is a string or f-string literal.  Escape/format errors detected
// by the lexer are carried alongside rather than raised there, since only
// the binder is responsible for turning them into diagnostics at the
// configured severity.
type StringLit struct {
	base
	Value        string
	IsFString    bool
	EscapeErrors []EscapeError
}

func (*StringLit) isExpr() {}

// NewStringLit constructs a string literal expression.
func NewStringLit(sp source.Span, value string, isFString bool, errs []EscapeError) *StringLit {
	return &StringLit{base{sp}, value, isFString, errs}
}

// BoolOp is a short-circuiting "and"/"or" chain.
type BoolOp struct {
	base
	Op     string // "and" | "or"
	Values []Expr
}

func (*BoolOp) isExpr() {}

// NewBoolOp constructs a boolean-operator expression.
func NewBoolOp(sp source.Span, op string, values []Expr) *BoolOp {
	return &BoolOp{base{sp}, op, values}
}

// UnaryOp is a prefix unary operator expression.
type UnaryOp struct {
	base
	Op      string // "not" | "-" | "+" | "~"
	Operand Expr
}

func (*UnaryOp) isExpr() {}

// NewUnaryOp constructs a unary-operator expression.
func NewUnaryOp(sp source.Span, op string, operand Expr) *UnaryOp {
	return &UnaryOp{base{sp}, op, operand}
}

// BinOp is an infix binary operator expression.
type BinOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinOp) isExpr() {}

// NewBinOp constructs a binary-operator expression.
func NewBinOp(sp source.Span, op string, left, right Expr) *BinOp {
	return &BinOp{base{sp}, op, left, right}
}

// Compare is a (possibly chained) comparison expression, e.g. "a < b <= c".
type Compare struct {
	base
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (*Compare) isExpr() {}

// NewCompare constructs a comparison expression.
func NewCompare(sp source.Span, left Expr, ops []string, comparators []Expr) *Compare {
	return &Compare{base{sp}, left, ops, comparators}
}

// Call is a function/method call expression.
type Call struct {
	base
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

func (*Call) isExpr() {}

// NewCall constructs a call expression.
func NewCall(sp source.Span, fn Expr, args []Expr, kw []Keyword) *Call {
	return &Call{base{sp}, fn, args, kw}
}

// Attribute is a "value.attr" member access, used both as an expression and
// (when it appears as an assignment target inside a method) as a
// class/instance member declaration site.
type Attribute struct {
	base
	Value  Expr
	Attr   string
	AttrSp source.Span
}

func (*Attribute) isExpr() {}

// NewAttribute constructs a member-access expression.
func NewAttribute(sp, attrSp source.Span, value Expr, attr string) *Attribute {
	return &Attribute{base{sp}, value, attr, attrSp}
}

// Subscript is a "value[index]" expression.
type Subscript struct {
	base
	Value Expr
	Index Expr
}

func (*Subscript) isExpr() {}

// NewSubscript constructs a subscript expression.
func NewSubscript(sp source.Span, value, index Expr) *Subscript {
	return &Subscript{base{sp}, value, index}
}

// TupleExpr is a tuple literal or (when used as a target) a tuple-unpack
// assignment target.
type TupleExpr struct {
	base
	Elts []Expr
}

func (*TupleExpr) isExpr() {}

// NewTupleExpr constructs a tuple expression.
func NewTupleExpr(sp source.Span, elts []Expr) *TupleExpr { return &TupleExpr{base{sp}, elts} }

// ListExpr is a list literal or (when used as a target) a list-unpack
// assignment target.
type ListExpr struct {
	base
	Elts []Expr
}

func (*ListExpr) isExpr() {}

// NewListExpr constructs a list expression.
func NewListExpr(sp source.Span, elts []Expr) *ListExpr { return &ListExpr{base{sp}, elts} }

// SetExpr is a set literal.
type SetExpr struct {
	base
	Elts []Expr
}

func (*SetExpr) isExpr() {}

// NewSetExpr constructs a set expression.
func NewSetExpr(sp source.Span, elts []Expr) *SetExpr { return &SetExpr{base{sp}, elts} }

// DictExpr is a dict literal.  A nil Keys[i] marks a "**value" unpack entry.
type DictExpr struct {
	base
	Keys   []Expr
	Values []Expr
}

func (*DictExpr) isExpr() {}

// NewDictExpr constructs a dict expression.
func NewDictExpr(sp source.Span, keys, values []Expr) *DictExpr {
	return &DictExpr{base{sp}, keys, values}
}

// StarredExpr is a "*value" unpack, valid both in call arguments and
// assignment targets ("a, *rest = ...").
type StarredExpr struct {
	base
	Value Expr
}

func (*StarredExpr) isExpr() {}

// NewStarredExpr constructs a starred-unpack expression.
func NewStarredExpr(sp source.Span, value Expr) *StarredExpr {
	return &StarredExpr{base{sp}, value}
}

// YieldExpr is a "yield [value]" or "yield from value" expression.
type YieldExpr struct {
	base
	Value  Expr // nil for a bare "yield"
	IsFrom bool
}

func (*YieldExpr) isExpr() {}

// NewYieldExpr constructs a yield expression.
func NewYieldExpr(sp source.Span, value Expr, isFrom bool) *YieldExpr {
	return &YieldExpr{base{sp}, value, isFrom}
}

// AwaitExpr is an "await value" expression.
type AwaitExpr struct {
	base
	Value Expr
}

func (*AwaitExpr) isExpr() {}

// NewAwaitExpr constructs an await expression.
func NewAwaitExpr(sp source.Span, value Expr) *AwaitExpr { return &AwaitExpr{base{sp}, value} }

// IfExp is a conditional ("ternary") expression: "body if test else orelse".
type IfExp struct {
	base
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (*IfExp) isExpr() {}

// NewIfExp constructs a conditional expression.
func NewIfExp(sp source.Span, test, body, orelse Expr) *IfExp {
	return &IfExp{base{sp}, test, body, orelse}
}

// NamedExpr is a walrus assignment expression, "target := value".
type NamedExpr struct {
	base
	Target *Name
	Value  Expr
}

func (*NamedExpr) isExpr() {}

// NewNamedExpr constructs a walrus-assignment expression.
func NewNamedExpr(sp source.Span, target *Name, value Expr) *NamedExpr {
	return &NamedExpr{base{sp}, target, value}
}
