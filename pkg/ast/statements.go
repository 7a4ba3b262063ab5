package ast

import "github.com/haldis-lang/pyscope/pkg/util/source"

// NamePos pairs a bare name with the source span of its own occurrence,
// distinct from the span of the statement containing it — needed so
// "global x, y" can report an error range for "y" specifically.
type NamePos struct {
	Sp   source.Span
	Name string
}

// Assign is a simple (possibly chained, "a = b = e") assignment.
type Assign struct {
	base
	Targets []Expr
	Value   Expr
}

func (*Assign) isStmt() {}

// NewAssign constructs an assignment statement.
func NewAssign(sp source.Span, targets []Expr, value Expr) *Assign {
	return &Assign{base{sp}, targets, value}
}

// AugAssign is an augmented assignment, e.g. "x += 1".
type AugAssign struct {
	base
	Target Expr
	Op     string
	Value  Expr
}

func (*AugAssign) isStmt() {}

// NewAugAssign constructs an augmented assignment statement.
func NewAugAssign(sp source.Span, target Expr, op string, value Expr) *AugAssign {
	return &AugAssign{base{sp}, target, op, value}
}

// AnnAssign is a typed assignment, e.g. "x: int" or "x: int = 1".
type AnnAssign struct {
	base
	Target     Expr
	Annotation Expr
	Value      Expr // nil if no initializer given
}

func (*AnnAssign) isStmt() {}

// NewAnnAssign constructs a typed assignment statement.
func NewAnnAssign(sp source.Span, target, annotation, value Expr) *AnnAssign {
	return &AnnAssign{base{sp}, target, annotation, value}
}

// DelStmt deletes one or more targets.
type DelStmt struct {
	base
	Targets []Expr
}

func (*DelStmt) isStmt() {}

// NewDelStmt constructs a del statement.
func NewDelStmt(sp source.Span, targets []Expr) *DelStmt {
	return &DelStmt{base{sp}, targets}
}

// ForStmt is a "for target in iter: body else: orelse" statement.
type ForStmt struct {
	base
	Target  Expr
	Iter    Expr
	Body    []Stmt
	Orelse  []Stmt
	IsAsync bool
}

func (*ForStmt) isStmt() {}

// NewForStmt constructs a for statement.
func NewForStmt(sp source.Span, target, iter Expr, body, orelse []Stmt, isAsync bool) *ForStmt {
	return &ForStmt{base{sp}, target, iter, body, orelse, isAsync}
}

// WhileStmt is a "while test: body else: orelse" statement.
type WhileStmt struct {
	base
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*WhileStmt) isStmt() {}

// NewWhileStmt constructs a while statement.
func NewWhileStmt(sp source.Span, test Expr, body, orelse []Stmt) *WhileStmt {
	return &WhileStmt{base{sp}, test, body, orelse}
}

// IfStmt is an "if test: body else: orelse" statement.  A chained
// "elif"/"else" tail is modeled as a single nested IfStmt as the sole
// element of Orelse, exactly as a parser desugars "elif".
type IfStmt struct {
	base
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*IfStmt) isStmt() {}

// NewIfStmt constructs an if statement.
func NewIfStmt(sp source.Span, test Expr, body, orelse []Stmt) *IfStmt {
	return &IfStmt{base{sp}, test, body, orelse}
}

// WithItem is a single "ctx as vars" clause of a with statement.
type WithItem struct {
	ContextExpr  Expr
	OptionalVars Expr // nil if no "as" clause
}

// WithStmt is a (possibly async, possibly multi-item) with statement.
type WithStmt struct {
	base
	Items   []WithItem
	Body    []Stmt
	IsAsync bool
}

func (*WithStmt) isStmt() {}

// NewWithStmt constructs a with statement.
func NewWithStmt(sp source.Span, items []WithItem, body []Stmt, isAsync bool) *WithStmt {
	return &WithStmt{base{sp}, items, body, isAsync}
}

// ExceptHandler is a single "except Type as name: body" clause.
type ExceptHandler struct {
	Sp     source.Span
	Type   Expr   // nil for a bare "except:"
	Name   string // empty if no "as name" clause
	NameSp source.Span
	Body   []Stmt
}

// TryStmt is a "try/except*/else/finally" statement.
type TryStmt struct {
	base
	Body     []Stmt
	Handlers []ExceptHandler
	Orelse   []Stmt
	Finally  []Stmt
}

func (*TryStmt) isStmt() {}

// NewTryStmt constructs a try statement.
func NewTryStmt(sp source.Span, body []Stmt, handlers []ExceptHandler, orelse, finally []Stmt) *TryStmt {
	return &TryStmt{base{sp}, body, handlers, orelse, finally}
}

// RaiseStmt is a "raise [exc [from cause]]" statement.
type RaiseStmt struct {
	base
	Exc   Expr // nil for a bare "raise"
	Cause Expr // nil if no "from" clause
}

func (*RaiseStmt) isStmt() {}

// NewRaiseStmt constructs a raise statement.
func NewRaiseStmt(sp source.Span, exc, cause Expr) *RaiseStmt {
	return &RaiseStmt{base{sp}, exc, cause}
}

// GlobalStmt is a "global x, y, ..." statement.
type GlobalStmt struct {
	base
	Names []NamePos
}

func (*GlobalStmt) isStmt() {}

// NewGlobalStmt constructs a global statement.
func NewGlobalStmt(sp source.Span, names []NamePos) *GlobalStmt {
	return &GlobalStmt{base{sp}, names}
}

// NonlocalStmt is a "nonlocal x, y, ..." statement.
type NonlocalStmt struct {
	base
	Names []NamePos
}

func (*NonlocalStmt) isStmt() {}

// NewNonlocalStmt constructs a nonlocal statement.
func NewNonlocalStmt(sp source.Span, names []NamePos) *NonlocalStmt {
	return &NonlocalStmt{base{sp}, names}
}

// ReturnStmt is a "return [value]" statement.
type ReturnStmt struct {
	base
	Value Expr // nil for a bare "return"
}

func (*ReturnStmt) isStmt() {}

// NewReturnStmt constructs a return statement.
func NewReturnStmt(sp source.Span, value Expr) *ReturnStmt {
	return &ReturnStmt{base{sp}, value}
}

// PassStmt is a "pass" statement.
type PassStmt struct{ base }

func (*PassStmt) isStmt() {}

// NewPassStmt constructs a pass statement.
func NewPassStmt(sp source.Span) *PassStmt { return &PassStmt{base{sp}} }

// BreakStmt is a "break" statement.
type BreakStmt struct{ base }

func (*BreakStmt) isStmt() {}

// NewBreakStmt constructs a break statement.
func NewBreakStmt(sp source.Span) *BreakStmt { return &BreakStmt{base{sp}} }

// ContinueStmt is a "continue" statement.
type ContinueStmt struct{ base }

func (*ContinueStmt) isStmt() {}

// NewContinueStmt constructs a continue statement.
func NewContinueStmt(sp source.Span) *ContinueStmt { return &ContinueStmt{base{sp}} }

// ExprStmt wraps an expression evaluated purely for its side effects (or, at
// the head of a module/class/function body, a doc-string).
type ExprStmt struct {
	base
	Value Expr
}

func (*ExprStmt) isStmt() {}

// NewExprStmt constructs an expression statement.
func NewExprStmt(sp source.Span, value Expr) *ExprStmt {
	return &ExprStmt{base{sp}, value}
}
