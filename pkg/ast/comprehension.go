package ast

import "github.com/haldis-lang/pyscope/pkg/util/source"

// CompClause is one "for target in iter [if cond]*" clause of a
// comprehension.  A comprehension may chain several of these (nested fors).
type CompClause struct {
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

// ListComp is a "[element for ...]" comprehension.  Every clause's Iter,
// including the outermost, is walked inside the comprehension's own scope
// along with its target and conditions.
type ListComp struct {
	base
	Element    Expr
	Generators []CompClause
}

func (*ListComp) isExpr() {}

// NewListComp constructs a list-comprehension expression.
func NewListComp(sp source.Span, element Expr, gens []CompClause) *ListComp {
	return &ListComp{base{sp}, element, gens}
}

// SetComp is a "{element for ...}" comprehension.
type SetComp struct {
	base
	Element    Expr
	Generators []CompClause
}

func (*SetComp) isExpr() {}

// NewSetComp constructs a set-comprehension expression.
func NewSetComp(sp source.Span, element Expr, gens []CompClause) *SetComp {
	return &SetComp{base{sp}, element, gens}
}

// DictComp is a "{key: value for ...}" comprehension.
type DictComp struct {
	base
	Key        Expr
	Value      Expr
	Generators []CompClause
}

func (*DictComp) isExpr() {}

// NewDictComp constructs a dict-comprehension expression.
func NewDictComp(sp source.Span, key, value Expr, gens []CompClause) *DictComp {
	return &DictComp{base{sp}, key, value, gens}
}

// GeneratorExp is a "(element for ...)" generator expression.
type GeneratorExp struct {
	base
	Element    Expr
	Generators []CompClause
}

func (*GeneratorExp) isExpr() {}

// NewGeneratorExp constructs a generator-expression expression.
func NewGeneratorExp(sp source.Span, element Expr, gens []CompClause) *GeneratorExp {
	return &GeneratorExp{base{sp}, element, gens}
}
