package binder

import "github.com/haldis-lang/pyscope/pkg/ast"

// StaticTruth is the three-valued result of trying to statically evaluate
// an expression's truthiness: the dead-code pass needs to distinguish
// "known true", "known false", and "don't know" (in which case the branch
// is treated as reachable).
type StaticTruth int

// The three possible static-evaluation outcomes.
const (
	StaticUnknown StaticTruth = iota
	StaticTrue
	StaticFalse
)

// StaticEvaluator decides whether a condition expression is statically
// always-true or always-false, so the binder can skip declaration side
// effects in a provably dead branch. Hosts that track configured constants
// (e.g. "TYPE_CHECKING", platform/version guards) can supply a richer
// implementation; ConstFoldEvaluator covers the literal cases every binder
// needs regardless of host.
type StaticEvaluator interface {
	Evaluate(expr ast.Expr) StaticTruth
}

// ConstFoldEvaluator folds literal booleans, None, and simple not/and/or
// combinations of them, plus a fixed allowance for the "typing.TYPE_CHECKING"
// name (always considered true, matching every real type checker's
// convention, since a generic binder cannot otherwise know that name is
// meaningful).
type ConstFoldEvaluator struct{}

// NewConstFoldEvaluator constructs the default static evaluator.
func NewConstFoldEvaluator() *ConstFoldEvaluator { return &ConstFoldEvaluator{} }

// Evaluate implements StaticEvaluator.
func (e *ConstFoldEvaluator) Evaluate(expr ast.Expr) StaticTruth {
	switch n := expr.(type) {
	case *ast.ConstLit:
		switch n.Kind {
		case ast.ConstTrue:
			return StaticTrue
		case ast.ConstFalse, ast.ConstNone:
			return StaticFalse
		default:
			return StaticUnknown
		}
	case *ast.NumberLit:
		if n.Text == "0" {
			return StaticFalse
		}

		return StaticUnknown
	case *ast.Name:
		if n.Id == "TYPE_CHECKING" {
			return StaticTrue
		}

		return StaticUnknown
	case *ast.Attribute:
		if n.Attr == "TYPE_CHECKING" {
			return StaticTrue
		}

		return StaticUnknown
	case *ast.UnaryOp:
		if n.Op != "not" {
			return StaticUnknown
		}

		switch e.Evaluate(n.Operand) {
		case StaticTrue:
			return StaticFalse
		case StaticFalse:
			return StaticTrue
		default:
			return StaticUnknown
		}
	case *ast.BoolOp:
		return e.evaluateBoolOp(n)
	default:
		return StaticUnknown
	}
}

func (e *ConstFoldEvaluator) evaluateBoolOp(n *ast.BoolOp) StaticTruth {
	results := make([]StaticTruth, len(n.Values))
	for i, v := range n.Values {
		results[i] = e.Evaluate(v)
	}

	if n.Op == "and" {
		for _, r := range results {
			if r == StaticFalse {
				return StaticFalse
			}

			if r == StaticUnknown {
				return StaticUnknown
			}
		}

		return StaticTrue
	}

	for _, r := range results {
		if r == StaticTrue {
			return StaticTrue
		}

		if r == StaticUnknown {
			return StaticUnknown
		}
	}

	return StaticFalse
}
