package binder

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/haldis-lang/pyscope/pkg/ast"
)

// ScopeKind identifies which of the target language's lexical scope flavors
// a Scope represents.
type ScopeKind int

// The five scope flavors the target language's binder must model.
const (
	ScopeBuiltin ScopeKind = iota
	ScopeModule
	ScopeClass
	ScopeFunction
	ScopeComprehension
)

// String renders a scope kind for diagnostics and test failure messages.
func (k ScopeKind) String() string {
	switch k {
	case ScopeBuiltin:
		return "builtin"
	case ScopeModule:
		return "module"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeComprehension:
		return "comprehension"
	default:
		return "unknown"
	}
}

// Scope is a single lexical scope: a node-owned symbol table plus the
// parent link needed to resolve global/nonlocal lookups.  Scopes are
// allocated once, at their owning node, and live for the duration of
// analysis.  The parent link is non-owning, and nothing here frees scopes
// individually.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	// Owner is the syntax node which introduced this scope: *ast.Module,
	// *ast.ClassDef, *ast.FunctionDef, *ast.Lambda, or a comprehension node.
	Owner ast.Node
	// AlwaysRaises is set when a "raise" statement is walked directly in
	// this scope outside a statically dead branch; consulted by downstream
	// flow analysis only.
	AlwaysRaises bool
	// IsAsyncFunction is meaningful only when Kind is ScopeFunction; it
	// records whether the owning def was declared with "async def", which
	// gates the legality of "await" expressions in its body.
	IsAsyncFunction bool

	symbols map[string]*Symbol
	// order preserves discovery order, since symbol table iteration order
	// is otherwise irrelevant but tests and the built-in export-filter
	// bitset need a stable dense index.
	order []string
	// exportFilter restricts unqualified lookup to a fixed name list; only
	// ever set on the built-in scope.
	exportFilter    *bitset.BitSet
	hasExportFilter bool
}

// NewScope constructs an empty scope of the given kind, owned by the given
// node, with the given (possibly nil, for the built-in scope) parent.
func NewScope(kind ScopeKind, owner ast.Node, parent *Scope) *Scope {
	return &Scope{
		Kind:    kind,
		Parent:  parent,
		Owner:   owner,
		symbols: make(map[string]*Symbol),
	}
}

// Lookup returns the symbol bound to name directly in this scope, without
// consulting the parent chain.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Names returns the names declared directly in this scope, in discovery
// order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)

	return out
}

// declareIndex returns the dense discovery-order index of name in this
// scope, used to back the built-in export-filter bitset.
func (s *Scope) declareIndex(name string) uint {
	for i, n := range s.order {
		if n == name {
			return uint(i)
		}
	}

	panic("declareIndex: name not present in scope")
}

// getOrCreate returns the existing symbol for name in this scope, creating
// one (flagged initiallyUnbound|classMember) if none exists yet.
func (s *Scope) getOrCreate(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}

	sym := newSymbol(name)
	sym.InitiallyUnbound = true
	sym.ClassMember = true
	s.symbols[name] = sym
	s.order = append(s.order, name)

	return sym
}

// ensure returns the scope's symbol for name, creating an empty one (no
// flags set) if absent.  Used by binder setup code (implicit dunder
// seeding) that doesn't want the classMember/initiallyUnbound flags the
// general bind() primitive applies.
func (s *Scope) ensure(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}

	sym := newSymbol(name)
	s.symbols[name] = sym
	s.order = append(s.order, name)

	return sym
}

// GlobalScope returns the nearest enclosing scope of kind Module or
// Builtin, including s itself.
func (s *Scope) GlobalScope() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == ScopeModule || cur.Kind == ScopeBuiltin {
			return cur
		}
	}

	panic("scope chain has no enclosing module or builtin scope")
}

// EnclosingFunctionOrModuleScope returns the nearest enclosing scope whose
// syntactic owner is a function or module node, including s itself, skipping
// class and comprehension scopes.  walkWalrus uses it to find the scope a
// walrus target inside a comprehension binds in.
func (s *Scope) EnclosingFunctionOrModuleScope() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == ScopeFunction || cur.Kind == ScopeModule || cur.Kind == ScopeBuiltin {
			return cur
		}
	}

	panic("scope chain has no enclosing function or module scope")
}

// enclosingFunction walks up through comprehension scopes only (stopping at
// the first class, module or builtin scope) looking for the nearest
// enclosing Function scope, and returns it with ok=true if one was found.
// Used by the return/yield/await/nonlocal checks.
func (s *Scope) enclosingFunction() (*Scope, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		switch cur.Kind {
		case ScopeFunction:
			return cur, true
		case ScopeComprehension:
			continue
		default:
			return nil, false
		}
	}

	return nil, false
}

// SetExportFilter restricts this scope's unqualified lookup to exactly the
// names in allowed, using a bitset keyed by each name's discovery-order
// index as a dense membership test.
func (s *Scope) SetExportFilter(allowed map[string]bool) {
	bs := bitset.New(uint(len(s.order)))

	for i, name := range s.order {
		if allowed[name] {
			bs.Set(uint(i))
		}
	}

	s.exportFilter = bs
	s.hasExportFilter = true
}

// IsExported reports whether name is visible to unqualified lookup from
// outside this scope.  Scopes without an export filter export everything
// they declare.
func (s *Scope) IsExported(name string) bool {
	if !s.hasExportFilter {
		_, ok := s.symbols[name]
		return ok
	}

	sym, ok := s.symbols[name]
	if !ok {
		return false
	}

	return s.exportFilter.Test(s.declareIndex(sym.Name))
}
