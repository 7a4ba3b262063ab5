package binder

// Symbol is the set of declarations a single name accumulates within one
// scope.  A name can be declared more than once (e.g. reassigned, or
// declared under both branches of an "if"); the binder never collapses
// these into one — all are kept, in discovery order, and it is the type
// checker's job (outside this package) to narrow or merge them.
type Symbol struct {
	Name string

	declarations []Declaration

	// InitiallyUnbound is set when a binding site creates the symbol and
	// cleared as soon as its first declaration is attached, so it stays set
	// only on a symbol created without one (e.g. by a "self.x = ..." write
	// in a statically dead branch).  Reads never create symbols.
	InitiallyUnbound bool
	// ClassMember is set on every symbol Scope.getOrCreate creates, in any
	// scope kind, and on a class-scope symbol written as "cls.x" or
	// "ClassName.x" from a method; a class-scope symbol that appears only as
	// "self.x" inside a method does not carry it.
	ClassMember bool
	// InstanceMember marks a symbol that received at least one
	// "self.x = ..."-shaped declaration from inside a method body.
	InstanceMember bool
	// IgnoredForProtocolMatch marks names the binder excludes from
	// structural (protocol) comparison — set for dunder attributes the
	// language implicitly supplies on every class.
	IgnoredForProtocolMatch bool
}

func newSymbol(name string) *Symbol {
	return &Symbol{Name: name}
}

// Declarations returns the symbol's declarations in discovery order.
func (s *Symbol) Declarations() []Declaration {
	out := make([]Declaration, len(s.declarations))
	copy(out, s.declarations)

	return out
}

// addDeclaration appends a new declaration and clears InitiallyUnbound,
// since the symbol now has at least one real binding site.
func (s *Symbol) addDeclaration(d Declaration) {
	s.declarations = append(s.declarations, d)
	s.InitiallyUnbound = false
}

// LastDeclaration returns the most recently added declaration, if any.
// Useful for diagnostics that want "the" declaration of a name without
// caring about narrowing.
func (s *Symbol) LastDeclaration() (Declaration, bool) {
	if len(s.declarations) == 0 {
		return nil, false
	}

	return s.declarations[len(s.declarations)-1], true
}
