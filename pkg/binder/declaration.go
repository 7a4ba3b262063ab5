package binder

import (
	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/util"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// Declaration is one binding site for a name: a single point in the source
// where a Class, Function, Parameter, Variable, import Alias, or BuiltIn
// attaches meaning to a name.  It is a closed, tagged-union interface where
// every concrete binding type carries its own unexported marker method
// instead of a discriminant field, which keeps the set of variants closed
// to this package; Go does not check type switches over it for
// exhaustiveness.
type Declaration interface {
	// Span is the source range of the declaration's own binding site (the
	// name token, not the whole statement).
	Span() source.Span
	isDeclaration()
}

type declBase struct {
	sp source.Span
}

func (d declBase) Span() source.Span { return d.sp }

// ClassDeclaration binds a name to a class's own defining ClassDef node.
type ClassDeclaration struct {
	declBase
	Node *ast.ClassDef
	// Scope is the class's scope, reference-identical to the field table
	// consulted for member lookups — no separate "class type" object is
	// needed.
	Scope *Scope
	// ImplicitObjectBase is set when the class gave no base class of its
	// own (metaclass= keywords don't count), meaning it inherits from
	// "object" implicitly.
	ImplicitObjectBase bool
	// BuiltInClass marks a class declared in the built-in scope itself, or
	// in any stub file, so downstream consumers can tell it apart from a
	// class an ordinary module defines.
	BuiltInClass bool
}

func (*ClassDeclaration) isDeclaration() {}

// NewClassDeclaration constructs a class declaration.
func NewClassDeclaration(sp source.Span, node *ast.ClassDef, scope *Scope) *ClassDeclaration {
	return &ClassDeclaration{declBase: declBase{sp}, Node: node, Scope: scope}
}

// FunctionDeclaration binds a name to a plain (module- or function-scope)
// function definition.
type FunctionDeclaration struct {
	declBase
	Node  *ast.FunctionDef
	Scope *Scope
}

func (*FunctionDeclaration) isDeclaration() {}

// NewFunctionDeclaration constructs a function declaration.
func NewFunctionDeclaration(sp source.Span, node *ast.FunctionDef, scope *Scope) *FunctionDeclaration {
	return &FunctionDeclaration{declBase{sp}, node, scope}
}

// MethodDeclaration binds a name to a function definition that appears
// directly in a class body.  Kept distinct from FunctionDeclaration because
// method lookup interacts with class-member/instance-member flags on the
// owning Symbol in ways a plain function never does.
type MethodDeclaration struct {
	declBase
	Node      *ast.FunctionDef
	Scope     *Scope
	ClassNode *ast.ClassDef
	IsStatic  bool
	IsClass   bool
}

func (*MethodDeclaration) isDeclaration() {}

// NewMethodDeclaration constructs a method declaration.
func NewMethodDeclaration(sp source.Span, node *ast.FunctionDef, scope *Scope,
	classNode *ast.ClassDef, isStatic, isClass bool) *MethodDeclaration {
	return &MethodDeclaration{declBase{sp}, node, scope, classNode, isStatic, isClass}
}

// ParameterDeclaration binds a name to one parameter of an enclosing
// function or lambda.
type ParameterDeclaration struct {
	declBase
	Node *ast.Param
}

func (*ParameterDeclaration) isDeclaration() {}

// NewParameterDeclaration constructs a parameter declaration.
func NewParameterDeclaration(sp source.Span, node *ast.Param) *ParameterDeclaration {
	return &ParameterDeclaration{declBase{sp}, node}
}

// VariableSource distinguishes how a VariableDeclaration came to exist, since
// downstream narrowing cares whether a binding came from a plain assignment,
// an annotated one, a loop/with/except target, or a member-access write.
type VariableSource int

// The recognized origins of a variable declaration.
const (
	VarAssignment VariableSource = iota
	VarAnnotated
	VarForTarget
	VarWithTarget
	VarExceptTarget
	VarGlobalOrNonlocal
	VarComprehensionTarget
	VarMemberAccess
	VarWalrus
)

// VariableDeclaration binds a name to an assignment-shaped site: a plain
// assignment target, an annotated assignment, a for/with/except target, a
// comprehension target, a walrus target, or (when the owning Symbol has
// ClassMember or InstanceMember set) a "self.x = ..." member write.
type VariableDeclaration struct {
	declBase
	Source         VariableSource
	TypeAnnotation ast.Expr // nil if none
	// IsMember is set when this declaration came from an Attribute target
	// ("self.x = ...") rather than a bare Name target.
	IsMember bool
}

func (*VariableDeclaration) isDeclaration() {}

// NewVariableDeclaration constructs a variable declaration.
func NewVariableDeclaration(sp source.Span, src VariableSource, annot ast.Expr,
	isMember bool) *VariableDeclaration {
	return &VariableDeclaration{declBase{sp}, src, annot, isMember}
}

// AliasDeclaration binds a name introduced by "import ..." or
// "from ... import ...".  Repeated "import a.b" / "import a.c" statements
// merge into a single Alias declaration carrying multiple implicit-import
// entries rather than producing two declarations.
type AliasDeclaration struct {
	declBase
	Path            util.Path
	IsFromImport    bool
	ImportedName    string // for "from m import x", the name "x"; else empty
	Info            *ast.ImportInfo
	LoaderActions   *LoaderActions
	ImplicitImports []ast.ImplicitSubmodule
}

func (*AliasDeclaration) isDeclaration() {}

// NewAliasDeclaration constructs an import alias declaration.
func NewAliasDeclaration(sp source.Span, path util.Path, isFrom bool, importedName string,
	info *ast.ImportInfo) *AliasDeclaration {
	return &AliasDeclaration{declBase: declBase{sp}, Path: path, IsFromImport: isFrom,
		ImportedName: importedName, Info: info}
}

// mergeImplicitImport adds a submodule entry if not already present, by
// name, so merging the same submodule twice never duplicates it.
func (a *AliasDeclaration) mergeImplicitImport(sub ast.ImplicitSubmodule) {
	for _, existing := range a.ImplicitImports {
		if existing.Name == sub.Name {
			return
		}
	}

	a.ImplicitImports = append(a.ImplicitImports, sub)
}

// LoaderActions is the recursive action tree the import resolver walks to
// materialize a dotted import path's submodule objects one segment at a
// time.  Each node corresponds to one path segment; Implicit
// children are actions performed as a side effect of resolving this node
// (e.g. "import a.b.c" implicitly makes "a.b" reachable from "a").
type LoaderActions struct {
	Path      string
	Submodule string
	Implicit  map[string]*LoaderActions
}

// NewLoaderActions constructs an empty action node for one path segment.
func NewLoaderActions(path, submodule string) *LoaderActions {
	return &LoaderActions{Path: path, Submodule: submodule, Implicit: make(map[string]*LoaderActions)}
}

// AddImplicit attaches (or returns the existing) child action for name.
func (l *LoaderActions) AddImplicit(name, path, submodule string) *LoaderActions {
	if child, ok := l.Implicit[name]; ok {
		return child
	}

	child := NewLoaderActions(path, submodule)
	l.Implicit[name] = child

	return child
}

// BuiltInDeclaration binds a name supplied by the execution environment
// rather than any user source file. It carries no syntax node since it has
// no source span of its own; Span returns a zero-length span at offset 0.
type BuiltInDeclaration struct {
	declBase
	Name string
}

func (*BuiltInDeclaration) isDeclaration() {}

// NewBuiltInDeclaration constructs a built-in declaration.
func NewBuiltInDeclaration(name string) *BuiltInDeclaration {
	return &BuiltInDeclaration{declBase{source.Span{}}, name}
}
