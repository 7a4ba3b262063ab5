package binder_test

import (
	"testing"

	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/binder"
	"github.com/haldis-lang/pyscope/pkg/syntax"
	"github.com/haldis-lang/pyscope/pkg/util"
	"github.com/haldis-lang/pyscope/pkg/util/assert"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

func bindSource(t *testing.T, text string) (*binder.Scope, []binder.Diagnostic) {
	t.Helper()

	file := source.NewFile("test.py", []byte(text))

	module, parseErrs := syntax.ParseModule(file)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	fi := binder.NewFileInfo("test", file, false, nil)

	return binder.Bind(module, nil, nil, fi)
}

func TestBind_SimpleAssignment(t *testing.T) {
	scope, diags := bindSource(t, "x = 1\ny = x + 1\n")

	assert.Equal(t, 0, len(diags))

	sym, ok := scope.Lookup("x")
	assert.True(t, ok, "expected x to be declared")
	assert.Equal(t, 1, len(sym.Declarations()))

	_, isVar := sym.Declarations()[0].(*binder.VariableDeclaration)
	assert.True(t, isVar, "expected x's declaration to be a VariableDeclaration")

	_, ok = scope.Lookup("y")
	assert.True(t, ok, "expected y to be declared")
}

func TestBind_GlobalRedeclareIsFine(t *testing.T) {
	src := `
x = 1

def f():
    global x
    x = 2
`
	scope, diags := bindSource(t, src)
	assert.Equal(t, 0, len(diags))

	sym, ok := scope.Lookup("x")
	assert.True(t, ok, "expected module-level x")
	assert.Equal(t, 2, len(sym.Declarations()))
}

func TestBind_GlobalConflict(t *testing.T) {
	src := `
def f():
    x = 1
    global x
`
	_, diags := bindSource(t, src)

	found := false

	for _, d := range diags {
		if d.Rule == binder.RuleAssignedBeforeGlobal {
			found = true
		}
	}

	assert.True(t, found, "expected an assigned-before-global diagnostic")
}

func TestBind_GlobalNonlocalConflict(t *testing.T) {
	src := `
def outer():
    x = 1

    def inner():
        nonlocal x
        global x
`
	_, diags := bindSource(t, src)

	found := false

	for _, d := range diags {
		if d.Rule == binder.RuleGlobalNonlocalConflict {
			found = true
		}
	}

	assert.True(t, found, "expected a global/nonlocal conflict diagnostic")
}

func TestBind_GlobalEnsuresGlobalScopeBinding(t *testing.T) {
	src := `
def f():
    global counter
    counter = 1
`
	scope, diags := bindSource(t, src)
	assert.Equal(t, 0, len(diags))

	sym, ok := scope.Lookup("counter")
	assert.True(t, ok, "expected global statement to create 'counter' in the module scope")
	assert.False(t, sym.ClassMember, "module-level global should not be flagged as a class member")
}

func TestBind_NestedImportMerge(t *testing.T) {
	scope, diags := bindSource(t, "import a.b\nimport a.c\n")
	assert.Equal(t, 0, len(diags))

	sym, ok := scope.Lookup("a")
	assert.True(t, ok, "expected merged alias 'a'")
	assert.Equal(t, 1, len(sym.Declarations()))

	alias, isAlias := sym.Declarations()[0].(*binder.AliasDeclaration)
	assert.True(t, isAlias, "expected an AliasDeclaration")
	assert.Equal(t, 2, len(alias.ImplicitImports))
}

func TestBind_MethodMemberBinding(t *testing.T) {
	src := `
class Point:
    def __init__(self, x):
        self.x = x
        self.y = 0
`
	scope, diags := bindSource(t, src)
	assert.Equal(t, 0, len(diags))

	classSym, ok := scope.Lookup("Point")
	assert.True(t, ok, "expected class Point")

	classDecl, isClass := classSym.Declarations()[0].(*binder.ClassDeclaration)
	assert.True(t, isClass, "expected a ClassDeclaration")

	xSym, ok := classDecl.Scope.Lookup("x")
	assert.True(t, ok, "expected instance member 'x' recorded on class scope")
	assert.True(t, xSym.InstanceMember, "expected InstanceMember to be set")

	ySym, ok := classDecl.Scope.Lookup("y")
	assert.True(t, ok, "expected instance member 'y' recorded on class scope")
	assert.True(t, ySym.InstanceMember, "expected InstanceMember to be set")
}

func TestBind_DeadCodePruning(t *testing.T) {
	src := `
if False:
    dead = 1
else:
    alive = 2
`
	scope, diags := bindSource(t, src)
	assert.Equal(t, 0, len(diags))

	_, deadDeclared := scope.Lookup("dead")
	assert.False(t, deadDeclared, "dead branch should not declare its target")

	_, aliveDeclared := scope.Lookup("alive")
	assert.True(t, aliveDeclared, "live branch should declare its target")
}

func TestBind_DeadCodeStillReportsDiagnostics(t *testing.T) {
	src := `
if False:
    yield 1
    dead = 1
`
	scope, diags := bindSource(t, src)

	found := false

	for _, d := range diags {
		if d.Rule == binder.RuleYieldOutsideFunction {
			found = true
		}
	}

	assert.True(t, found, "a yield inside a statically dead branch must still be diagnosed")

	_, deadDeclared := scope.Lookup("dead")
	assert.False(t, deadDeclared, "the dead branch's own declarations must still be suppressed")
}

func TestBind_WildcardImport(t *testing.T) {
	src := "from os import *\n"

	lookup := fakeWildcardLookup{names: []string{"getcwd", "path"}}

	file := source.NewFile("test.py", []byte(src))

	module, parseErrs := syntax.ParseModule(file)
	assert.Equal(t, 0, len(parseErrs))

	fi := binder.NewFileInfo("test", file, false, nil)
	scope, diags := binder.Bind(module, nil, lookup, fi)
	assert.Equal(t, 0, len(diags))

	_, ok := scope.Lookup("getcwd")
	assert.True(t, ok, "expected wildcard-imported name 'getcwd'")

	_, ok = scope.Lookup("path")
	assert.True(t, ok, "expected wildcard-imported name 'path'")
}

type fakeWildcardLookup struct {
	names []string
}

func (fakeWildcardLookup) Resolve(_ util.Path) (*ast.ImportInfo, bool) {
	return nil, false
}

func (f fakeWildcardLookup) WildcardNames(_ util.Path) ([]string, bool) {
	return f.names, true
}

func (fakeWildcardLookup) ImplicitSubmodules(_ util.Path) ([]ast.ImplicitSubmodule, bool) {
	return nil, false
}
