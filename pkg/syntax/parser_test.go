package syntax_test

import (
	"testing"

	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/syntax"
	"github.com/haldis-lang/pyscope/pkg/util/assert"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

func parseOK(t *testing.T, text string) *ast.Module {
	t.Helper()

	file := source.NewFile("t.py", []byte(text))

	mod, errs := syntax.ParseModule(file)
	assert.Equal(t, 0, len(errs), "unexpected parse errors")

	return mod
}

func TestParser_SimpleAssignment(t *testing.T) {
	mod := parseOK(t, "x = 1\n")
	assert.Equal(t, 1, len(mod.Body))

	assign, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")
	assert.Equal(t, 1, len(assign.Targets))

	name, ok := assign.Targets[0].(*ast.Name)
	assert.True(t, ok, "expected a Name target")
	assert.Equal(t, "x", name.Id)
}

func TestParser_ChainedAssignment(t *testing.T) {
	mod := parseOK(t, "a = b = 1\n")
	assign, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")
	assert.Equal(t, 2, len(assign.Targets))
}

func TestParser_FunctionDef(t *testing.T) {
	mod := parseOK(t, "def f(a, b=1, *args, **kwargs):\n    return a + b\n")
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	assert.True(t, ok, "expected a FunctionDef")
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, 4, len(fn.Params))
	assert.Equal(t, ast.ParamArgs, fn.Params[2].Kind)
	assert.Equal(t, ast.ParamKwargs, fn.Params[3].Kind)
	assert.Equal(t, 1, len(fn.Body))
}

func TestParser_ClassDef(t *testing.T) {
	mod := parseOK(t, "class Foo(Base, metaclass=Meta):\n    def bar(self):\n        pass\n")
	cls, ok := mod.Body[0].(*ast.ClassDef)
	assert.True(t, ok, "expected a ClassDef")
	assert.Equal(t, "Foo", cls.Name)
	assert.Equal(t, 1, len(cls.Bases))
	assert.Equal(t, 1, len(cls.Keywords))
	assert.Equal(t, "metaclass", cls.Keywords[0].Name)
}

func TestParser_IfElifElse(t *testing.T) {
	mod := parseOK(t, "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n")
	ifs, ok := mod.Body[0].(*ast.IfStmt)
	assert.True(t, ok, "expected an IfStmt")
	assert.Equal(t, 1, len(ifs.Orelse))

	elif, ok := ifs.Orelse[0].(*ast.IfStmt)
	assert.True(t, ok, "expected elif to desugar into a nested IfStmt")
	assert.Equal(t, 1, len(elif.Orelse))
}

func TestParser_ForWithElse(t *testing.T) {
	mod := parseOK(t, "for x in range(10):\n    pass\nelse:\n    pass\n")
	forStmt, ok := mod.Body[0].(*ast.ForStmt)
	assert.True(t, ok, "expected a ForStmt")
	assert.Equal(t, 1, len(forStmt.Orelse))
}

func TestParser_TryExceptFinally(t *testing.T) {
	src := `
try:
    risky()
except ValueError as e:
    handle(e)
except:
    pass
finally:
    cleanup()
`
	mod := parseOK(t, src)
	tryStmt, ok := mod.Body[0].(*ast.TryStmt)
	assert.True(t, ok, "expected a TryStmt")
	assert.Equal(t, 2, len(tryStmt.Handlers))
	assert.Equal(t, "e", tryStmt.Handlers[0].Name)
	assert.Equal(t, 1, len(tryStmt.Finally))
}

func TestParser_ImportMerge(t *testing.T) {
	mod := parseOK(t, "import a.b, c.d as e\n")
	imp, ok := mod.Body[0].(*ast.ImportStmt)
	assert.True(t, ok, "expected an ImportStmt")
	assert.Equal(t, 2, len(imp.Names))
	assert.Equal(t, "e", imp.Names[1].AsName)
}

func TestParser_FromImportWildcard(t *testing.T) {
	mod := parseOK(t, "from os import *\n")
	imp, ok := mod.Body[0].(*ast.ImportFromStmt)
	assert.True(t, ok, "expected an ImportFromStmt")
	assert.True(t, imp.IsWildcard)
}

func TestParser_RelativeFromImport(t *testing.T) {
	mod := parseOK(t, "from ..pkg import thing\n")
	imp, ok := mod.Body[0].(*ast.ImportFromStmt)
	assert.True(t, ok, "expected an ImportFromStmt")
	assert.Equal(t, 2, imp.Level)
	assert.Equal(t, "pkg", imp.Module.Head())
}

func TestParser_ListComprehension(t *testing.T) {
	mod := parseOK(t, "x = [i * 2 for i in range(10) if i % 2 == 0]\n")
	assign, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")

	comp, ok := assign.Value.(*ast.ListComp)
	assert.True(t, ok, "expected a ListComp value")
	assert.Equal(t, 1, len(comp.Generators))
	assert.Equal(t, 1, len(comp.Generators[0].Ifs))
}

func TestParser_DictAndSetLiterals(t *testing.T) {
	mod := parseOK(t, "d = {'a': 1, 'b': 2}\ns = {1, 2, 3}\n")

	assignD, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")

	dict, ok := assignD.Value.(*ast.DictExpr)
	assert.True(t, ok, "expected a DictExpr")
	assert.Equal(t, 2, len(dict.Keys))

	assignS, ok := mod.Body[1].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")

	set, ok := assignS.Value.(*ast.SetExpr)
	assert.True(t, ok, "expected a SetExpr")
	assert.Equal(t, 3, len(set.Elts))
}

func TestParser_Lambda(t *testing.T) {
	mod := parseOK(t, "f = lambda x, y=1: x + y\n")
	assign, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")

	lam, ok := assign.Value.(*ast.Lambda)
	assert.True(t, ok, "expected a Lambda value")
	assert.Equal(t, 2, len(lam.Params))
}

func TestParser_WalrusInIf(t *testing.T) {
	mod := parseOK(t, "if (n := compute()):\n    use(n)\n")
	ifs, ok := mod.Body[0].(*ast.IfStmt)
	assert.True(t, ok, "expected an IfStmt")

	_, ok = ifs.Test.(*ast.NamedExpr)
	assert.True(t, ok, "expected the if-test to be a NamedExpr")
}

func TestParser_Slice(t *testing.T) {
	mod := parseOK(t, "y = x[1:10:2]\n")
	assign, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")

	sub, ok := assign.Value.(*ast.Subscript)
	assert.True(t, ok, "expected a Subscript")

	tup, ok := sub.Index.(*ast.TupleExpr)
	assert.True(t, ok, "expected the slice to be represented as a 3-tuple")
	assert.Equal(t, 3, len(tup.Elts))
}

func TestParser_DecoratedFunction(t *testing.T) {
	mod := parseOK(t, "@staticmethod\ndef f():\n    pass\n")
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	assert.True(t, ok, "expected a FunctionDef")
	assert.Equal(t, 1, len(fn.Decorators))
}

func TestParser_AsyncFunctionAwait(t *testing.T) {
	mod := parseOK(t, "async def f():\n    await g()\n")
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	assert.True(t, ok, "expected a FunctionDef")
	assert.True(t, fn.IsAsync)

	exprStmt, ok := fn.Body[0].(*ast.ExprStmt)
	assert.True(t, ok, "expected an ExprStmt")

	_, ok = exprStmt.Value.(*ast.AwaitExpr)
	assert.True(t, ok, "expected an AwaitExpr")
}

func TestParser_GeneratorExpressionCallArg(t *testing.T) {
	mod := parseOK(t, "total = sum(x * x for x in values)\n")
	assign, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok, "expected an Assign statement")

	call, ok := assign.Value.(*ast.Call)
	assert.True(t, ok, "expected a Call")
	assert.Equal(t, 1, len(call.Args))

	_, ok = call.Args[0].(*ast.GeneratorExp)
	assert.True(t, ok, "expected the sole call argument to be a GeneratorExp")
}

func TestParser_WithStatement(t *testing.T) {
	mod := parseOK(t, "with open('f') as fh, open('g') as gh:\n    pass\n")
	w, ok := mod.Body[0].(*ast.WithStmt)
	assert.True(t, ok, "expected a WithStmt")
	assert.Equal(t, 2, len(w.Items))
}

func TestParser_Docstring(t *testing.T) {
	mod := parseOK(t, "\"\"\"module doc\"\"\"\nx = 1\n")
	assert.True(t, mod.Docstring != nil, "expected the module docstring to be extracted")
}
