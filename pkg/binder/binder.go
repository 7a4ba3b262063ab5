// Package binder implements the name-binding pass of a static analyzer for
// a Python-like scripting language: it walks a parsed module and produces,
// for every lexical scope the module contains, an ordered symbol table of
// declarations, ready for a type checker built on top of this package to
// consume. It never infers or checks types itself, and it never reports a
// Go error for a malformed program — language-level problems are surfaced
// as Diagnostic values returned alongside the bound scope tree, leaving
// panic reserved for this package's own internal invariant violations.
package binder

import (
	"fmt"

	"github.com/haldis-lang/pyscope/pkg/ast"
)

// Bind walks module's statements and returns the module's own Scope (the
// root of a tree reachable through every nested Class/Function/
// Comprehension scope the module's body introduces) together with every
// diagnostic collected along the way. Builtin is the built-in scope the
// module scope should chain to; pass nil to use NewBuiltinScope's default.
// Imports, if non-nil, resolves import statements' targets; pass nil when
// binding a file in isolation without a project-wide module loader.
func Bind(module *ast.Module, builtin *Scope, imports ImportLookup, fi *FileInfo) (*Scope, []Diagnostic) {
	if builtin == nil {
		builtin = NewBuiltinScope()
	}

	if fi == nil {
		fi = NewFileInfo("__main__", nil, false, nil)
	}

	moduleScope := NewScope(ScopeModule, module, builtin)
	seedModuleImplicitNames(moduleScope)

	sink := newSliceSink()
	staticEval := NewConstFoldEvaluator()

	w := newWalker(moduleScope, fi, sink, staticEval, imports)
	w.walkStmts(module.Body)
	w.queue.drain()

	return moduleScope, sink.diags
}

// BindModules binds a set of modules that may import one another, passing
// the same ImportLookup to every Bind call; the scopes it produces are not
// fed back into that lookup, so what an import can see is up to the caller's
// lookup. Built-ins are shared across all of them. The returned map is keyed by the same key the caller passed in.
func BindModules(modules map[string]*ast.Module, imports ImportLookup,
	fileInfos map[string]*FileInfo) (map[string]*Scope, map[string][]Diagnostic) {
	builtin := NewBuiltinScope()
	scopes := make(map[string]*Scope, len(modules))
	diags := make(map[string][]Diagnostic, len(modules))

	for name, mod := range modules {
		scope, ds := Bind(mod, builtin, imports, fileInfos[name])
		scopes[name] = scope
		diags[name] = ds
	}

	return scopes, diags
}

// DiagnosticsError collapses diags into a single error if any of them
// reached SeverityError, or nil otherwise. This is the package's one
// concession to Go's ambient error-handling convention, for callers (the
// CLI) that just want a pass/fail result rather than every diagnostic —
// the binder itself never returns an error from Bind/BindModules.
func DiagnosticsError(diags []Diagnostic) error {
	count := 0

	for _, d := range diags {
		if d.Severity == SeverityError {
			count++
		}
	}

	if count == 0 {
		return nil
	}

	return fmt.Errorf("%d error diagnostic(s) found", count)
}
