package binder

import (
	"strings"

	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/util"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// ImportLookup resolves a dotted module path to its import metadata and
// exported names, standing in for a real module loader that this package
// never implements itself — import resolution is an external collaborator
// the binder only consumes the output of. A nil ImportLookup is treated as
// "nothing resolves", which is sufficient for binding a single file in
// isolation.
type ImportLookup interface {
	// Resolve returns import metadata for a dotted path, or ok=false if
	// the lookup has no opinion (the binder falls back to the info
	// already attached to the AST node by an external resolver, if any).
	Resolve(path util.Path) (*ast.ImportInfo, bool)
	// WildcardNames returns the names "from m import *" should bind, or
	// ok=false if the module's export list is unknown.
	WildcardNames(path util.Path) ([]string, bool)
	// ImplicitSubmodules returns the submodules a package makes reachable
	// as attributes of itself just by existing on disk (e.g. a "pkg/sub"
	// directory under package "pkg"), or ok=false if unknown. Consulted
	// both for "from m import *", which additionally binds each one, and
	// for "from m import x", to tell a plain exported name apart from a
	// submodule import spelled the same way.
	ImplicitSubmodules(path util.Path) ([]ast.ImplicitSubmodule, bool)
}

func (w *Walker) walkImportStmt(n *ast.ImportStmt) {
	merged := map[string]*AliasDeclaration{}

	for _, alias := range n.Names {
		info := w.resolveImportInfo(alias.Path, alias.Info)
		w.reportImportResolution(alias.Sp, info, ActionCreateTypeStub)

		bindingName := alias.Path.Head()
		if alias.AsName != "" {
			bindingName = alias.AsName
		}

		// "import a.b.c" without an "as" clause binds only the top-level
		// name "a" in the current scope, with "b" and "c" reachable as
		// implicit submodule attributes. "import a.b.c as x" binds "x" to
		// the full submodule directly instead.
		if alias.AsName == "" && alias.Path.Depth() > 1 {
			w.bindPlainDottedImport(alias, info, merged)
			continue
		}

		sp := alias.Sp
		if alias.AsName != "" {
			sp = alias.AsNameSp
		}

		w.bind(bindingName, sp, func() Declaration {
			return NewAliasDeclaration(sp, alias.Path, false, "", info)
		})
	}
}

// bindPlainDottedImport merges repeated "import a.b" / "import a.c" into
// one Alias declaration for "a" carrying both submodules as implicit
// imports, rather than producing two separate declarations.
func (w *Walker) bindPlainDottedImport(alias ast.ImportAlias, info *ast.ImportInfo,
	merged map[string]*AliasDeclaration) {
	head := alias.Path.Head()

	rest := alias.Path.Dehead()
	sub := ast.ImplicitSubmodule{Name: rest.Head(), Path: alias.Path}

	existing, ok := merged[head]
	if !ok && !w.unexecuted {
		dest := w.scope
		if w.notLocal[head] {
			dest = w.resolveNotLocalTarget(head)
		}

		if sym, found := dest.Lookup(head); found {
			for _, d := range sym.declarations {
				if a, isAlias := d.(*AliasDeclaration); isAlias && a.LoaderActions != nil {
					existing, ok = a, true
				}
			}
		}
	}

	if ok {
		existing.mergeImplicitImport(sub)
		extendLoaderActions(existing.LoaderActions, rest)

		return
	}

	decl := NewAliasDeclaration(alias.Sp, util.NewPath(head), false, "", info)
	decl.mergeImplicitImport(sub)
	decl.LoaderActions = NewLoaderActions(head, head)
	extendLoaderActions(decl.LoaderActions, rest)

	merged[head] = decl

	w.bind(head, alias.Sp, func() Declaration { return decl })
}

// extendLoaderActions walks root one loader-action node at a time for each
// remaining segment of path, creating nodes as needed, matching the way a
// module loader resolving "a.b.c" descends one dotted segment at a time.
func extendLoaderActions(root *LoaderActions, path util.Path) {
	cur := root

	for _, seg := range path.Segments() {
		cur = cur.AddImplicit(seg, seg, seg)
	}
}

func (w *Walker) walkImportFromStmt(n *ast.ImportFromStmt) {
	info := w.resolveImportInfo(n.Module, n.Info)
	w.reportImportResolution(n.Span(), info, ActionCreateTypeStubIn)

	if n.IsWildcard {
		w.walkWildcardImport(n, info)
		return
	}

	submodules := w.implicitSubmodulesOf(n.Module, info)

	for _, name := range n.Names {
		bindingName := name.Name
		sp := name.Sp

		if name.AsName != "" {
			bindingName = name.AsName
			sp = name.AsNameSp
		}

		// "from m import x" where "x" is actually an implicit submodule of
		// "m" (rather than a plain attribute "m" happens to export) binds
		// the submodule itself, not a named symbol within it.
		importedName := name.Name
		if isImplicitSubmoduleName(submodules, name.Name) {
			importedName = ""
		}

		w.bind(bindingName, sp, func() Declaration {
			return NewAliasDeclaration(sp, n.Module, true, importedName, info)
		})
	}
}

// walkWildcardImport binds every name the ImportLookup says the target
// module exports (none when there is no lookup or it reports no export
// list), plus every implicit submodule of that module (from the lookup, or
// else from the info an external resolver attached) — "from m import *"
// reaches both.
func (w *Walker) walkWildcardImport(n *ast.ImportFromStmt, info *ast.ImportInfo) {
	var names []string

	if w.imports != nil {
		if ns, ok := w.imports.WildcardNames(n.Module); ok {
			names = ns
		}
	}

	for _, name := range names {
		w.bind(name, n.Span(), func() Declaration {
			return NewAliasDeclaration(n.Span(), n.Module, true, name, info)
		})
	}

	for _, sub := range w.implicitSubmodulesOf(n.Module, info) {
		w.bind(sub.Name, n.Span(), func() Declaration {
			return NewAliasDeclaration(n.Span(), sub.Path, true, "", info)
		})
	}
}

// implicitSubmodulesOf returns the implicit submodules of path, preferring
// a live ImportLookup answer over whatever an external resolver already
// attached to the AST node.
func (w *Walker) implicitSubmodulesOf(path util.Path, info *ast.ImportInfo) []ast.ImplicitSubmodule {
	if w.imports != nil {
		if subs, ok := w.imports.ImplicitSubmodules(path); ok {
			return subs
		}
	}

	if info != nil {
		return info.ImplicitImports
	}

	return nil
}

func isImplicitSubmoduleName(subs []ast.ImplicitSubmodule, name string) bool {
	for _, s := range subs {
		if s.Name == name {
			return true
		}
	}

	return false
}

func (w *Walker) resolveImportInfo(path util.Path, attached *ast.ImportInfo) *ast.ImportInfo {
	if w.imports != nil {
		if info, ok := w.imports.Resolve(path); ok {
			return info
		}
	}

	if attached != nil {
		return attached
	}

	// Neither a live ImportLookup nor an external resolver had an opinion:
	// assume the import resolves rather than flagging every import in a
	// resolver-less binding as missing.
	return &ast.ImportInfo{ImportName: strings.Join(path.Segments(), "."), IsImportFound: true}
}

// reportImportResolution emits "import could not be resolved" or, for a
// resolved third-party import with no accompanying stub, "missing type
// stubs" — attaching the given quick-fix action to the latter.
func (w *Walker) reportImportResolution(sp source.Span, info *ast.ImportInfo, stubAction Action) {
	if info == nil {
		return
	}

	if !info.IsImportFound {
		w.addDiag(newDiagnostic(RuleImportResolveFailure,
			w.fi.Config.severityFor(RuleImportResolveFailure, SeverityError), sp,
			"import %q could not be resolved", info.ImportName))

		return
	}

	if info.ImportType == ast.ImportThirdParty && !info.IsStubFile {
		d := newDiagnostic(RuleMissingTypeStubs,
			w.fi.Config.severityFor(RuleMissingTypeStubs, SeverityWarning), sp,
			"stub file not found for %q", info.ImportName)
		d.Action = stubAction

		w.addDiag(d)
	}
}
