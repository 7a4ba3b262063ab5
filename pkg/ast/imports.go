package ast

import (
	"github.com/haldis-lang/pyscope/pkg/util"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// ImportType classifies where a resolved import came from, as attached by
// the (external) import resolver.
type ImportType int

// The import-origin classifications the resolver may report.
const (
	ImportLocal ImportType = iota
	ImportThirdParty
	ImportBuiltIn
)

// ImplicitSubmodule names a submodule that importing a package implicitly
// makes accessible, e.g. importing "a.b" also makes "a.b" reachable as an
// attribute of "a" without a further explicit import.
type ImplicitSubmodule struct {
	Name string
	Path util.Path
}

// ImportInfo is attached by the (external) import resolver to an import or
// import-from node before the binder ever sees it.
type ImportInfo struct {
	ImportName      string
	IsImportFound   bool
	ImportType      ImportType
	IsStubFile      bool
	ResolvedPaths   []string
	ImplicitImports []ImplicitSubmodule
}

// ImportAlias is one "path" or "path as name" clause of an import statement.
type ImportAlias struct {
	Sp       source.Span
	Path     util.Path
	AsName   string // empty if no "as" clause
	AsNameSp source.Span
	Info     *ImportInfo
}

// ImportStmt is an "import a.b.c[, d.e as f]" statement.
type ImportStmt struct {
	base
	Names []ImportAlias
}

func (*ImportStmt) isStmt() {}

// NewImportStmt constructs an import statement.
func NewImportStmt(sp source.Span, names []ImportAlias) *ImportStmt {
	return &ImportStmt{base{sp}, names}
}

// ImportFromName is one imported name of a "from m import ..." statement,
// or absent entirely when IsWildcard is set on the enclosing ImportFromStmt.
type ImportFromName struct {
	Sp       source.Span
	Name     string
	AsName   string // empty if no "as" clause
	AsNameSp source.Span
}

// ImportFromStmt is a "from [.]*m import x[, y as z]" or "from m import *"
// statement.  Level counts leading dots for relative imports (0 = absolute).
type ImportFromStmt struct {
	base
	Module     util.Path
	Level      int
	Names      []ImportFromName
	IsWildcard bool
	Info       *ImportInfo
}

func (*ImportFromStmt) isStmt() {}

// NewImportFromStmt constructs a from-import statement.
func NewImportFromStmt(sp source.Span, module util.Path, level int, names []ImportFromName,
	wildcard bool) *ImportFromStmt {
	return &ImportFromStmt{base{sp}, module, level, names, wildcard, nil}
}
