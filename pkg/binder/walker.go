package binder

import (
	"github.com/haldis-lang/pyscope/pkg/ast"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// deferredQueue is a FIFO of thunks a binder drains after finishing its own
// immediate walk.  Each nested function definition discovered while walking
// a scope enqueues its own body-walk here instead of running it inline, so
// that sibling defs declared later in the same scope are already visible
// by the time any of them actually runs.  Lambda bodies are not queued:
// handleLambda binds a lambda's parameters and walks its body at the point
// where the lambda is reached.  Appending to items during drain is safe:
// the loop condition re-reads len(q.items) every iteration.
type deferredQueue struct {
	items []func()
}

func (q *deferredQueue) push(fn func()) {
	q.items = append(q.items, fn)
}

func (q *deferredQueue) drain() {
	for i := 0; i < len(q.items); i++ {
		q.items[i]()
	}

	q.items = nil
}

// Walker is the traversal core shared by every scope flavor.  Each scope
// being walked (module, class, function, lambda or comprehension) gets its
// own Walker with its own deferredQueue, wired to the same
// sink/fi/staticEval/imports.
type Walker struct {
	scope      *Scope
	fi         *FileInfo
	sink       DiagnosticSink
	staticEval StaticEvaluator
	imports    ImportLookup
	queue      *deferredQueue

	// notLocal holds names this scope's own "global"/"nonlocal" statements
	// have redirected elsewhere; bind() consults it to decide which
	// scope's table actually receives the declaration.
	notLocal map[string]bool
	// nonlocalTargets records, for names a "nonlocal" statement resolved
	// successfully, exactly which enclosing function scope they resolved
	// to — a "global" redirect always means the global scope, but a
	// "nonlocal" redirect means whichever specific enclosing function
	// scope owns the binding.
	nonlocalTargets map[string]*Scope
	// declaredGlobal/declaredNonlocal record which names this exact scope
	// has already declared "global" or "nonlocal", so a later conflicting
	// declaration of the same name with the other keyword can be caught.
	declaredGlobal   map[string]bool
	declaredNonlocal map[string]bool

	// unexecuted marks a statically dead branch: declarations are
	// suppressed but diagnostics are not.
	unexecuted bool

	// exceptDepth counts currently-open "except" handler bodies, needed to
	// validate a bare "raise".
	exceptDepth int
	// loopDepth counts currently-open for/while loop bodies, needed to
	// validate "break"/"continue". Reset implicitly by every nested
	// function/lambda/comprehension, since each gets its own Walker.
	loopDepth int

	// selfName/classScope are set on a method's own Walker so that
	// "self.x = ..." (or "cls.x = ...") assignment targets are recognized
	// as class/instance member declarations rather than ordinary reads.
	// Both are zero on every Walker other than a method's own and the
	// comprehension Walkers nested inside it, which copy them.
	selfName   string
	classScope *Scope
	// selfIsClassBound is set alongside selfName when the method is a
	// classmethod (or "__new__", which is class-bound without needing the
	// decorator), so "cls.x = ..." writes are recorded as class members
	// rather than instance members.
	selfIsClassBound bool
}

func newWalker(scope *Scope, fi *FileInfo, sink DiagnosticSink, staticEval StaticEvaluator,
	imports ImportLookup) *Walker {
	return &Walker{
		scope:      scope,
		fi:         fi,
		sink:       sink,
		staticEval: staticEval,
		imports:    imports,
		queue:      &deferredQueue{},
		notLocal:   make(map[string]bool),
	}
}

// child constructs a new Walker over childScope, inheriting w's host
// collaborators (file info, sink, static evaluator, import lookup) and its
// unexecuted state, so a scope nested in a statically dead branch declares
// nothing either.
func (w *Walker) child(childScope *Scope) *Walker {
	c := newWalker(childScope, w.fi, w.sink, w.staticEval, w.imports)
	c.unexecuted = w.unexecuted

	return c
}

func (w *Walker) addDiag(d Diagnostic) {
	w.sink.Add(d)
}

// bind attaches a new declaration for name, built lazily by mk, to the
// appropriate scope: the current scope ordinarily, or the scope that a
// "global" (the global scope) or "nonlocal" (the enclosing function scope
// owning the name) statement in this scope already redirected name to.  In
// a statically dead branch it is a no-op, per the pinned
// declaration-suppression decision.
func (w *Walker) bind(name string, sp source.Span, mk func() Declaration) *Symbol {
	if w.unexecuted {
		return nil
	}

	target := w.scope
	if w.notLocal[name] {
		target = w.resolveNotLocalTarget(name)
	}

	sym := target.getOrCreate(name)
	sym.addDeclaration(mk())

	return sym
}

func (w *Walker) resolveNotLocalTarget(name string) *Scope {
	if w.nonlocalTargets != nil {
		if s, ok := w.nonlocalTargets[name]; ok {
			return s
		}
	}

	return w.scope.GlobalScope()
}

// bindTarget declares every name introduced by an assignment-shaped target
// expression: a bare name, a tuple/list unpack (recursively), a starred
// unpack, or a "self.x"/"cls.x" member write.  Subscript targets
// ("a[0] = ...") and attribute writes to anything other than self/cls are
// reads of their Value, not declarations.
func (w *Walker) bindTarget(target ast.Expr, src VariableSource, annot ast.Expr) {
	switch n := target.(type) {
	case *ast.Name:
		if cfg := w.fi.Config; cfg != nil && cfg.ReportGlobalShadowsBuiltin {
			dest := w.scope
			if w.notLocal[n.Id] {
				dest = w.resolveNotLocalTarget(n.Id)
			}

			if dest.Kind == ScopeModule && dest.Parent != nil && dest.Parent.IsExported(n.Id) {
				w.addDiag(newDiagnostic(RuleGlobalReassignedBuiltin,
					cfg.severityFor(RuleGlobalReassignedBuiltin, SeverityWarning), n.Span(),
					"%q shadows a built-in name", n.Id))
			}
		}

		if w.fi.IsTypingStubFile && IsTypingSpecialForm(n.Id) {
			w.bind(n.Id, n.Span(), func() Declaration {
				return NewBuiltInDeclaration(n.Id)
			})

			return
		}

		w.bind(n.Id, n.Span(), func() Declaration {
			return NewVariableDeclaration(n.Span(), src, annot, false)
		})
	case *ast.TupleExpr:
		for _, elt := range n.Elts {
			w.bindTarget(elt, src, nil)
		}
	case *ast.ListExpr:
		for _, elt := range n.Elts {
			w.bindTarget(elt, src, nil)
		}
	case *ast.StarredExpr:
		w.bindTarget(n.Value, src, nil)
	case *ast.Attribute:
		isSelf := w.isSelfReference(n.Value)
		isClassRef := w.isClassNameReference(n.Value)

		if isSelf || isClassRef {
			sym, found := w.classScope.Lookup(n.Attr)
			if !found {
				sym = w.classScope.ensure(n.Attr)
				sym.InitiallyUnbound = true
			}

			if isClassRef || w.selfIsClassBound {
				sym.ClassMember = true
			} else {
				sym.InstanceMember = true
			}

			if !w.unexecuted {
				sym.addDeclaration(NewVariableDeclaration(n.AttrSp, VarMemberAccess, annot, true))
			}

			return
		}

		w.walkExpr(n.Value)
	case *ast.Subscript:
		w.walkExpr(n.Value)
		w.walkExpr(n.Index)
	default:
		w.walkExpr(target)
	}
}

func (w *Walker) isSelfReference(expr ast.Expr) bool {
	if w.classScope == nil || w.selfName == "" {
		return false
	}

	n, ok := expr.(*ast.Name)

	return ok && n.Id == w.selfName
}

// isClassNameReference reports whether expr is a bare reference to the
// enclosing class's own name, so that "ClassName.attr = ..." written
// inside one of the class's own methods is recognized as a class-member
// write exactly like "cls.attr = ...".
func (w *Walker) isClassNameReference(expr ast.Expr) bool {
	if w.classScope == nil {
		return false
	}

	classNode, ok := w.classScope.Owner.(*ast.ClassDef)
	if !ok {
		return false
	}

	n, ok := expr.(*ast.Name)

	return ok && n.Id == classNode.Name
}

// walkStmts walks a statement list in order, tracking an "unexecuted" state
// that starts as w's own.
func (w *Walker) walkStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		w.walkStmt(stmt)
	}
}

// walkBranch runs stmts with unexecuted forced true when dead is set (and
// left as it was otherwise), restoring w's own flag afterward.  Used for if/while branches the static
// evaluator has resolved.
func (w *Walker) walkBranch(stmts []ast.Stmt, dead bool) {
	saved := w.unexecuted
	w.unexecuted = w.unexecuted || dead
	w.walkStmts(stmts)
	w.unexecuted = saved
}

func (w *Walker) walkStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.Assign:
		w.walkExpr(n.Value)

		for _, t := range n.Targets {
			w.bindTarget(t, VarAssignment, nil)
		}
	case *ast.AugAssign:
		w.walkExpr(n.Value)
		w.bindTarget(n.Target, VarAssignment, nil)
	case *ast.AnnAssign:
		w.walkExpr(n.Annotation)

		if n.Value != nil {
			w.walkExpr(n.Value)
		}

		w.bindTarget(n.Target, VarAnnotated, n.Annotation)
	case *ast.DelStmt:
		for _, t := range n.Targets {
			w.walkExpr(t)
		}
	case *ast.ForStmt:
		w.walkExpr(n.Iter)
		w.bindTarget(n.Target, VarForTarget, nil)
		w.loopDepth++
		w.walkStmts(n.Body)
		w.loopDepth--
		w.walkStmts(n.Orelse)
	case *ast.WhileStmt:
		truth := w.staticEval.Evaluate(n.Test)
		w.walkExpr(n.Test)
		w.loopDepth++
		w.walkBranch(n.Body, truth == StaticFalse)
		w.loopDepth--
		w.walkStmts(n.Orelse)
	case *ast.IfStmt:
		truth := w.staticEval.Evaluate(n.Test)
		w.walkExpr(n.Test)
		w.walkBranch(n.Body, truth == StaticFalse)
		w.walkBranch(n.Orelse, truth == StaticTrue)
	case *ast.WithStmt:
		for _, item := range n.Items {
			w.walkExpr(item.ContextExpr)

			if item.OptionalVars != nil {
				w.bindTarget(item.OptionalVars, VarWithTarget, nil)
			}
		}

		w.walkStmts(n.Body)
	case *ast.TryStmt:
		w.walkStmts(n.Body)

		for _, h := range n.Handlers {
			if h.Type != nil {
				w.walkExpr(h.Type)
			}

			if h.Name != "" {
				w.bind(h.Name, h.NameSp, func() Declaration {
					return NewVariableDeclaration(h.NameSp, VarExceptTarget, nil, false)
				})
			}

			w.exceptDepth++
			w.walkStmts(h.Body)
			w.exceptDepth--
		}

		w.walkStmts(n.Orelse)
		w.walkStmts(n.Finally)
	case *ast.RaiseStmt:
		w.walkRaise(n)
	case *ast.GlobalStmt:
		w.walkGlobal(n)
	case *ast.NonlocalStmt:
		w.walkNonlocal(n)
	case *ast.ReturnStmt:
		if _, ok := w.scope.enclosingFunction(); !ok {
			w.addDiag(newDiagnostic(RuleReturnOutsideFunction, SeverityError, n.Span(),
				"return can only be used within a function"))
		}

		if n.Value != nil {
			w.walkExpr(n.Value)
		}
	case *ast.PassStmt:
		// no bindings, no sub-expressions
	case *ast.BreakStmt:
		if w.loopDepth == 0 {
			w.addDiag(newDiagnostic(RuleBreakOutsideLoop, SeverityError, n.Span(),
				"break can only be used within a loop"))
		}
	case *ast.ContinueStmt:
		if w.loopDepth == 0 {
			w.addDiag(newDiagnostic(RuleContinueOutsideLoop, SeverityError, n.Span(),
				"continue can only be used within a loop"))
		}
	case *ast.ExprStmt:
		w.walkExpr(n.Value)
	case *ast.ImportStmt:
		w.walkImportStmt(n)
	case *ast.ImportFromStmt:
		w.walkImportFromStmt(n)
	case *ast.ClassDef:
		w.handleClassDef(n)
	case *ast.FunctionDef:
		w.handleFunctionDef(n)
	default:
		panic("binder: unhandled statement kind")
	}
}

func (w *Walker) walkRaise(n *ast.RaiseStmt) {
	if !w.unexecuted {
		w.scope.AlwaysRaises = true
	}

	if n.Exc == nil {
		if w.exceptDepth == 0 {
			w.addDiag(newDiagnostic(RuleRaiseFromMisuse, SeverityError, n.Span(),
				"bare raise is only valid inside an except block"))
		}

		return
	}

	w.walkExpr(n.Exc)

	if n.Cause != nil {
		w.walkExpr(n.Cause)
	}
}

// walkGlobal handles a "global x, y, ..." statement: it checks that none of
// the names were already declared "nonlocal" in this scope or already
// assigned here before this point, then redirects each name to the global
// scope and makes sure a symbol exists there for it to bind to.
func (w *Walker) walkGlobal(n *ast.GlobalStmt) {
	if w.declaredGlobal == nil {
		w.declaredGlobal = make(map[string]bool)
	}

	global := w.scope.GlobalScope()

	for _, np := range n.Names {
		if w.declaredNonlocal[np.Name] {
			w.addDiag(newDiagnostic(RuleGlobalNonlocalConflict, SeverityError, np.Sp,
				"name %q is nonlocal and global", np.Name))

			continue
		}

		if w.alreadyAssignedInScope(np.Name) {
			w.addDiag(newDiagnostic(RuleAssignedBeforeGlobal, SeverityError, np.Sp,
				"name %q is assigned before global declaration", np.Name))

			continue
		}

		w.declaredGlobal[np.Name] = true
		w.notLocal[np.Name] = true
		global.ensure(np.Name)
	}
}

func (w *Walker) walkNonlocal(n *ast.NonlocalStmt) {
	fnScope, ok := w.scope.enclosingFunction()

	if !ok {
		w.addDiag(newDiagnostic(RuleNonlocalAtModuleLevel, SeverityError, n.Span(),
			"nonlocal declaration not allowed at module level"))

		return
	}

	if w.nonlocalTargets == nil {
		w.nonlocalTargets = make(map[string]*Scope)
	}

	if w.declaredNonlocal == nil {
		w.declaredNonlocal = make(map[string]bool)
	}

	for _, np := range n.Names {
		if w.declaredGlobal[np.Name] {
			w.addDiag(newDiagnostic(RuleGlobalNonlocalConflict, SeverityError, np.Sp,
				"name %q is nonlocal and global", np.Name))

			continue
		}

		if w.alreadyAssignedInScope(np.Name) {
			w.addDiag(newDiagnostic(RuleAssignedBeforeNonlocal, SeverityError, np.Sp,
				"name %q is assigned before nonlocal declaration", np.Name))

			continue
		}

		target := findEnclosingFunctionBinding(fnScope, np.Name)

		if target == nil {
			w.addDiag(newDiagnostic(RuleNonlocalNoBinding, SeverityError, np.Sp,
				"no binding for nonlocal %q found in any enclosing function scope", np.Name))

			continue
		}

		w.declaredNonlocal[np.Name] = true
		w.notLocal[np.Name] = true
		w.nonlocalTargets[np.Name] = target
	}
}

// alreadyAssignedInScope reports whether name already has at least one
// declaration directly in this scope's own symbol table. Since a Walker
// processes a scope's own statement list in textual order (nested
// function/lambda bodies are deferred, but a scope's own top-level
// statements are not), this is exactly "was name assigned earlier in this
// same scope, before the global/nonlocal statement now being processed".
func (w *Walker) alreadyAssignedInScope(name string) bool {
	sym, ok := w.scope.Lookup(name)

	return ok && len(sym.declarations) > 0
}

// findEnclosingFunctionBinding looks for name in function scopes strictly
// above start (class scopes are skipped, since class scope is not part of
// the lexical chain nonlocal resolution follows), stopping before the
// nearest module/builtin scope.
func findEnclosingFunctionBinding(start *Scope, name string) *Scope {
	for cur := start.Parent; cur != nil; cur = cur.Parent {
		switch cur.Kind {
		case ScopeFunction:
			if _, ok := cur.Lookup(name); ok {
				return cur
			}
		case ScopeClass:
			continue
		default:
			return nil
		}
	}

	return nil
}

func (w *Walker) walkExpr(expr ast.Expr) {
	switch n := expr.(type) {
	case nil:
		return
	case *ast.Name, *ast.ConstLit, *ast.NumberLit:
		// leaf reads, nothing to recurse into
	case *ast.StringLit:
		w.walkStringLit(n)
	case *ast.BoolOp:
		for _, v := range n.Values {
			w.walkExpr(v)
		}
	case *ast.UnaryOp:
		w.walkExpr(n.Operand)
	case *ast.BinOp:
		w.walkExpr(n.Left)
		w.walkExpr(n.Right)
	case *ast.Compare:
		w.walkExpr(n.Left)

		for _, c := range n.Comparators {
			w.walkExpr(c)
		}
	case *ast.Call:
		w.walkExpr(n.Func)

		for _, a := range n.Args {
			w.walkExpr(a)
		}

		for _, kw := range n.Keywords {
			w.walkExpr(kw.Value)
		}
	case *ast.Attribute:
		w.walkExpr(n.Value)
	case *ast.Subscript:
		w.walkExpr(n.Value)
		w.walkExpr(n.Index)
	case *ast.TupleExpr:
		for _, e := range n.Elts {
			w.walkExpr(e)
		}
	case *ast.ListExpr:
		for _, e := range n.Elts {
			w.walkExpr(e)
		}
	case *ast.SetExpr:
		for _, e := range n.Elts {
			w.walkExpr(e)
		}
	case *ast.DictExpr:
		for i := range n.Values {
			if n.Keys[i] != nil {
				w.walkExpr(n.Keys[i])
			}

			w.walkExpr(n.Values[i])
		}
	case *ast.StarredExpr:
		w.walkExpr(n.Value)
	case *ast.YieldExpr:
		w.walkYield(n)
	case *ast.AwaitExpr:
		w.walkAwait(n)
	case *ast.IfExp:
		w.walkExpr(n.Test)
		w.walkExpr(n.Body)
		w.walkExpr(n.Orelse)
	case *ast.NamedExpr:
		w.walkExpr(n.Value)
		w.walkWalrus(n)
	case *ast.Lambda:
		w.handleLambda(n)
	case *ast.ListComp:
		w.walkComprehension(n, n.Generators, func(cw *Walker) { cw.walkExpr(n.Element) })
	case *ast.SetComp:
		w.walkComprehension(n, n.Generators, func(cw *Walker) { cw.walkExpr(n.Element) })
	case *ast.GeneratorExp:
		w.walkComprehension(n, n.Generators, func(cw *Walker) { cw.walkExpr(n.Element) })
	case *ast.DictComp:
		w.walkComprehension(n, n.Generators, func(cw *Walker) {
			cw.walkExpr(n.Key)
			cw.walkExpr(n.Value)
		})
	default:
		panic("binder: unhandled expression kind")
	}
}

func (w *Walker) walkStringLit(n *ast.StringLit) {
	for _, esc := range n.EscapeErrors {
		switch esc.Kind {
		case ast.InvalidEscapeSequence:
			w.addDiag(newDiagnostic(RuleInvalidEscapeSequence,
				w.fi.Config.severityFor(RuleInvalidEscapeSequence, SeverityWarning), esc.Sp,
				"unsupported escape sequence in string literal"))
		case ast.EscapeInFormatExpression:
			w.addDiag(newDiagnostic(RuleUnsupportedEscape, SeverityError, esc.Sp,
				"backslash not allowed in f-string expression"))
		case ast.StrayCloseBrace:
			w.addDiag(newDiagnostic(RuleUnsupportedEscape, SeverityError, esc.Sp,
				"single '}' is not allowed in an f-string, use '}}' to escape"))
		case ast.UnterminatedFormatExpression:
			w.addDiag(newDiagnostic(RuleUnsupportedEscape, SeverityError, esc.Sp,
				"expecting '}' to close f-string expression"))
		}
	}
}

func (w *Walker) walkYield(n *ast.YieldExpr) {
	if _, ok := w.scope.enclosingFunction(); !ok {
		w.addDiag(newDiagnostic(RuleYieldOutsideFunction, SeverityError, n.Span(),
			"yield not allowed outside of a function"))
	}

	if n.Value != nil {
		w.walkExpr(n.Value)
	}
}

func (w *Walker) walkAwait(n *ast.AwaitExpr) {
	fnScope, ok := w.scope.enclosingFunction()

	if !ok || !fnScope.IsAsyncFunction {
		w.addDiag(newDiagnostic(RuleAwaitOutsideAsync, SeverityError, n.Span(),
			"await is only valid within an async function"))
	}

	w.walkExpr(n.Value)
}

// walkWalrus binds a named-expression target.  Python binds a walrus target
// in the nearest enclosing function-or-module scope even when the walrus
// occurs inside a comprehension, so that "[y := f(x) for x in xs]" leaks
// y into the scope that contains the comprehension.
func (w *Walker) walkWalrus(n *ast.NamedExpr) {
	target := w.scope

	if target.Kind == ScopeComprehension {
		target = target.EnclosingFunctionOrModuleScope()
	}

	if target == w.scope {
		w.bindTarget(n.Target, VarWalrus, nil)
		return
	}

	if w.unexecuted {
		return
	}

	sym := target.getOrCreate(n.Target.Id)
	sym.addDeclaration(NewVariableDeclaration(n.Target.Span(), VarWalrus, nil, false))
}

func (w *Walker) walkComprehension(owner ast.Node, gens []ast.CompClause, body func(cw *Walker)) {
	compScope := NewScope(ScopeComprehension, owner, w.scope)
	cw := w.child(compScope)
	cw.selfName = w.selfName
	cw.classScope = w.classScope
	cw.selfIsClassBound = w.selfIsClassBound

	for _, g := range gens {
		cw.walkExpr(g.Iter)
		cw.bindTarget(g.Target, VarComprehensionTarget, nil)

		for _, cond := range g.Ifs {
			cw.walkExpr(cond)
		}
	}

	body(cw)
}

func (w *Walker) handleLambda(n *ast.Lambda) {
	lamScope := NewScope(ScopeFunction, n, w.scope)
	lamWalker := w.child(lamScope)

	w.checkDuplicateParams(n.Params)

	for _, p := range n.Params {
		if p.Default != nil {
			w.walkExpr(p.Default)
		}

		if p.Annotation != nil {
			w.walkExpr(p.Annotation)
		}
	}

	for i := range n.Params {
		p := n.Params[i]
		lamWalker.bind(p.Name, p.Sp, func() Declaration {
			return NewParameterDeclaration(p.Sp, &p)
		})
	}

	lamWalker.walkExpr(n.Body)
}

// checkDuplicateParams reports every parameter name repeated within a
// single function/lambda signature.
func (w *Walker) checkDuplicateParams(params []ast.Param) {
	seen := make(map[string]bool, len(params))

	for _, p := range params {
		if p.Name == "" {
			continue
		}

		if seen[p.Name] {
			w.addDiag(newDiagnostic(RuleDuplicateParameter, SeverityError, p.Sp,
				"duplicate parameter %q", p.Name))

			continue
		}

		seen[p.Name] = true
	}
}

func methodKind(decorators []ast.Expr) (isStatic, isClass bool) {
	for _, d := range decorators {
		if name, ok := d.(*ast.Name); ok {
			switch name.Id {
			case "staticmethod":
				isStatic = true
			case "classmethod":
				isClass = true
			}
		}
	}

	return isStatic, isClass
}

func (w *Walker) handleFunctionDef(node *ast.FunctionDef) {
	isMethod := w.scope.Kind == ScopeClass

	var classNode *ast.ClassDef

	if isMethod {
		classNode, _ = w.scope.Owner.(*ast.ClassDef)
	}

	isStatic, isClassM := methodKind(node.Decorators)

	fnScope := NewScope(ScopeFunction, node, w.scope)
	fnScope.IsAsyncFunction = node.IsAsync
	fnWalker := w.child(fnScope)

	if isMethod && !isStatic && len(node.Params) > 0 {
		fnWalker.selfName = node.Params[0].Name
		fnWalker.classScope = w.scope
		fnWalker.selfIsClassBound = isClassM || node.Name == "__new__"
	}

	w.checkDuplicateParams(node.Params)

	w.bind(node.Name, node.NameSpan, func() Declaration {
		if isMethod {
			return NewMethodDeclaration(node.NameSpan, node, fnScope, classNode,
				isStatic || node.Name == "__new__", isClassM)
		}

		return NewFunctionDeclaration(node.NameSpan, node, fnScope)
	})

	for _, d := range node.Decorators {
		w.walkExpr(d)
	}

	for _, p := range node.Params {
		if p.Annotation != nil {
			w.walkExpr(p.Annotation)
		}

		if p.Default != nil {
			w.walkExpr(p.Default)
		}
	}

	if node.ReturnAnnot != nil {
		w.walkExpr(node.ReturnAnnot)
	}

	w.queue.push(func() {
		seedFunctionImplicitNames(fnScope)

		for i := range node.Params {
			p := node.Params[i]
			fnWalker.bind(p.Name, p.Sp, func() Declaration {
				return NewParameterDeclaration(p.Sp, &p)
			})
		}

		fnWalker.walkStmts(node.Body)
		fnWalker.queue.drain()
	})
}

func (w *Walker) handleClassDef(node *ast.ClassDef) {
	classScope := NewScope(ScopeClass, node, w.scope)
	classWalker := w.child(classScope)

	w.checkDuplicateMetaclass(node)

	w.bind(node.Name, node.NameSpan, func() Declaration {
		decl := NewClassDeclaration(node.NameSpan, node, classScope)
		decl.ImplicitObjectBase = len(node.Bases) == 0
		decl.BuiltInClass = w.scope.Kind == ScopeBuiltin || w.fi.IsStubFile

		return decl
	})

	for _, d := range node.Decorators {
		w.walkExpr(d)
	}

	for _, b := range node.Bases {
		w.walkExpr(b)
	}

	for _, kw := range node.Keywords {
		w.walkExpr(kw.Value)
	}

	classWalker.walkStmts(node.Body)
	classWalker.queue.drain()
	seedClassImplicitNames(classScope)
}

// checkDuplicateMetaclass reports a second "metaclass=" keyword argument on
// the same class definition.
func (w *Walker) checkDuplicateMetaclass(node *ast.ClassDef) {
	seen := false

	for _, kw := range node.Keywords {
		if kw.Name != "metaclass" {
			continue
		}

		if seen {
			w.addDiag(newDiagnostic(RuleDuplicateMetaclass, SeverityError, kw.Sp,
				"metaclass keyword argument specified more than once"))
		}

		seen = true
	}
}
