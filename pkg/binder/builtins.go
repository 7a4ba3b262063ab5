package binder

// classImplicitDunders are attribute names every class gets for free,
// seeded directly onto the class scope so member lookups against them never
// report "undefined", and flagged IgnoredForProtocolMatch so a structural
// (protocol) comparison against the class never trips over them.
var classImplicitDunders = []string{
	"__name__",
	"__doc__",
	"__module__",
	"__qualname__",
	"__dict__",
	"__class__",
}

// seedClassImplicitNames attaches the implicit dunder attributes to a
// freshly walked class scope.
func seedClassImplicitNames(classScope *Scope) {
	for _, name := range classImplicitDunders {
		sym := classScope.ensure(name)
		sym.ClassMember = true
		sym.IgnoredForProtocolMatch = true

		if len(sym.declarations) == 0 {
			sym.addDeclaration(NewBuiltInDeclaration(name))
		}
	}
}

// moduleImplicitNames are attributes every module gets for free, seeded
// directly onto a module scope before its body is walked.
var moduleImplicitNames = []string{
	"__name__",
	"__doc__",
	"__file__",
	"__package__",
	"__loader__",
	"__spec__",
	"__builtins__",
	"__dict__",
	"__annotations__",
}

// seedModuleImplicitNames attaches the implicit module attributes to a
// freshly created module scope.
func seedModuleImplicitNames(moduleScope *Scope) {
	for _, name := range moduleImplicitNames {
		sym := moduleScope.ensure(name)
		sym.addDeclaration(NewBuiltInDeclaration(name))
	}
}

// functionImplicitNames are attributes seeded on a function's own scope,
// distinct from its parameters.
var functionImplicitNames = []string{
	"__name__",
	"__doc__",
	"__dict__",
}

func seedFunctionImplicitNames(fnScope *Scope) {
	for _, name := range functionImplicitNames {
		sym := fnScope.ensure(name)
		sym.addDeclaration(NewBuiltInDeclaration(name))
	}
}

// builtinExportNames is the fixed, documented list of names visible to
// unqualified lookup from every module scope. NewBuiltinScope seeds the
// built-in scope with exactly these names and builds its export filter from
// the same list, so every name in that scope is exported. The typing-stub
// special names below are kept in a separate table and are never added to
// the built-in scope.
var builtinExportNames = []string{
	// singletons and core types
	"None", "True", "False", "NotImplemented", "Ellipsis", "__debug__",
	"object", "type", "bool", "int", "float", "complex", "str", "bytes",
	"bytearray", "memoryview", "list", "tuple", "dict", "set", "frozenset",
	"range", "slice", "property", "staticmethod", "classmethod", "super",
	// exceptions
	"BaseException", "Exception", "ArithmeticError", "AssertionError",
	"AttributeError", "BlockingIOError", "BrokenPipeError", "BufferError",
	"BytesWarning", "ChildProcessError", "ConnectionAbortedError",
	"ConnectionError", "ConnectionRefusedError", "ConnectionResetError",
	"DeprecationWarning", "EOFError", "Ellipsis", "EnvironmentError",
	"FileExistsError", "FileNotFoundError", "FloatingPointError",
	"FutureWarning", "GeneratorExit", "IOError", "ImportError",
	"ImportWarning", "IndentationError", "IndexError", "InterruptedError",
	"IsADirectoryError", "KeyError", "KeyboardInterrupt", "LookupError",
	"MemoryError", "ModuleNotFoundError", "NameError",
	"NotADirectoryError", "NotImplementedError", "OSError", "OverflowError",
	"PendingDeprecationWarning", "PermissionError", "ProcessLookupError",
	"RecursionError", "ReferenceError", "ResourceWarning", "RuntimeError",
	"RuntimeWarning", "StopAsyncIteration", "StopIteration", "SyntaxError",
	"SyntaxWarning", "SystemError", "SystemExit", "TabError", "TimeoutError",
	"TypeError", "UnboundLocalError", "UnicodeDecodeError", "UnicodeEncodeError",
	"UnicodeError", "UnicodeTranslateError", "UnicodeWarning", "UserWarning",
	"ValueError", "Warning", "ZeroDivisionError",
	// builtin functions
	"abs", "aiter", "anext", "all", "any", "ascii", "bin", "breakpoint",
	"callable", "chr", "compile", "delattr", "dir", "divmod", "enumerate",
	"eval", "exec", "filter", "format", "getattr", "globals", "hasattr",
	"hash", "help", "hex", "id", "input", "isinstance", "issubclass",
	"iter", "len", "locals", "map", "max", "min", "next", "oct", "open",
	"ord", "pow", "print", "repr", "reversed", "round", "setattr", "sorted",
	"sum", "vars", "zip", "__import__",
	// implicit names every module exposes
	"__name__", "__doc__", "__file__", "__package__", "__loader__",
	"__spec__", "__builtins__", "__build_class__",
}

// typingStubSpecialNames are names the binder recognizes by identity when
// they come from the "typing" module, so downstream type-checking code (not
// part of this package) can treat them specially rather than as ordinary
// generic aliases. They are not part of builtinExportNames. Inside the
// typing stub file itself (FileInfo.IsTypingStubFile), bindTarget gives an
// assignment to one of these names a BuiltInDeclaration; everywhere else
// they reach a scope like any other name, e.g. through the AliasDeclaration
// of a "from typing import ...".
var typingStubSpecialNames = map[string]bool{
	"Any": true, "Union": true, "Optional": true, "List": true,
	"Dict": true, "Tuple": true, "Set": true, "FrozenSet": true,
	"Generic": true, "Protocol": true, "Callable": true, "Type": true,
	"ClassVar": true, "Final": true, "Literal": true, "TypedDict": true,
	"overload": true, "TypeVar": true, "TypeVarTuple": true, "ParamSpec": true,
	"NoReturn": true, "Never": true, "NewType": true, "NamedTuple": true,
	"Annotated": true, "TYPE_CHECKING": true, "cast": true, "Self": true,
	"Unpack": true, "Required": true, "NotRequired": true, "LiteralString": true,
}

// IsTypingSpecialForm reports whether name is one of the fixed typing-stub
// special forms a richer, type-aware consumer of this package's output
// should special-case during attribute/alias resolution.
func IsTypingSpecialForm(name string) bool {
	return typingStubSpecialNames[name]
}

// NewBuiltinScope constructs the root scope every module scope chains up
// to, seeded with exactly the names in builtinExportNames and restricted to
// exporting exactly that set via the bitset-backed export filter.
func NewBuiltinScope() *Scope {
	scope := NewScope(ScopeBuiltin, nil, nil)

	allowed := make(map[string]bool, len(builtinExportNames))
	for _, name := range builtinExportNames {
		allowed[name] = true

		sym := scope.ensure(name)
		sym.addDeclaration(NewBuiltInDeclaration(name))
	}

	scope.SetExportFilter(allowed)

	return scope
}
