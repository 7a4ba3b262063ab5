package binder

import (
	"fmt"

	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// Severity ranks a Diagnostic for display filtering and exit-code purposes.
type Severity int

// The recognized diagnostic severities, ordered from least to most severe.
const (
	SeverityNone Severity = iota
	SeverityInformation
	SeverityWarning
	SeverityError
)

// String renders a severity for CLI output.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityInformation:
		return "information"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Action is a machine-actionable suggestion attached to some diagnostics,
// e.g. offering to generate a stub for an unresolved third-party import.
type Action string

// The recognized diagnostic actions.
const (
	ActionNone             Action = ""
	ActionCreateTypeStub   Action = "pyright.createtypestub"
	ActionCreateTypeStubIn Action = "pyright.createtypestubfor"
)

// Rule names the specific check a diagnostic came from, so a Config can
// selectively silence it.
type Rule string

// The recognized binder-level diagnostic rules.
const (
	RuleYieldOutsideFunction     Rule = "yieldOutsideFunction"
	RuleYieldWithinAsyncFunction Rule = "yieldWithinAsyncFunction"
	RuleAwaitOutsideAsync        Rule = "awaitNotInAsync"
	RuleReturnOutsideFunction    Rule = "returnOutsideFunction"
	RuleRaiseFromMisuse          Rule = "raiseFromMisuse"
	RuleInvalidEscapeSequence    Rule = "invalidEscapeSequence"
	RuleUnsupportedEscape        Rule = "unsupportedEscapeInFString"
	RuleImportResolveFailure     Rule = "reportMissingImports"
	RuleMissingTypeStubs         Rule = "reportMissingTypeStubs"
	RuleGlobalReassignedBuiltin  Rule = "reportShadowedBuiltin"
	RuleNonlocalNoBinding        Rule = "nonlocalNoBinding"
	RuleNonlocalAtModuleLevel    Rule = "nonlocalAtModuleLevel"
	RuleGlobalNonlocalConflict   Rule = "globalNonlocalConflict"
	RuleAssignedBeforeGlobal     Rule = "assignedBeforeGlobal"
	RuleAssignedBeforeNonlocal   Rule = "assignedBeforeNonlocal"
	RuleDuplicateMetaclass       Rule = "duplicateMetaclass"
	RuleDuplicateParameter       Rule = "duplicateParameter"
	RuleBreakOutsideLoop         Rule = "breakOutsideLoop"
	RuleContinueOutsideLoop      Rule = "continueOutsideLoop"
)

// Diagnostic is a single language-level finding produced while binding one
// file.  Diagnostics are returned as plain values, never as Go errors: a
// file with diagnostics is not a binder failure, it's the binder's normal
// output.
type Diagnostic struct {
	Rule     Rule
	Severity Severity
	Span     source.Span
	Message  string
	Action   Action
}

// newDiagnostic constructs a Diagnostic with the given formatted message.
func newDiagnostic(rule Rule, sev Severity, sp source.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Rule: rule, Severity: sev, Span: sp, Message: fmt.Sprintf(format, args...)}
}

// Severities maps each configurable Rule to the severity it should be
// reported at; a rule absent from the map falls back to its built-in
// default.
type Severities map[Rule]Severity

// Config carries the small set of binder-wide knobs a host analyzer
// exposes. It deliberately does not carry type-checking options, since
// this package never type-checks.
type Config struct {
	Severities Severities
	// ReportGlobalShadowsBuiltin, if true, additionally reports an
	// assignment-shaped binding of a built-in name into the module scope
	// (directly, or from a function through "global") — off by default
	// since it is noisy in real code.
	ReportGlobalShadowsBuiltin bool
}

// DefaultConfig returns the binder's default configuration: every rule at
// its built-in default severity.
func DefaultConfig() *Config {
	return &Config{Severities: Severities{}}
}

func (c *Config) severityFor(rule Rule, fallback Severity) Severity {
	if c == nil {
		return fallback
	}

	if sev, ok := c.Severities[rule]; ok {
		return sev
	}

	return fallback
}

// FileInfo is the host-supplied context for one file being bound: the
// file's identity, its backing source.File for offset-to-range conversion,
// and whether it is a stub file (consulted only to mark the classes declared
// in it as BuiltInClass).
type FileInfo struct {
	ModuleName string
	File       *source.File
	IsStubFile bool
	// IsTypingStubFile marks the "typing" module's own stub file, where a
	// handful of names (Any, Optional, TypeVar, ...) get a BuiltIn
	// declaration instead of an ordinary assignment-shaped one. Zero for
	// every other file, including other stub files.
	IsTypingStubFile bool
	Config           *Config
}

// NewFileInfo constructs a FileInfo with the default configuration if cfg
// is nil.
func NewFileInfo(moduleName string, file *source.File, isStub bool, cfg *Config) *FileInfo {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &FileInfo{ModuleName: moduleName, File: file, IsStubFile: isStub, Config: cfg}
}

// DiagnosticSink collects diagnostics as the walker discovers them.  Bind
// always collects into the package's own slice-backed sliceSink; no entry
// point accepts a caller-supplied sink.
type DiagnosticSink interface {
	Add(d Diagnostic)
}

// sliceSink is the default DiagnosticSink, a plain ordered buffer.
type sliceSink struct {
	diags []Diagnostic
}

func newSliceSink() *sliceSink { return &sliceSink{} }

func (s *sliceSink) Add(d Diagnostic) { s.diags = append(s.diags, d) }
