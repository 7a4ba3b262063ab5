package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/haldis-lang/pyscope/pkg/binder"
	"github.com/haldis-lang/pyscope/pkg/syntax"
	"github.com/haldis-lang/pyscope/pkg/util/source"
)

// bindCmd runs the name-binding pass over one or more source files and
// prints every diagnostic found, exiting non-zero if any reached error
// severity.
var bindCmd = &cobra.Command{
	Use:   "bind file.py...",
	Short: "Bind names in the given source files and report diagnostics",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		colorize := !GetFlag(cmd, "no-color") && term.IsTerminal(int(os.Stdout.Fd()))
		reportShadowed := GetFlag(cmd, "report-global-shadows-builtin")

		failed := false

		for _, path := range args {
			if !bindFile(path, colorize, reportShadowed) {
				failed = true
			}
		}

		if failed {
			os.Exit(1)
		}
	},
}

// bindFile binds a single file and prints its diagnostics, returning false
// if any diagnostic reached error severity.
func bindFile(path string, colorize, reportShadowed bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorln(err)
		return false
	}

	file := source.NewFile(path, data)

	module, parseErrs := syntax.ParseModule(file)
	for _, pe := range parseErrs {
		rng := file.ToRange(pe.Span)
		log.Warnf("%s:%s: %s", path, rng, pe.Message)
	}

	cfg := binder.DefaultConfig()
	cfg.ReportGlobalShadowsBuiltin = reportShadowed

	fi := binder.NewFileInfo(moduleNameOf(path), file, false, cfg)
	fi.IsTypingStubFile = fi.ModuleName == "typing"

	_, diags := binder.Bind(module, nil, nil, fi)
	for _, d := range diags {
		printDiagnostic(file, path, d, colorize)
	}

	return binder.DiagnosticsError(diags) == nil
}

func printDiagnostic(file *source.File, path string, d binder.Diagnostic, colorize bool) {
	rng := file.ToRange(d.Span)
	label := d.Severity.String()

	if colorize {
		label = colorFor(d.Severity) + label + "\033[0m"
	}

	fmt.Printf("%s:%s: %s: %s [%s]\n", path, rng, label, d.Message, d.Rule)
}

func colorFor(sev binder.Severity) string {
	switch sev {
	case binder.SeverityError:
		return "\033[31m"
	case binder.SeverityWarning:
		return "\033[33m"
	default:
		return "\033[36m"
	}
}

func moduleNameOf(path string) string {
	base := path

	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			base = path[i+1:]
			break
		}
	}

	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}

	return base
}

func init() {
	bindCmd.Flags().Bool("no-color", false, "disable colorized diagnostic output")
	bindCmd.Flags().Bool("report-global-shadows-builtin", false,
		"additionally report module-level assignments that shadow a built-in name")

	rootCmd.AddCommand(bindCmd)
}
