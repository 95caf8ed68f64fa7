// Package cmd implements the ppl CLI (SPEC_FULL.md §1 "(added) Ambient
// stack"): a cobra root command exposing run/eval/lex/version
// subcommands that exercise the workspace through the narrow "exec a
// string, get a reply" contract. This is the minimum ambient CLI
// surface, not a full REPL (out of scope per spec.md §1).
//
// Grounded on the teacher's (github.com/cwbudde/go-dws) cmd/dwscript/cmd
// package: one rootCmd, a persistent --verbose flag, one file per
// subcommand, Execute() as the sole entry point main.go calls.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags); kept in sync with
	// internal/builtins/metadata.go's `version` built-in ("PPL T0.0").
	Version   = "T0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ppl",
	Short: "PPL interpreter",
	Long: `ppl is a tree-walking interpreter for PPL, a small dynamically-typed
scientific-calculator language built around a persistent workspace of
datatypes, functions, selectors and globals.`,
	Version: Version,
}

// Execute runs the root command; main.go's sole responsibility.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
