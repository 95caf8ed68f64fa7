package cmd

import (
	"fmt"
	"strings"

	"github.com/jeffreyeast/go-ppl/internal/builtins"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression...>",
	Short: "Evaluate a PPL expression and print the result",
	Long: `Evaluate a single PPL expression in a fresh workspace and print its
result (SPEC_FULL.md §1's "exec a string, get a reply" contract).

Example:
  ppl eval 3 + 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: evalExpression,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func evalExpression(_ *cobra.Command, args []string) error {
	ws := workspace.New()
	builtins.Register(ws)

	result, err := sequencer.ExecString(ws, strings.Join(args, " "))
	if err != nil {
		reportError(err)
		return fmt.Errorf("evaluation failed")
	}
	if result != nil {
		fmt.Println(result.String())
	}
	return nil
}
