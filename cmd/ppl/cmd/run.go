package cmd

import (
	"fmt"
	"os"

	"github.com/jeffreyeast/go-ppl/internal/builtins"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a PPL source file or expression",
	Long: `Execute a PPL program from a file or an inline expression, in a fresh
workspace with the full built-in surface registered.

Examples:
  # Run a script file
  ppl run program.ppl

  # Evaluate an inline expression
  ppl run -e "3 + 4"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, err := resolveSource(evalExpr, args)
	if err != nil {
		return err
	}

	ws := workspace.New()
	builtins.Register(ws)

	result, err := sequencer.ExecString(ws, source)
	if err != nil {
		reportError(err)
		return fmt.Errorf("execution failed")
	}
	if result != nil {
		fmt.Println(result.String())
	}
	return nil
}

// resolveSource picks the program text from -e or a single positional
// file argument, mirroring the teacher's run/lex input resolution.
func resolveSource(eval string, args []string) (source string, err error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// reportError renders an EvalError using spec.md §6's diagnostic format;
// any other error is printed bare.
func reportError(err error) {
	if evalErr, ok := err.(*pplerr.EvalError); ok {
		fmt.Fprintln(os.Stderr, evalErr.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
