// lex is a debugging aid not named in SPEC_FULL.md's subcommand list,
// kept because it costs nothing and is directly grounded on the
// teacher's own cmd/dwscript/cmd/lex.go.
package cmd

import (
	"fmt"
	"os"

	"github.com/jeffreyeast/go-ppl/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a PPL file or expression",
	Long: `Tokenize (lex) a PPL program and print the resulting tokens; useful
for debugging the lexer.

Examples:
  ppl lex program.ppl
  ppl lex -e "3 + 4"
  ppl lex --show-type --show-pos program.ppl`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, err := resolveSource(evalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	tokenCount := 0
	for {
		tok := l.NextToken()
		if tok.Kind == lexer.EOS {
			if !onlyErrors {
				printToken(tok)
			}
			break
		}
		if onlyErrors && tok.Kind != lexer.Illegal {
			continue
		}
		tokenCount++
		printToken(tok)
	}

	errs := l.Errors()
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format())
		}
		return fmt.Errorf("found %d lex error(s)", len(errs))
	}

	if verbose {
		fmt.Printf("---\ntotal tokens: %d\n", tokenCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-12s]", tok.Kind)
	}
	switch tok.Kind {
	case lexer.EOS:
		out += " EOS"
	case lexer.Illegal:
		out += fmt.Sprintf(" ILLEGAL: %q", tok.Text)
	default:
		out += fmt.Sprintf(" %q", tok.Text)
	}
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
