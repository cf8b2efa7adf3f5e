package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/defpis/golox/internal/runner"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox file or expression",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate an inline expression
  golox run -e "print 1 + 2;"

  # Run with AST dump (for debugging)
  golox run --dump-ast script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, _, err := readSource(args)
		if err != nil {
			return err
		}

		if dumpAST {
			if err := dumpProgram(source); err != nil {
				return err
			}
		}

		r := runner.New(os.Stdout, os.Stderr, runner.WithColor(useColor))
		_ = r.Run(source)
		if r.HadError() {
			return &ExitError{Code: 65}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

// readSource resolves the input for run/lex/parse: the --eval flag or a
// file argument.
func readSource(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
