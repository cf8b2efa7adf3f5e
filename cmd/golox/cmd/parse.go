package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/defpis/golox/internal/errors"
	"github.com/defpis/golox/internal/lexer"
	"github.com/defpis/golox/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file and dump the AST",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, _, err := readSource(args)
		if err != nil {
			return err
		}
		return dumpProgram(source)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

// dumpProgram parses the source and prints the AST rendering, reporting any
// lexical or parse errors first.
func dumpProgram(source string) error {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	failed := false
	for _, lexErr := range l.Errors() {
		fmt.Fprintln(os.Stderr, errors.NewError(lexErr.Line, lexErr.Message).Format(useColor))
		failed = true
	}
	for _, d := range p.Errors() {
		fmt.Fprintln(os.Stderr, d.Format(useColor))
		failed = true
	}
	if failed {
		return &ExitError{Code: 65}
	}

	fmt.Println(program.String())
	return nil
}
