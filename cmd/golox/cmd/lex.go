package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/defpis/golox/internal/errors"
	"github.com/defpis/golox/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file and dump the tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, _, err := readSource(args)
		if err != nil {
			return err
		}

		l := lexer.New(source)
		for _, token := range l.ScanTokens() {
			fmt.Println(token)
		}

		if lexErrors := l.Errors(); len(lexErrors) > 0 {
			for _, lexErr := range lexErrors {
				fmt.Fprintln(os.Stderr, errors.NewError(lexErr.Line, lexErr.Message).Format(useColor))
			}
			return &ExitError{Code: 65}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}
