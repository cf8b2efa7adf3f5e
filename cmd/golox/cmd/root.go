// Package cmd implements the golox command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/defpis/golox/internal/runner"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose  bool
	useColor bool
)

// ExitError carries the process exit code for a failed run: 65 for any
// lexical, parse, static, or runtime error.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

var rootCmd = &cobra.Command{
	Use:   "golox [file]",
	Short: "Lox interpreter",
	Long: `golox is a Go implementation of the Lox scripting language.

Lox is a small dynamically-typed object-oriented language with first-class
functions, closures, classes with single inheritance, getters/setters,
static members, and compound/prefix/postfix operators.

With no arguments golox starts a REPL; with a file argument it executes the
file.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		log.SetFormatter(&easy.Formatter{LogFormat: "[%lvl%] %msg%\n"})
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return startREPL()
		}
		return runFile(args[0])
	},
}

// Execute runs the root command. Diagnostics are reported by the runner as
// they happen; only non-diagnostic failures (usage problems, unreadable
// files) are printed here.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&useColor, "color", true, "colored diagnostics")
}

// runFile executes a script file and maps any reported error to exit
// code 65.
func runFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	r := runner.New(os.Stdout, os.Stderr, runner.WithColor(useColor))
	_ = r.Run(string(content))
	if r.HadError() {
		return &ExitError{Code: 65}
	}
	return nil
}
