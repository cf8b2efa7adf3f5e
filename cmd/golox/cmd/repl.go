package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/defpis/golox/internal/runner"
)

// startREPL reads lines with history support and runs each non-special line
// as a whole program against a persistent interpreter. `exit` quits,
// `clear` clears the screen, blank lines are skipped. Errors are reported
// and the loop continues.
func startREPL() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "lox> ",
		HistoryFile: filepath.Join(os.TempDir(), ".golox_history"),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	r := runner.New(os.Stdout, os.Stderr, runner.WithColor(useColor))

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}
		if line == "clear" {
			// cursor home, wipe display
			io.WriteString(os.Stdout, "\x1b[H\x1b[2J")
			continue
		}

		r.Reset()
		_ = r.Run(line)
	}
}
