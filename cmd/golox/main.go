package main

import (
	"errors"
	"os"

	"github.com/defpis/golox/cmd/golox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		// anything else is a usage problem
		os.Exit(64)
	}
}
