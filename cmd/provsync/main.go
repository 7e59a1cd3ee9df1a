// Package main is the entry point for the provsync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mpratt/provsync/cmd/provsync/commands"
	"github.com/mpratt/provsync/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "\n%s\n", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		os.Exit(errors.ExitUser)
	}
}
