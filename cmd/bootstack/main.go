// Package main is the entry point for the bootstack CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bootstack/cli/internal/cmd"
	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/output"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Only print if the command layer hasn't already printed it
		var exitErr *oerrors.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}

		code := oerrors.ExitCodeFromError(err)
		output.Debug("exiting", "code", code, "reason", oerrors.ExitCodeName(code))
		os.Exit(code)
	}
}
