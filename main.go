package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/memdoc/cmd/cli"
	"github.com/temirov/memdoc/internal/audit"
)

const (
	exitErrorTemplateConstant  = "%v\n"
	genericFailureExitCode     = 1
	thresholdViolationExitCode = 2
)

// main executes the memdoc command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		if errors.Is(executionError, audit.ErrScoreBelowThreshold) {
			os.Exit(thresholdViolationExitCode)
		}
		os.Exit(genericFailureExitCode)
	}
}
