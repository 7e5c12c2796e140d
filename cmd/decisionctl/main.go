package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"decisionengine/internal/cliapp"
)

// main is a deterministic boundary: it canonicalizes all CLI inputs into an
// invocation struct before any engine logic is invoked.
func main() {
	result, err := cliapp.Run(context.Background(), os.Args[1:])
	if err != nil {
		var invErr *cliapp.InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
			os.Exit(invErr.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
	}

	if result.Outcome != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result.Outcome); encErr != nil {
			fmt.Fprintln(os.Stderr, encErr)
			os.Exit(cliapp.ExitGenericError)
		}
	}
	os.Exit(result.ExitCode)
}
