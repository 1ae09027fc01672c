// Package main provides the svcledger CLI, the collaborator surface over
// the subscription core: login, admin CRUD, payment recording, renewal
// completion, and the upcoming-renewals view.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/opsledger/svcledger/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error onto the CLI exit-code contract: user mistakes
// (bad input, missing ids, duplicates) exit 1, system failures exit 2.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrConstraint),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrPaymentCompleted):
		return exitUserError
	default:
		return exitSysError
	}
}
