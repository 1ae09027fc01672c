// Login command: checks a credential pair against the ledger.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsledger/svcledger/pkg/types"
)

var loginCmd = &cobra.Command{
	Use:   "login EMAIL PASSWORD",
	Short: "Check a credential pair and print the resolved identity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := appRepo.Authenticate(args[0], args[1])
		if err != nil {
			return err
		}
		if !identity.LoggedIn() {
			return fmt.Errorf("%w: invalid credentials", types.ErrValidation)
		}

		if flagJSON {
			return printJSON(identity)
		}
		if identity.IsAdmin() {
			fmt.Println("Logged in as admin")
			return nil
		}
		fmt.Printf("Logged in as %s (customer %d)\n", identity.Name, identity.CustomerID)
		return nil
	},
}
