// Init command for the svcledger CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ledger store",
	Long: `Initialize the ledger in the resolved data directory. A fresh store is
seeded with a demo customer, three service templates, and one service.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The store is attached (and seeded on first run) by the root
		// command's PersistentPreRunE; confirm and report where.
		fmt.Println("Ledger initialized")
		return nil
	},
}
