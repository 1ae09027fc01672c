// Customer commands for the svcledger CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var customerAddCmd = &cobra.Command{
	Use:   "add NAME EMAIL PASSWORD",
	Short: "Add a customer",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := appRepo.AddCustomer(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(map[string]int64{"id": id})
		}
		fmt.Printf("Customer %d added\n", id)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all customers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		customers, err := appRepo.ListCustomers()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(customers)
		}
		for _, c := range customers {
			count, err := appRepo.CountServices(c.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%s\t%s\t%d services\n", c.ID, c.Name, c.Email, count)
		}
		return nil
	},
}

var customerShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a customer and their services",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "customer id")
		if err != nil {
			return err
		}
		customer, err := appRepo.CustomerByID(id)
		if err != nil {
			return err
		}
		services, err := appRepo.ListCustomerServices(id)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]any{"customer": customer, "services": services})
		}
		fmt.Printf("Customer: %s\nEmail: %s\n\nServices:\n", customer.Name, customer.Email)
		if len(services) == 0 {
			fmt.Println("No services")
			return nil
		}
		for _, sv := range services {
			line := fmt.Sprintf("%d\t%s\trenews %s\t%s", sv.ID, sv.ServiceName, sv.RenewalDate.Format("2006-01-02"), sv.Status)
			if sv.Domain != "" {
				line += "\t" + sv.Domain
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerShowCmd)
}
