// Service commands for the svcledger CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagServiceDomain string

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage customer services",
}

var serviceAddCmd = &cobra.Command{
	Use:   "add CUSTOMER_ID TEMPLATE_ID RENEWAL_DATE",
	Short: "Subscribe a customer to a service from a template",
	Long: `Subscribe a customer to a service. The template's name and prices are
copied into the service. Hosting, domain, and email templates require
--domain.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseID(args[0], "customer id")
		if err != nil {
			return err
		}
		templateID, err := parseID(args[1], "template id")
		if err != nil {
			return err
		}
		renewal, err := parseDate(args[2])
		if err != nil {
			return err
		}
		id, err := appRepo.AddService(customerID, templateID, renewal, flagServiceDomain)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(map[string]int64{"id": id})
		}
		fmt.Printf("Service %d added to customer %d\n", id, customerID)
		return nil
	},
}

var serviceListCmd = &cobra.Command{
	Use:   "list CUSTOMER_ID",
	Short: "List a customer's services",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseID(args[0], "customer id")
		if err != nil {
			return err
		}
		services, err := appRepo.ListCustomerServices(customerID)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(services)
		}
		for _, sv := range services {
			line := fmt.Sprintf("%d\t%s\t%s/mo\t%s/yr\trenews %s\t%s",
				sv.ID, sv.ServiceName, sv.MonthlyPrice, sv.YearlyPrice,
				sv.RenewalDate.Format("2006-01-02"), sv.Status)
			if sv.Domain != "" {
				line += "\t" + sv.Domain
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	serviceAddCmd.Flags().StringVar(&flagServiceDomain, "domain", "", "domain name for hosting, domain, and email services")

	serviceCmd.AddCommand(serviceAddCmd)
	serviceCmd.AddCommand(serviceListCmd)
}
