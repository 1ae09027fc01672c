// Upcoming-renewals and reminder commands for the svcledger CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsledger/svcledger/internal/renewal"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List services renewing within 30 days, most urgent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		upcoming, err := appEngine.Upcoming(time.Now())
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(upcoming)
		}
		for _, u := range upcoming {
			label := fmt.Sprintf("in %d days", u.DaysUntil)
			if u.DaysUntil < 0 {
				label = fmt.Sprintf("%d days overdue", -u.DaysUntil)
			}
			fmt.Printf("%d\tcustomer %d\t%s\t%s\t%s\n",
				u.Service.ID, u.Service.CustomerID, u.Service.ServiceName,
				u.Service.RenewalDate.Format("2006-01-02"), label)
		}
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind CUSTOMER_ID",
	Short: "Print a renewal reminder for a customer's near-renewal services",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseID(args[0], "customer id")
		if err != nil {
			return err
		}
		customer, err := appRepo.CustomerByID(customerID)
		if err != nil {
			return err
		}
		upcoming, err := appEngine.UpcomingForCustomer(customerID, time.Now())
		if err != nil {
			return err
		}

		body := renewal.ReminderBody(customer, upcoming)
		if flagJSON {
			return printJSON(map[string]string{"to": customer.Email, "body": body})
		}
		fmt.Printf("To: %s\nSubject: Service Renewal Reminder\n\n%s", customer.Email, body)
		return nil
	},
}
