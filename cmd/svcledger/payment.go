// Payment and renewal commands for the svcledger CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var payCmd = &cobra.Command{
	Use:   "pay CUSTOMER_ID SERVICE_ID TYPE",
	Short: "Record a renewal payment for a service",
	Long: `Record a renewal payment. TYPE is monthly or yearly; the amount is the
service's copied price for that cadence. The payment is authorized by the
demo authorizer, stored as processing, and the service is marked
processing until the renewal is completed.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseID(args[0], "customer id")
		if err != nil {
			return err
		}
		serviceID, err := parseID(args[1], "service id")
		if err != nil {
			return err
		}
		pt, err := parsePaymentType(args[2])
		if err != nil {
			return err
		}
		paymentID, err := appEngine.RecordPayment(customerID, serviceID, pt)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(map[string]int64{"payment_id": paymentID})
		}
		fmt.Printf("Payment %d recorded; complete it with: svcledger renew %d\n", paymentID, paymentID)
		return nil
	},
}

var renewCmd = &cobra.Command{
	Use:   "renew PAYMENT_ID",
	Short: "Complete a recorded payment and advance the renewal date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paymentID, err := parseID(args[0], "payment id")
		if err != nil {
			return err
		}
		if err := appEngine.CompleteRenewal(paymentID); err != nil {
			return err
		}
		fmt.Printf("Renewal completed for payment %d\n", paymentID)
		return nil
	},
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List all payments, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payments, err := appRepo.ListAllPayments()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(payments)
		}
		for _, p := range payments {
			fmt.Printf("%d\tcustomer %d\tservice %d\t%s\t%s\t%s\t%s\n",
				p.ID, p.CustomerID, p.ServiceID, p.Amount, p.Type, p.Status,
				p.PaymentDate.Format("2006-01-02 15:04"))
		}
		return nil
	},
}
