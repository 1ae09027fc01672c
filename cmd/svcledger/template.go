// Template commands for the svcledger CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsledger/svcledger/pkg/types"
)

var (
	flagTemplateDescription string
	flagTemplateCategory    string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage service templates",
}

var templateAddCmd = &cobra.Command{
	Use:   "add NAME MONTHLY_PRICE YEARLY_PRICE",
	Short: "Add a service template",
	Long: `Add a service template. The category is derived from the name unless
--category is given; hosting, domain, and email templates require a domain
when services are created from them.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		monthly, err := parsePrice(args[1])
		if err != nil {
			return err
		}
		yearly, err := parsePrice(args[2])
		if err != nil {
			return err
		}
		id, err := appRepo.AddTemplate(args[0], flagTemplateDescription, monthly, yearly,
			types.TemplateCategory(flagTemplateCategory))
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(map[string]int64{"id": id})
		}
		fmt.Printf("Template %d added\n", id)
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all service templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := appRepo.ListTemplates()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(templates)
		}
		for _, t := range templates {
			fmt.Printf("%d\t%s\t%s/mo\t%s/yr\t%s\n", t.ID, t.Name, t.MonthlyPrice, t.YearlyPrice, t.Category)
		}
		return nil
	},
}

var templateSetPriceCmd = &cobra.Command{
	Use:   "set-price ID MONTHLY_PRICE",
	Short: "Change a template's monthly price",
	Long: `Change a template's monthly price. Existing services keep the prices
they copied when they were created.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "template id")
		if err != nil {
			return err
		}
		monthly, err := parsePrice(args[1])
		if err != nil {
			return err
		}
		if err := appRepo.UpdateTemplatePrice(id, monthly); err != nil {
			return err
		}
		fmt.Printf("Template %d updated\n", id)
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a service template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "template id")
		if err != nil {
			return err
		}
		if err := appRepo.DeleteTemplate(id); err != nil {
			return err
		}
		fmt.Printf("Template %d deleted\n", id)
		return nil
	},
}

func init() {
	templateAddCmd.Flags().StringVar(&flagTemplateDescription, "description", "", "template description")
	templateAddCmd.Flags().StringVar(&flagTemplateCategory, "category", "", "template category (general, hosting, domain, email)")

	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateSetPriceCmd)
	templateCmd.AddCommand(templateDeleteCmd)
}
