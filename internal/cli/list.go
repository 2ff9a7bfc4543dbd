package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thetiptop/archdiagram/pkg/topology"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Diagrams"))
			for _, d := range topology.All() {
				formats := cfg.FormatsFor(d.Name, d.DefaultFormats)
				printKeyValue(d.Name, strings.Join(formats, ", "))
				printDetail("%s", d.Description)
			}
			fmt.Println()
			printNextStep("Render all", appName+" render all")
			return nil
		},
	}
}
