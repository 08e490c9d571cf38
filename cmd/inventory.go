package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ansrun/ansrun/internal/inventory"
	"github.com/ansrun/ansrun/internal/styles"

	"github.com/aquasecurity/table"
	"github.com/spf13/cobra"
)

// inventoryCmd lists the groups and hosts of an INI inventory file.
var inventoryCmd = &cobra.Command{
	Use:   "inventory [flags] <file>",
	Short: "List groups and hosts of an inventory file",
	Long:  `Parses an INI-format inventory file and lists its groups and hosts.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.Defaults.Inventory
		}
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("no inventory file given and no default inventory configured")
		}

		groups, err := inventory.Groups(path)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println(styles.DimStyle.Render("inventory is empty"))
			return nil
		}

		t := table.New(os.Stdout)
		t.SetHeaders("Group", "Hosts")
		for _, group := range groups {
			t.AddRow(group.Name, strings.Join(group.Hosts, ", "))
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
}
