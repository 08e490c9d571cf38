package cmd

import (
	"os"

	"github.com/ansrun/ansrun/internal/installation"
	"github.com/ansrun/ansrun/internal/styles"

	"github.com/aquasecurity/table"
	"github.com/spf13/cobra"
)

// installationsCmd lists the configured Ansible installations and whether
// their runner executables resolve on this host.
var installationsCmd = &cobra.Command{
	Use:   "installations",
	Short: "List configured Ansible installations",
	Long:  `Lists the configured Ansible installations and the executables they resolve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg := installation.NewRegistry(cfg.Installations)

		t := table.New(os.Stdout)
		t.SetHeaders("Name", "Home", "ansible-playbook", "ansible")
		for _, inst := range reg.All() {
			home := inst.Home
			if home == "" {
				home = "(PATH)"
			}
			t.AddRow(inst.Name, home,
				resolveCell(inst, installation.CommandPlaybook),
				resolveCell(inst, installation.CommandAdHoc))
		}
		t.Render()
		return nil
	},
}

func resolveCell(inst installation.Installation, cmd installation.Command) string {
	path, err := inst.ExecutablePath(cmd)
	if err != nil {
		return styles.ErrorStyle.Render("missing")
	}
	return path
}

func init() {
	rootCmd.AddCommand(installationsCmd)
}
