package cmd

import (
	"github.com/ansrun/ansrun/internal/constants"
	"github.com/ansrun/ansrun/internal/spinners"

	"github.com/spf13/cobra"
)

var (
	verbosity  int
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ansrun",
	Short: "Assemble and run Ansible invocations for build jobs",
	Long: `ansrun assembles command-line invocations of Ansible on behalf of a build
job: it resolves the installation to use, injects credentials and inventory
targeting, tunes the runner environment, and guarantees that any secret
material written to disk is removed when the run ends.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		spinners.SetVerboseMode(verbosity > 0)
	},
}

// GetRootCommand returns the root command for use with fang.Execute.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase debug output (repeat for trace)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", constants.ConfigPath, "path to the ansrun configuration file")
}
