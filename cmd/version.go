package cmd

import (
	"fmt"

	"github.com/ansrun/ansrun/internal/runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ansrun version",
	Long:  `Print ansrun version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("ansrun version: %s (commit: %s)\n", runtime.Version, runtime.GitCommit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
