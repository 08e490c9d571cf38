package cmd

import (
	"fmt"

	"github.com/ansrun/ansrun/internal/errors"
	"github.com/ansrun/ansrun/internal/executor"
	"github.com/ansrun/ansrun/internal/installation"
	"github.com/ansrun/ansrun/internal/invocation"

	"github.com/spf13/cobra"
)

var (
	adhocFlags      runFlags
	adhocModule     string
	adhocModuleArgs string
)

// adhocCmd runs one ad-hoc ansible invocation against a host pattern.
var adhocCmd = &cobra.Command{
	Use:   "adhoc [flags] <host-pattern>",
	Short: "Run an ad-hoc ansible invocation",
	Long:  `Runs one foreground ad-hoc ansible invocation against a host pattern.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadStore(cfg, adhocFlags.credentialsID)
		if err != nil {
			return err
		}

		name := adhocFlags.installation
		if name == "" {
			name = cfg.Defaults.Installation
		}

		reg := installation.NewRegistry(cfg.Installations)
		inv, err := invocation.NewAdHoc(reg, name, args[0], adhocModule, adhocModuleArgs, buildEnv(), store, executor.NewExecutor())
		if err != nil {
			return err
		}
		configure(inv, &adhocFlags, cfg)

		ok, err := inv.Execute(ctx)
		if err != nil {
			if errors.HandleInterruptError(err) {
				return fmt.Errorf("ad-hoc execution interrupted by user")
			}
			return err
		}
		if !ok {
			return fmt.Errorf("ad-hoc run against %q failed, scroll up to review", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adhocCmd)

	addRunFlags(adhocCmd, &adhocFlags)
	adhocCmd.Flags().StringVarP(&adhocModule, "module", "m", "", "module to execute")
	adhocCmd.Flags().StringVarP(&adhocModuleArgs, "module-args", "a", "", "module argument string")
}
