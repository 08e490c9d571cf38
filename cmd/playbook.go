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
	playbookFlags runFlags
	playbookOpts  invocation.PlaybookOptions
)

// playbookCmd runs one ansible-playbook invocation for a build step.
var playbookCmd = &cobra.Command{
	Use:   "playbook [flags] <playbook>",
	Short: "Run an ansible-playbook invocation",
	Long: `Runs one foreground ansible-playbook invocation: the argument vector is
assembled from the flags below, credentials are injected from the credential
store, and any secret material written to disk is removed when the run ends.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadStore(cfg, playbookFlags.credentialsID)
		if err != nil {
			return err
		}

		name := playbookFlags.installation
		if name == "" {
			name = cfg.Defaults.Installation
		}

		reg := installation.NewRegistry(cfg.Installations)
		inv, err := invocation.NewPlaybook(reg, name, args[0], playbookOpts, buildEnv(), store, executor.NewExecutor())
		if err != nil {
			return err
		}
		configure(inv, &playbookFlags, cfg)

		ok, err := inv.Execute(ctx)
		if err != nil {
			if errors.HandleInterruptError(err) {
				return fmt.Errorf("playbook execution interrupted by user")
			}
			return err
		}
		if !ok {
			return fmt.Errorf("playbook %s run failed, scroll up to the failed task to review", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playbookCmd)

	addRunFlags(playbookCmd, &playbookFlags)
	playbookCmd.Flags().StringVarP(&playbookOpts.Limit, "limit", "l", "", "limit the run to this host subset")
	playbookCmd.Flags().StringVarP(&playbookOpts.Tags, "tags", "t", "", "only run plays and tasks tagged with these values")
	playbookCmd.Flags().StringVar(&playbookOpts.SkipTags, "skip-tags", "", "skip plays and tasks tagged with these values")
	playbookCmd.Flags().StringVar(&playbookOpts.StartAtTask, "start-at-task", "", "start the playbook at the task with this name")
	playbookCmd.Flags().StringToStringVarP(&playbookOpts.ExtraVars, "extra-vars", "e", nil, "extra variables as key=value pairs")
}

// addRunFlags registers the invocation flags shared by playbook and adhoc.
func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.installation, "installation", "", "name of the Ansible installation to use")
	cmd.Flags().StringVarP(&flags.inventoryPath, "inventory", "i", "", "inventory file or directory")
	cmd.Flags().StringSliceVar(&flags.hosts, "host", nil, "target host (repeatable, replaces the inventory file)")
	cmd.Flags().IntVarP(&flags.forks, "forks", "f", 0, "number of parallel processes (0 uses the configured default)")
	cmd.Flags().BoolVarP(&flags.become, "become", "b", false, "run operations with privilege escalation")
	cmd.Flags().StringVar(&flags.becomeUser, "become-user", "", "user to escalate to")
	cmd.Flags().StringVarP(&flags.credentialsID, "credentials", "c", "", "credential store identifier")
	cmd.Flags().StringVar(&flags.extraArgs, "args", "", "additional parameters appended to the invocation")
	cmd.Flags().StringVar(&flags.workDir, "workdir", "", "working directory for the runner")
	cmd.Flags().BoolVar(&flags.unbuffered, "unbuffered", true, "disable output buffering in the runner")
	cmd.Flags().BoolVar(&flags.colorized, "color", false, "force color in runner output")
	cmd.Flags().BoolVar(&flags.hostKeyCheck, "host-key-check", true, "verify SSH host keys")
}
