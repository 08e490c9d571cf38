package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ansrun/ansrun/internal/runtime"
	"github.com/ansrun/ansrun/internal/spinners"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const releaseSlug = "ansrun/ansrun"

// selfUpdateCmd replaces the running binary with the latest release.
var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update ansrun to the latest release",
	Long:  `Update ansrun to the latest release`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runtime.DisableSelfUpdate == "true" {
			return fmt.Errorf("self-update is disabled in this build")
		}
		current, err := semver.NewVersion(runtime.Version)
		if err != nil {
			return fmt.Errorf("cannot determine the current version (%q): %w", runtime.Version, err)
		}
		return doSelfUpdate(cmd.Context(), current)
	},
}

func doSelfUpdate(ctx context.Context, current *semver.Version) error {
	var latest *selfupdate.Release
	err := spinners.RunTaskWithSpinnerContext(ctx, "Checking for updates", func() error {
		release, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(releaseSlug))
		if err != nil {
			return fmt.Errorf("detecting latest release: %w", err)
		}
		if !found {
			return fmt.Errorf("no release found for %s", releaseSlug)
		}
		latest = release
		return nil
	})
	if err != nil {
		return err
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Println("Current binary is the latest version:", current)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate the running executable: %w", err)
	}

	err = spinners.RunTaskWithSpinnerContext(ctx, fmt.Sprintf("Updating to %s", latest.Version()), func() error {
		return selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe)
	})
	if err != nil {
		return fmt.Errorf("binary update failed: %w", err)
	}

	fmt.Println("Successfully updated to version:", latest.Version())
	return nil
}

func init() {
	rootCmd.AddCommand(selfUpdateCmd)
}
