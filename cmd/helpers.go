package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ansrun/ansrun/internal/config"
	"github.com/ansrun/ansrun/internal/credentials"
	"github.com/ansrun/ansrun/internal/envvars"
	"github.com/ansrun/ansrun/internal/inventory"
	"github.com/ansrun/ansrun/internal/invocation"
	"github.com/ansrun/ansrun/internal/logging"
)

// runFlags are the invocation options shared by the playbook and adhoc
// commands.
type runFlags struct {
	installation  string
	inventoryPath string
	hosts         []string
	forks         int
	become        bool
	becomeUser    string
	credentialsID string
	extraArgs     string
	workDir       string
	unbuffered    bool
	colorized     bool
	hostKeyCheck  bool
}

// loadConfig reads the configured config file, honoring --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logging.Debug(verbosity, "loaded configuration from %s", configFile)
	return cfg, nil
}

// loadStore opens the credential store named by the configuration. A missing
// store file is only an error when a credential was actually requested;
// callers get a nil store otherwise.
func loadStore(cfg *config.Config, credentialsID string) (credentials.Store, error) {
	store, err := credentials.LoadFileStore(cfg.CredentialsFile, verbosity)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && strings.TrimSpace(credentialsID) == "" {
			return nil, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("credentials %q requested but credentials file %s does not exist", credentialsID, cfg.CredentialsFile)
		}
		return nil, err
	}
	return store, nil
}

// inventoryHandler maps the inventory flags onto a handler: an explicit host
// list wins, then an inventory path, then the configured default inventory.
// Returning nil defers the "inventory not defined" error to the invocation.
func inventoryHandler(flags *runFlags, cfg *config.Config) inventory.Handler {
	if len(flags.hosts) > 0 {
		return &inventory.HostList{Hosts: flags.hosts}
	}
	if strings.TrimSpace(flags.inventoryPath) != "" {
		return &inventory.Path{Path: flags.inventoryPath}
	}
	if strings.TrimSpace(cfg.Defaults.Inventory) != "" {
		return &inventory.Path{Path: cfg.Defaults.Inventory}
	}
	return nil
}

// configure applies the shared flags and configuration defaults to a freshly
// constructed invocation.
func configure(inv *invocation.Invocation, flags *runFlags, cfg *config.Config) {
	inv.SetInventory(inventoryHandler(flags, cfg))

	forks := flags.forks
	if forks == 0 && cfg.Defaults.Forks > 0 {
		forks = cfg.Defaults.Forks
	}
	if forks > 0 {
		inv.SetForks(forks)
	}

	inv.SetBecome(flags.become, flags.becomeUser)
	inv.SetCredentials(flags.credentialsID)
	inv.SetAdditionalParameters(flags.extraArgs)
	inv.SetWorkingDir(flags.workDir)
	inv.SetVerbosity(verbosity)

	unbuffered := flags.unbuffered
	if cfg.Defaults.Unbuffered != nil {
		unbuffered = unbuffered || *cfg.Defaults.Unbuffered
	}
	inv.SetUnbufferedOutput(unbuffered)
	inv.SetColorizedOutput(flags.colorized || cfg.Defaults.Colorized)

	hostKeyCheck := flags.hostKeyCheck
	if cfg.Defaults.HostKeyChecking != nil && !*cfg.Defaults.HostKeyChecking {
		hostKeyCheck = false
	}
	inv.SetHostKeyChecking(hostKeyCheck)
}

// buildEnv snapshots the current process environment for the invocation.
func buildEnv() envvars.Vars {
	return envvars.FromEnviron(os.Environ())
}
