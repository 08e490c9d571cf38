// Package config loads the ansrun configuration file: the installation
// registry, the credential store location, and per-run defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ansrun/ansrun/internal/constants"
	"github.com/ansrun/ansrun/internal/installation"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level ansrun configuration.
type Config struct {
	// CredentialsFile points at the YAML credential store. Optional; without
	// it, credential identifiers cannot be resolved.
	CredentialsFile string `yaml:"credentials_file,omitempty"`

	// Installations lists the Ansible installations available on this host.
	// When empty, a single PATH-based "system" installation is assumed.
	Installations []installation.Installation `yaml:"installations,omitempty" validate:"dive"`

	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Defaults are applied to invocations unless overridden by flags.
type Defaults struct {
	Forks           int    `yaml:"forks,omitempty" validate:"omitempty,min=1"`
	Installation    string `yaml:"installation,omitempty"`
	Inventory       string `yaml:"inventory,omitempty"`
	HostKeyChecking *bool  `yaml:"host_key_checking,omitempty"`
	Unbuffered      *bool  `yaml:"unbuffered,omitempty"`
	Colorized       bool   `yaml:"colorized,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		CredentialsFile: constants.CredentialsPath,
		Installations: []installation.Installation{
			{Name: "system"},
		},
	}
}

// Load reads and validates the configuration at path. A missing file is not
// an error; the defaults are returned so ansrun works out of the box.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading configuration file %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return nil, fmt.Errorf("configuration file %s: field %s failed %q validation", path, first.Namespace(), first.Tag())
		}
		return nil, fmt.Errorf("configuration file %s: %w", path, err)
	}

	if err := checkDuplicateInstallations(cfg.Installations, path); err != nil {
		return nil, err
	}

	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = constants.CredentialsPath
	}
	if len(cfg.Installations) == 0 {
		cfg.Installations = []installation.Installation{{Name: "system"}}
	}
	return cfg, nil
}

func checkDuplicateInstallations(installations []installation.Installation, path string) error {
	seen := make(map[string]struct{}, len(installations))
	for _, inst := range installations {
		if _, dup := seen[inst.Name]; dup {
			return fmt.Errorf("configuration file %s: duplicate installation %q", path, inst.Name)
		}
		seen[inst.Name] = struct{}{}
	}
	return nil
}
