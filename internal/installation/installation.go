// Package installation tracks the Ansible installations available to this
// host and resolves runner executables from them. The registry is loaded once
// at startup and injected into whatever needs it; there is no ambient global
// lookup.
package installation

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/agnivade/levenshtein"
)

// Command names a runner executable an installation can provide.
type Command string

const (
	// CommandAdHoc is the ad-hoc task runner.
	CommandAdHoc Command = "ansible"
	// CommandPlaybook is the playbook runner.
	CommandPlaybook Command = "ansible-playbook"
)

// Installation is a named Ansible installation rooted at a home directory.
// An empty Home means executables are resolved from PATH.
type Installation struct {
	Name string `yaml:"name" validate:"required"`
	Home string `yaml:"home,omitempty"`
}

// ExecutablePath resolves the executable for cmd within this installation.
// It fails when the executable is missing or not runnable.
func (i Installation) ExecutablePath(cmd Command) (string, error) {
	if i.Home == "" {
		path, err := exec.LookPath(string(cmd))
		if err != nil {
			return "", fmt.Errorf("%s not found on PATH, check your installation", cmd)
		}
		return path, nil
	}

	path := filepath.Join(i.Home, "bin", string(cmd))
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%s not found in installation %q, check your installation", cmd, i.Name)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return "", fmt.Errorf("%s in installation %q is not executable", cmd, i.Name)
	}
	return path, nil
}

// Registry holds the configured installations. Load once, read many.
type Registry struct {
	installations []Installation
}

// NewRegistry builds a registry from the configured installations.
func NewRegistry(installations []Installation) *Registry {
	return &Registry{installations: installations}
}

// All returns the registered installations in configuration order.
func (r *Registry) All() []Installation {
	return r.installations
}

// Find returns the installation with the given name. An empty name selects
// the first registered installation. Unknown names get a close-match
// suggestion when one exists within edit distance 2.
func (r *Registry) Find(name string) (*Installation, error) {
	if len(r.installations) == 0 {
		return nil, fmt.Errorf("no Ansible installations are configured")
	}
	if name == "" {
		return &r.installations[0], nil
	}

	for idx := range r.installations {
		if r.installations[idx].Name == name {
			return &r.installations[idx], nil
		}
	}

	if suggestion := r.closestName(name); suggestion != "" {
		return nil, fmt.Errorf("unknown Ansible installation %q. Did you mean %q?", name, suggestion)
	}
	return nil, fmt.Errorf("unknown Ansible installation %q", name)
}

// closestName finds a registered name within edit distance 2 of name.
func (r *Registry) closestName(name string) string {
	best := ""
	bestDistance := 3
	for _, inst := range r.installations {
		distance := levenshtein.ComputeDistance(name, inst.Name)
		if distance < bestDistance {
			bestDistance = distance
			best = inst.Name
		}
	}
	return best
}
