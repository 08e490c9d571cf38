package invocation

import (
	"sort"
	"strings"

	"github.com/ansrun/ansrun/internal/args"
	"github.com/ansrun/ansrun/internal/credentials"
	"github.com/ansrun/ansrun/internal/envvars"
	"github.com/ansrun/ansrun/internal/executor"
	"github.com/ansrun/ansrun/internal/installation"
)

// PlaybookOptions are the playbook-specific selectors beyond the shared
// invocation configuration. Blank fields are omitted from the vector.
type PlaybookOptions struct {
	Limit       string
	Tags        string
	SkipTags    string
	StartAtTask string
	ExtraVars   map[string]string
}

// NewPlaybook resolves the ansible-playbook executable from the named
// installation and prepares an invocation for the given playbook file.
func NewPlaybook(reg *installation.Registry, installationName, playbook string, opts PlaybookOptions, env envvars.Vars, store credentials.Store, exec executor.Executor) (*Invocation, error) {
	inv, err := New(reg, installationName, installation.CommandPlaybook, env, store, exec)
	if err != nil {
		return nil, err
	}

	inv.commandArgs = func(b *args.Builder, env envvars.Vars) error {
		if strings.TrimSpace(playbook) == "" {
			return newErrorf(KindConfiguration, "no playbook is configured for this invocation")
		}
		b.Add(env.Expand(playbook))
		if strings.TrimSpace(opts.Limit) != "" {
			b.Add("-l", env.Expand(opts.Limit))
		}
		if strings.TrimSpace(opts.Tags) != "" {
			b.Add("-t", env.Expand(opts.Tags))
		}
		if strings.TrimSpace(opts.SkipTags) != "" {
			b.Add("--skip-tags", env.Expand(opts.SkipTags))
		}
		if strings.TrimSpace(opts.StartAtTask) != "" {
			b.Add("--start-at-task", env.Expand(opts.StartAtTask))
		}
		for _, key := range sortedKeys(opts.ExtraVars) {
			b.Add("-e", key+"="+env.Expand(opts.ExtraVars[key]))
		}
		return nil
	}

	return inv, nil
}

// sortedKeys keeps the extra-vars order deterministic so runs are
// reproducible and testable.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
