package invocation

import (
	"strings"

	"github.com/ansrun/ansrun/internal/args"
	"github.com/ansrun/ansrun/internal/credentials"
	"github.com/ansrun/ansrun/internal/envvars"
	"github.com/ansrun/ansrun/internal/executor"
	"github.com/ansrun/ansrun/internal/installation"
)

// NewAdHoc resolves the ansible executable from the named installation and
// prepares an ad-hoc invocation against a host pattern. module selects the
// task module ("command" when blank on the runner side) and moduleArgs its
// argument string.
func NewAdHoc(reg *installation.Registry, installationName, hostPattern, module, moduleArgs string, env envvars.Vars, store credentials.Store, exec executor.Executor) (*Invocation, error) {
	inv, err := New(reg, installationName, installation.CommandAdHoc, env, store, exec)
	if err != nil {
		return nil, err
	}

	inv.commandArgs = func(b *args.Builder, env envvars.Vars) error {
		if strings.TrimSpace(hostPattern) == "" {
			return newErrorf(KindConfiguration, "no host pattern is configured for this invocation")
		}
		b.Add(env.Expand(hostPattern))
		if strings.TrimSpace(module) != "" {
			b.Add("-m", module)
		}
		if strings.TrimSpace(moduleArgs) != "" {
			b.Add("-a", env.Expand(moduleArgs))
		}
		return nil
	}

	return inv, nil
}
