// Package invocation assembles and executes a single run of an external
// Ansible command on behalf of a build step. An Invocation is configured
// through setters, consumed exactly once by Execute, and guarantees that any
// secret material it wrote to disk is removed on every exit path.
package invocation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ansrun/ansrun/internal/args"
	"github.com/ansrun/ansrun/internal/constants"
	"github.com/ansrun/ansrun/internal/credentials"
	"github.com/ansrun/ansrun/internal/envvars"
	"github.com/ansrun/ansrun/internal/executor"
	"github.com/ansrun/ansrun/internal/installation"
	"github.com/ansrun/ansrun/internal/inventory"
	"github.com/ansrun/ansrun/internal/logging"
)

// Invocation is one configured run of a runner executable. It is used by
// exactly one build step and is not safe for concurrent use; Execute consumes
// it and a second Execute fails with a configuration error.
type Invocation struct {
	exe string

	forks         int
	become        bool
	becomeUser    string
	credentialsID string
	extraParams   string

	inv         inventory.Handler
	env         envvars.Vars
	environment map[string]string
	workDir     string
	output      io.Writer
	verbosity   int

	store credentials.Store
	exec  executor.Executor

	// commandArgs contributes the command-specific tokens (playbook path,
	// host pattern and module) directly after the executable.
	commandArgs func(b *args.Builder, env envvars.Vars) error

	cred         credentials.Credential
	credResolved bool
	keyFile      string
	executed     bool
	tornDown     bool
}

// New resolves the executable for cmd from the named installation and
// returns an Invocation ready for configuration. Resolution failure aborts
// construction; the returned Invocation always has a usable executable path.
//
// env is the build's environment snapshot (nil means the current process
// environment at execute time). store may be nil when no credential lookup
// is available.
func New(reg *installation.Registry, installationName string, cmd installation.Command, env envvars.Vars, store credentials.Store, exec executor.Executor) (*Invocation, error) {
	inst, err := reg.Find(installationName)
	if err != nil {
		return nil, &Error{Kind: KindResolution, Err: err}
	}
	exe, err := inst.ExecutablePath(cmd)
	if err != nil {
		return nil, &Error{Kind: KindResolution, Err: err}
	}

	if env == nil {
		env = envvars.New()
	}
	if exec == nil {
		exec = executor.NewExecutor()
	}

	return &Invocation{
		exe:         exe,
		forks:       constants.DefaultForks,
		env:         env,
		environment: make(map[string]string),
		store:       store,
		exec:        exec,
	}, nil
}

// SetInventory injects the inventory handle. Required before Execute.
func (i *Invocation) SetInventory(h inventory.Handler) {
	i.inv = h
}

// SetForks sets the runner's parallelism. The value is passed through
// unvalidated; the runner owns range checking.
func (i *Invocation) SetForks(forks int) {
	i.forks = forks
}

// SetBecome enables privilege escalation, optionally as a specific user.
// Environment references in user are expanded when the vector is built.
func (i *Invocation) SetBecome(become bool, user string) {
	i.become = become
	i.becomeUser = user
}

// SetCredentials records the opaque credential identifier to resolve at
// execute time. A blank identifier leaves the invocation unauthenticated.
func (i *Invocation) SetCredentials(id string) {
	i.credentialsID = id
}

// SetAdditionalParameters sets free-form trailing parameters. The string is
// env-expanded and tokenized with shell quoting rules when the vector is
// built.
func (i *Invocation) SetAdditionalParameters(params string) {
	i.extraParams = params
}

// SetWorkingDir sets the working directory the runner is launched in.
func (i *Invocation) SetWorkingDir(dir string) {
	i.workDir = dir
}

// SetOutput routes the runner's stdout and stderr to w instead of the
// calling process's terminal.
func (i *Invocation) SetOutput(w io.Writer) {
	i.output = w
}

// SetVerbosity controls debug logging of the (masked) command line.
func (i *Invocation) SetVerbosity(verbosity int) {
	i.verbosity = verbosity
}

// SetUnbufferedOutput disables output buffering in the runner when enabled.
func (i *Invocation) SetUnbufferedOutput(unbuffered bool) {
	if unbuffered {
		i.environment[constants.EnvUnbufferedOutput] = "1"
	}
}

// SetColorizedOutput forces color in runner output when enabled.
func (i *Invocation) SetColorizedOutput(colorized bool) {
	if colorized {
		i.environment[constants.EnvForceColor] = "true"
	}
}

// SetHostKeyChecking disables host key verification when called with false.
func (i *Invocation) SetHostKeyChecking(checking bool) {
	if !checking {
		i.environment[constants.EnvHostKeyChecking] = "False"
	}
}

func (i *Invocation) appendExecutable(b *args.Builder) {
	b.Add(i.exe)
}

func (i *Invocation) appendInventory(b *args.Builder) error {
	if i.inv == nil {
		return newErrorf(KindConfiguration, "the inventory of hosts and groups is not defined, check the job configuration")
	}
	if err := i.inv.AddArgs(b, i.env); err != nil {
		return newErrorf(KindConfiguration, "adding inventory arguments: %w", err)
	}
	return nil
}

func (i *Invocation) appendForks(b *args.Builder) {
	b.Add("-f", strconv.Itoa(i.forks))
}

func (i *Invocation) appendBecome(b *args.Builder) {
	if !i.become {
		return
	}
	b.Add("--become")
	if strings.TrimSpace(i.becomeUser) != "" {
		b.Add("--become-user", i.env.Expand(i.becomeUser))
	}
}

func (i *Invocation) appendAdditionalParameters(b *args.Builder) error {
	if err := b.AddTokenized(i.extraParams, i.env); err != nil {
		return newErrorf(KindConfiguration, "additional parameters: %w", err)
	}
	return nil
}

// credential resolves the configured credential identifier at most once per
// invocation. A blank identifier, a nil store, or a store miss all yield no
// credential rather than an error.
func (i *Invocation) credential() (credentials.Credential, error) {
	if i.credResolved {
		return i.cred, nil
	}
	i.credResolved = true

	if i.store == nil || strings.TrimSpace(i.credentialsID) == "" {
		return nil, nil
	}
	cred, err := i.store.Find(i.credentialsID)
	if err != nil {
		return nil, newErrorf(KindCredential, "resolving credentials %q: %w", i.credentialsID, err)
	}
	i.cred = cred
	return cred, nil
}

// prependPasswordAuth places the password-piping helper and the masked
// secret ahead of the executable for password credentials.
func (i *Invocation) prependPasswordAuth(b *args.Builder) error {
	cred, err := i.credential()
	if err != nil {
		return err
	}
	if password, ok := cred.(credentials.Password); ok {
		b.Add(constants.SshpassBinary)
		b.AddMasked("-p" + password.Password.Plain())
	}
	return nil
}

// appendCredentials adds the credential flags. Private keys are materialized
// into a 0600 temporary file owned by this invocation; the file is reused if
// one was already created so at most one key file exists per invocation.
func (i *Invocation) appendCredentials(b *args.Builder) error {
	cred, err := i.credential()
	if err != nil {
		return err
	}
	switch c := cred.(type) {
	case credentials.PrivateKey:
		if i.keyFile == "" {
			keyFile, err := writeKeyFile(c.Key)
			if err != nil {
				return newErrorf(KindCredential, "materializing private key for %q: %w", i.credentialsID, err)
			}
			i.keyFile = keyFile
		}
		b.Add("--private-key", i.keyFile)
		b.Add("-u", c.User)
	case credentials.Password:
		b.Add("-u", c.User)
		b.Add("-k")
	}
	return nil
}

// writeKeyFile materializes private key material into a restrictively
// permissioned temporary file.
func writeKeyFile(key credentials.Secret) (string, error) {
	f, err := os.CreateTemp("", "ssh-*.key")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Chmod(0o600); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	material := key.Plain()
	if !strings.HasSuffix(material, "\n") {
		material += "\n"
	}
	if _, err := f.WriteString(material); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// buildCommandLine composes the full argument vector in the fixed fragment
// order: password helper prefix, executable, command-specific tokens,
// inventory, forks, escalation, credential flags, additional parameters.
func (i *Invocation) buildCommandLine() (*args.Builder, error) {
	b := args.New()
	if err := i.prependPasswordAuth(b); err != nil {
		return nil, err
	}
	i.appendExecutable(b)
	if i.commandArgs != nil {
		if err := i.commandArgs(b, i.env); err != nil {
			return nil, err
		}
	}
	if err := i.appendInventory(b); err != nil {
		return nil, err
	}
	i.appendForks(b)
	i.appendBecome(b)
	if err := i.appendCredentials(b); err != nil {
		return nil, err
	}
	if err := i.appendAdditionalParameters(b); err != nil {
		return nil, err
	}
	return b, nil
}

// childEnviron composes the child process environment: the build snapshot
// (or the current process environment when no snapshot was taken) overlaid
// with the accumulated feature-toggle variables.
func (i *Invocation) childEnviron() []string {
	environ := i.env.Environ()
	if len(environ) == 0 {
		environ = os.Environ()
	}
	for key, value := range i.environment {
		environ = append(environ, key+"="+value)
	}
	return environ
}

// Execute builds the argument vector and runs the process, blocking until it
// exits. It returns true only on exit code 0; a non-zero exit is (false,
// nil). Errors from resolution, configuration, credentials, or launch
// propagate after teardown. Regardless of outcome the inventory handle is
// torn down and any materialized key file is deleted, exactly once.
func (i *Invocation) Execute(ctx context.Context) (bool, error) {
	if i.executed {
		return false, newErrorf(KindConfiguration, "invocation has already been executed")
	}
	i.executed = true
	defer i.tearDown()

	b, err := i.buildCommandLine()
	if err != nil {
		return false, err
	}

	logging.Debug(i.verbosity, "executing: %s", b)

	vector := b.List()
	result, runErr := i.exec.Execute(&executor.Config{
		Context:    ctx,
		Command:    vector[0],
		Args:       vector[1:],
		WorkingDir: i.workDir,
		Env:        i.childEnviron(),
		OutputMode: executor.OutputModeStream,
		Stdout:     i.output,
		Stderr:     i.output,
	})
	if runErrFatal(runErr) {
		return false, newErrorf(KindLaunch, "launching %s: %w", i.exe, runErr)
	}
	return result != nil && result.ExitCode == 0, nil
}

// runErrFatal distinguishes launch failures from plain non-zero exits, which
// are reported through the boolean result instead.
func runErrFatal(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}

// tearDown releases the invocation's resources: the inventory handle's hook
// first, then the ephemeral key file. Each step is best-effort so a failure
// in one never suppresses the other, and the whole sequence runs once.
func (i *Invocation) tearDown() {
	if i.tornDown {
		return
	}
	i.tornDown = true

	if i.inv != nil {
		if err := i.inv.TearDown(); err != nil {
			fmt.Fprintf(i.logWriter(), "WARNING: inventory teardown failed: %v\n", err)
		}
	}
	if i.keyFile != "" {
		if err := os.Remove(i.keyFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(i.logWriter(), "WARNING: could not delete key file: %v\n", err)
		}
		i.keyFile = ""
	}
}

func (i *Invocation) logWriter() io.Writer {
	if i.output != nil {
		return i.output
	}
	return os.Stderr
}
