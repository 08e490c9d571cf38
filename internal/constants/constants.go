package constants

const (
	// Default locations for the ansrun configuration and credential store.
	ConfigPath      = "/etc/ansrun/config.yml"
	CredentialsPath = "/etc/ansrun/credentials.yml"

	// DefaultForks matches the Ansible default when no fork count is configured.
	DefaultForks = 5

	// SshpassBinary pipes a password credential into the runner's ssh sessions.
	SshpassBinary = "sshpass"

	// Environment toggles recognized by the runner.
	EnvUnbufferedOutput = "PYTHONUNBUFFERED"
	EnvForceColor       = "ANSIBLE_FORCE_COLOR"
	EnvHostKeyChecking  = "ANSIBLE_HOST_KEY_CHECKING"
)
