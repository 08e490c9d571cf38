package runtime

var (
	// Version and GitCommit are populated at build time via -ldflags.
	Version   string
	GitCommit string
	// DisableSelfUpdate is a build flag that disables the self-update command.
	// Set this to "true" at build time for packaged distributions.
	DisableSelfUpdate string
)
