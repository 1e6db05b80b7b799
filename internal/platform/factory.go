package platform

// NewRemotePlatform creates a Platform that reads a remote Linux host over
// SSH. Nothing needs to be installed on the remote side: files are read with
// cat and probes run through the login shell.
func NewRemotePlatform(config RemoteConfig, opts ...Option) (Platform, error) {
	return newSSHPlatform(config, buildOptions(opts))
}
