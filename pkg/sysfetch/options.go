package sysfetch

import (
	"io"
	"log/slog"
	"time"

	"github.com/opd-ai/sysfetch/internal/config"
	"github.com/opd-ai/sysfetch/internal/platform"
)

// Options override the configuration file. Zero values leave the file's
// settings in place; boolean options can only switch a setting on.
type Options struct {
	// ConfigPath is the Lua configuration file. Empty selects the default
	// location, which may be absent.
	ConfigPath string

	// Show replaces the configured field selection.
	Show []string
	// Hide is added to the configured hidden fields.
	Hide []string

	ShortShell  bool
	ShortUptime bool
	Bar         bool
	// Interface selects the network interface for the local IP field.
	Interface string

	// Timeout overrides the per-probe timeout.
	Timeout time.Duration

	// Remote is an SSH target "user@host[:port]".
	Remote string
	// Identity is the private key used for Remote; empty uses the SSH agent.
	Identity string
	// InsecureHostKey skips host key verification for Remote.
	InsecureHostKey bool

	// Doctor prints the reasons fields failed instead of the readout.
	Doctor bool
	// Export writes every readout as "yaml" or "json".
	Export string

	// Stdout receives the output. Nil means os.Stdout.
	Stdout io.Writer

	// Logger receives diagnostics. Nil means DefaultLogger().
	Logger *slog.Logger

	// Platform replaces the backend set chosen for the running OS.
	Platform platform.Platform
}

// apply merges o into cfg.
func (o Options) apply(cfg *config.Config) error {
	if len(o.Show) > 0 {
		cfg.Show = o.Show
	}
	cfg.Hide = append(cfg.Hide, o.Hide...)

	cfg.ShortShell = cfg.ShortShell || o.ShortShell
	cfg.ShortUptime = cfg.ShortUptime || o.ShortUptime
	cfg.Bar = cfg.Bar || o.Bar

	if o.Interface != "" {
		cfg.Interface = o.Interface
	}
	if o.Timeout != 0 {
		cfg.ProbeTimeout = o.Timeout
	}

	if o.Remote != "" {
		remote, err := config.ParseRemoteTarget(o.Remote)
		if err != nil {
			return err
		}
		if cfg.Remote != nil {
			remote.KnownHosts = cfg.Remote.KnownHosts
			remote.Identity = cfg.Remote.Identity
			remote.Insecure = cfg.Remote.Insecure
		}
		cfg.Remote = remote
	}
	if cfg.Remote != nil {
		if o.Identity != "" {
			cfg.Remote.Identity = o.Identity
		}
		cfg.Remote.Insecure = cfg.Remote.Insecure || o.InsecureHostKey
	}
	return nil
}
