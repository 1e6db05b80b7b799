package platform

import (
	"context"
	"time"
)

// Platform bundles one backend per capability for a single target OS.
// Accessors that a backend does not support return ErrMetricNotAvailable.
type Platform interface {
	// Name returns the platform identifier (e.g., "linux", "windows", "darwin", "remote-linux").
	Name() string

	// Initialize prepares the backends for data collection.
	// Absence of a resource never fails initialization; it surfaces later
	// as MetricNotAvailable from the affected accessor.
	Initialize(ctx context.Context) error

	// Close releases cached OS handles (X11 connection, D-Bus, SSH client).
	Close() error

	Battery() BatteryReadout
	Kernel() KernelReadout
	Memory() MemoryReadout
	Product() ProductReadout
	Packages() PackageReadout
	General() GeneralReadout
}

// BatteryReadout exposes battery facts.
type BatteryReadout interface {
	// Percentage returns the charge level, 0-100.
	Percentage(ctx context.Context) (uint8, error)

	// Status returns whether the battery is charging or discharging.
	Status(ctx context.Context) (BatteryState, error)

	// Health returns the full-charge capacity relative to the design capacity, 0-100.
	Health(ctx context.Context) (uint8, error)
}

// KernelReadout exposes kernel identity facts.
type KernelReadout interface {
	// OSRelease returns the kernel release string (e.g., "6.1.0-13-amd64").
	OSRelease(ctx context.Context) (string, error)

	// OSType returns the kernel name (e.g., "Linux", "Darwin").
	OSType(ctx context.Context) (string, error)

	// PrettyKernel returns "<type> <release>".
	PrettyKernel(ctx context.Context) (string, error)
}

// MemoryReadout exposes physical memory facts. All values are in KiB.
type MemoryReadout interface {
	Total(ctx context.Context) (uint64, error)
	Free(ctx context.Context) (uint64, error)
	Buffers(ctx context.Context) (uint64, error)
	Cached(ctx context.Context) (uint64, error)
	Reclaimable(ctx context.Context) (uint64, error)

	// Used returns memory in use, computed the way the platform defines it.
	Used(ctx context.Context) (uint64, error)
}

// ProductReadout exposes the machine's identity as reported by firmware.
type ProductReadout interface {
	Vendor(ctx context.Context) (string, error)
	Family(ctx context.Context) (string, error)
	Name(ctx context.Context) (string, error)
	Version(ctx context.Context) (string, error)
}

// PackageReadout counts installed packages.
type PackageReadout interface {
	// Count probes the platform's package managers in priority order and
	// returns the count reported by the first one found.
	Count(ctx context.Context) (PackageCount, error)
}

// GeneralReadout exposes identity, session and miscellaneous facts.
type GeneralReadout interface {
	Username(ctx context.Context) (string, error)
	Hostname(ctx context.Context) (string, error)
	Distribution(ctx context.Context) (string, error)
	OperatingSystem(ctx context.Context) (string, error)
	DesktopEnvironment(ctx context.Context) (string, error)

	// SessionType returns the display session type (e.g., "x11", "wayland").
	SessionType(ctx context.Context) (string, error)
	WindowManager(ctx context.Context) (string, error)

	// Shell returns the parent process; short selects the command name over the full path.
	Shell(ctx context.Context, short bool) (string, error)

	// Terminal returns the grandparent process; short selects the command name over the full path.
	Terminal(ctx context.Context, short bool) (string, error)

	CPUModelName(ctx context.Context) (string, error)
	CPUCores(ctx context.Context) (int, error)

	// CPUUsage returns the processor load as a percentage, 0-100.
	CPUUsage(ctx context.Context) (int, error)
	Uptime(ctx context.Context) (time.Duration, error)

	// LocalIP returns the IPv4 address of iface, or of the first
	// non-loopback interface when iface is empty.
	LocalIP(ctx context.Context, iface string) (string, error)

	// Backlight returns the display brightness as a percentage, 0-100.
	Backlight(ctx context.Context) (int, error)

	// Resolution returns the resolution of every active display, comma separated.
	Resolution(ctx context.Context) (string, error)
}

// BatteryState is the charging state of a battery.
type BatteryState int

const (
	BatteryUnknown BatteryState = iota
	BatteryCharging
	BatteryDischarging
	BatteryFull
)

// String returns the display form of the state.
func (s BatteryState) String() string {
	switch s {
	case BatteryCharging:
		return "Charging"
	case BatteryDischarging:
		return "Discharging"
	case BatteryFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// ParseBatteryState maps a sysfs/pmset style status word to a BatteryState.
func ParseBatteryState(s string) BatteryState {
	switch normalizeWord(s) {
	case "charging", "ac attached":
		return BatteryCharging
	case "discharging":
		return BatteryDischarging
	case "full", "charged":
		return BatteryFull
	default:
		return BatteryUnknown
	}
}

// PackageCount is the number of packages reported by one package manager.
type PackageCount struct {
	Manager string
	Count   int
}

// RemoteConfig specifies connection parameters for remote readouts.
type RemoteConfig struct {
	// Host is the hostname or IP address of the remote system.
	Host string

	// Port is the SSH port (default: 22).
	Port int

	// User is the SSH username.
	User string

	// AuthMethod specifies how to authenticate.
	AuthMethod AuthMethod

	// KnownHostsPath is the known_hosts file used for host key verification.
	// Defaults to ~/.ssh/known_hosts.
	KnownHostsPath string

	// InsecureIgnoreHostKey disables host key verification.
	InsecureIgnoreHostKey bool

	// ConnectTimeout bounds the SSH handshake (default: 10s).
	ConnectTimeout time.Duration

	// ProbeTimeout bounds every remote command (default: DefaultProbeTimeout).
	ProbeTimeout time.Duration
}

// AuthMethod defines SSH authentication methods.
type AuthMethod interface {
	isAuthMethod()
}

// PasswordAuth authenticates using a password.
type PasswordAuth struct {
	Password string
}

func (PasswordAuth) isAuthMethod() {}

// KeyAuth authenticates using an SSH private key.
type KeyAuth struct {
	PrivateKeyPath string
	Passphrase     string // optional, for encrypted keys
}

func (KeyAuth) isAuthMethod() {}

// AgentAuth authenticates using the SSH agent.
type AgentAuth struct{}

func (AgentAuth) isAuthMethod() {}
