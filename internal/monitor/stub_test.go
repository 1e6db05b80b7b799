package monitor

import (
	"context"
	"time"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// stubPlatform serves fixed values. Zero-valued fields report
// ErrMetricNotAvailable, errs overrides individual accessors by name.
type stubPlatform struct {
	general  *stubGeneral
	battery  *stubBattery
	memory   *stubMemory
	product  *stubProduct
	packages *stubPackages
	kernel   string
}

func (p *stubPlatform) Name() string                     { return "stub" }
func (p *stubPlatform) Initialize(context.Context) error { return nil }
func (p *stubPlatform) Close() error                     { return nil }

func (p *stubPlatform) Battery() platform.BatteryReadout {
	if p.battery == nil {
		return platform.UnsupportedBattery{}
	}
	return p.battery
}

func (p *stubPlatform) Kernel() platform.KernelReadout {
	return stubKernel(p.kernel)
}

func (p *stubPlatform) Memory() platform.MemoryReadout {
	if p.memory == nil {
		return platform.UnsupportedMemory{}
	}
	return p.memory
}

func (p *stubPlatform) Product() platform.ProductReadout {
	if p.product == nil {
		return platform.UnsupportedProduct{}
	}
	return p.product
}

func (p *stubPlatform) Packages() platform.PackageReadout {
	if p.packages == nil {
		return platform.UnsupportedPackages{}
	}
	return p.packages
}

func (p *stubPlatform) General() platform.GeneralReadout {
	if p.general == nil {
		return platform.UnsupportedGeneral{}
	}
	return p.general
}

func orUnavailable(v string) (string, error) {
	if v == "" {
		return "", platform.ErrMetricNotAvailable
	}
	return v, nil
}

type stubKernel string

func (k stubKernel) OSRelease(context.Context) (string, error) { return orUnavailable(string(k)) }
func (k stubKernel) OSType(context.Context) (string, error)    { return orUnavailable(string(k)) }
func (k stubKernel) PrettyKernel(context.Context) (string, error) {
	return orUnavailable(string(k))
}

type stubGeneral struct {
	platform.UnsupportedGeneral

	user, host, distro, osName string
	desktop, session, wm       string
	shell, shellPath, terminal string
	cpuModel, resolution, ip   string
	cores, usage, backlight    int
	uptime                     time.Duration
	errs                       map[string]error
	calls                      map[string]int
}

func (g *stubGeneral) value(name, v string) (string, error) {
	if g.calls == nil {
		g.calls = make(map[string]int)
	}
	g.calls[name]++
	if err, ok := g.errs[name]; ok {
		return "", err
	}
	return orUnavailable(v)
}

func (g *stubGeneral) number(name string, v int) (int, error) {
	if err, ok := g.errs[name]; ok {
		return 0, err
	}
	if v == 0 {
		return 0, platform.ErrMetricNotAvailable
	}
	return v, nil
}

func (g *stubGeneral) Username(context.Context) (string, error) { return g.value("Username", g.user) }
func (g *stubGeneral) Hostname(context.Context) (string, error) { return g.value("Hostname", g.host) }
func (g *stubGeneral) Distribution(context.Context) (string, error) {
	return g.value("Distribution", g.distro)
}
func (g *stubGeneral) OperatingSystem(context.Context) (string, error) {
	return g.value("OperatingSystem", g.osName)
}
func (g *stubGeneral) DesktopEnvironment(context.Context) (string, error) {
	return g.value("DesktopEnvironment", g.desktop)
}
func (g *stubGeneral) SessionType(context.Context) (string, error) {
	return g.value("SessionType", g.session)
}
func (g *stubGeneral) WindowManager(context.Context) (string, error) {
	return g.value("WindowManager", g.wm)
}
func (g *stubGeneral) Shell(_ context.Context, short bool) (string, error) {
	if short {
		return g.value("Shell", g.shell)
	}
	return g.value("Shell", g.shellPath)
}
func (g *stubGeneral) Terminal(context.Context, bool) (string, error) {
	return g.value("Terminal", g.terminal)
}
func (g *stubGeneral) CPUModelName(context.Context) (string, error) {
	return g.value("CPUModelName", g.cpuModel)
}
func (g *stubGeneral) CPUCores(context.Context) (int, error) { return g.number("CPUCores", g.cores) }
func (g *stubGeneral) CPUUsage(context.Context) (int, error) { return g.number("CPUUsage", g.usage) }
func (g *stubGeneral) Backlight(context.Context) (int, error) {
	return g.number("Backlight", g.backlight)
}
func (g *stubGeneral) Uptime(context.Context) (time.Duration, error) {
	if g.uptime == 0 {
		return 0, platform.ErrMetricNotAvailable
	}
	return g.uptime, nil
}
func (g *stubGeneral) LocalIP(_ context.Context, iface string) (string, error) {
	if iface != "" {
		return g.value("LocalIP", iface+":"+g.ip)
	}
	return g.value("LocalIP", g.ip)
}
func (g *stubGeneral) Resolution(context.Context) (string, error) {
	return g.value("Resolution", g.resolution)
}

type stubBattery struct {
	platform.UnsupportedBattery
	percent uint8
	state   platform.BatteryState
	err     error
}

func (b *stubBattery) Percentage(context.Context) (uint8, error) { return b.percent, b.err }
func (b *stubBattery) Status(context.Context) (platform.BatteryState, error) {
	return b.state, nil
}

type stubMemory struct {
	platform.UnsupportedMemory
	total, used uint64
}

func (m *stubMemory) Total(context.Context) (uint64, error) { return m.total, nil }
func (m *stubMemory) Used(context.Context) (uint64, error)  { return m.used, nil }

type stubProduct struct {
	vendor, family, name, version string
}

func (p *stubProduct) Vendor(context.Context) (string, error)  { return orUnavailable(p.vendor) }
func (p *stubProduct) Family(context.Context) (string, error)  { return orUnavailable(p.family) }
func (p *stubProduct) Name(context.Context) (string, error)    { return orUnavailable(p.name) }
func (p *stubProduct) Version(context.Context) (string, error) { return orUnavailable(p.version) }

type stubPackages struct {
	count platform.PackageCount
}

func (p *stubPackages) Count(context.Context) (platform.PackageCount, error) { return p.count, nil }
