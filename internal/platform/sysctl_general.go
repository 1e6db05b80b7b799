package platform

import (
	"context"
	"strings"
	"time"
)

// sysctlReader reads kernel state by sysctl name.
type sysctlReader interface {
	String(name string) (string, error)
	Uint64(name string) (uint64, error)
	// LoadAverage returns the 1 minute load average (vm.loadavg).
	LoadAverage() (float64, error)
	// BootTime returns kern.boottime.
	BootTime() (time.Time, error)
}

// sysctlGeneral holds the GeneralReadout accessors shared by the BSD-derived
// backends. Platform-specific facts are layered on top by embedding.
type sysctlGeneral struct {
	UnsupportedGeneral

	sysctl   sysctlReader
	ident    identityLookup
	procs    processTree
	ifaces   interfaceLister
	modelKey string
	coresKey string
	now      func() time.Time
}

func (g *sysctlGeneral) Username(ctx context.Context) (string, error) {
	if g.ident == nil {
		return "", NotAvailable("user lookup is not available")
	}
	return g.ident.Username(ctx)
}

func (g *sysctlGeneral) Hostname(ctx context.Context) (string, error) {
	if g.ident != nil {
		if name, err := g.ident.Hostname(ctx); err == nil {
			return name, nil
		}
	}
	return g.sysctlString("kern.hostname")
}

func (g *sysctlGeneral) sysctlString(name string) (string, error) {
	v, err := g.sysctl.String(name)
	if err != nil {
		return "", FromOSError("sysctl "+name, err)
	}
	v = strings.TrimSpace(strings.TrimRight(v, "\x00"))
	if v == "" {
		return "", NotAvailable("sysctl " + name + " is empty")
	}
	return v, nil
}

func (g *sysctlGeneral) Shell(ctx context.Context, short bool) (string, error) {
	return processAncestor(ctx, g.procs, 1, short)
}

func (g *sysctlGeneral) Terminal(ctx context.Context, short bool) (string, error) {
	return processAncestor(ctx, g.procs, 2, short)
}

func (g *sysctlGeneral) CPUModelName(context.Context) (string, error) {
	return g.sysctlString(g.modelKey)
}

func (g *sysctlGeneral) CPUCores(context.Context) (int, error) {
	n, err := g.sysctl.Uint64(g.coresKey)
	if err != nil {
		return 0, FromOSError("sysctl "+g.coresKey, err)
	}
	if n == 0 {
		return 0, NotAvailable("sysctl " + g.coresKey + " reports no processors")
	}
	return int(n), nil
}

func (g *sysctlGeneral) CPUUsage(ctx context.Context) (int, error) {
	load1, err := g.sysctl.LoadAverage()
	if err != nil {
		return 0, FromOSError("sysctl vm.loadavg", err)
	}
	cores, err := g.CPUCores(ctx)
	if err != nil {
		return 0, err
	}
	return loadPercent(load1, cores), nil
}

func (g *sysctlGeneral) Uptime(context.Context) (time.Duration, error) {
	boot, err := g.sysctl.BootTime()
	if err != nil {
		return 0, FromOSError("sysctl kern.boottime", err)
	}
	now := time.Now
	if g.now != nil {
		now = g.now
	}
	up := now().Sub(boot).Truncate(time.Second)
	if up < 0 {
		return 0, Other("boot time is in the future", nil)
	}
	return up, nil
}

func (g *sysctlGeneral) LocalIP(ctx context.Context, iface string) (string, error) {
	if g.ifaces == nil {
		return "", NotAvailable("interface enumeration is not available")
	}
	list, err := g.ifaces.Interfaces(ctx)
	if err != nil {
		return "", AsReadoutError(err)
	}
	return selectIPv4(list, iface)
}

// sysctlProduct implements ProductReadout from named sysctl nodes. Empty
// names report MetricNotAvailable.
type sysctlProduct struct {
	sysctl                            sysctlReader
	vendor, family, name, versionName string
}

func (p sysctlProduct) read(key string) (string, error) {
	if key == "" {
		return "", ErrMetricNotAvailable
	}
	v, err := p.sysctl.String(key)
	if err != nil {
		return "", FromOSError("sysctl "+key, err)
	}
	if v = strings.TrimSpace(v); v == "" {
		return "", NotAvailable("sysctl " + key + " is empty")
	}
	return v, nil
}

func (p sysctlProduct) Vendor(context.Context) (string, error)  { return p.read(p.vendor) }
func (p sysctlProduct) Family(context.Context) (string, error)  { return p.read(p.family) }
func (p sysctlProduct) Name(context.Context) (string, error)    { return p.read(p.name) }
func (p sysctlProduct) Version(context.Context) (string, error) { return p.read(p.versionName) }
