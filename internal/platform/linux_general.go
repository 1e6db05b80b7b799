package platform

import (
	"context"
	"math"
	"path"
	"strconv"
	"strings"
	"time"
)

// linuxGeneral implements GeneralReadout from procfs, sysfs and os-release.
// The native pieces (identity, process ancestry, display server, session,
// interfaces) are injected so the same readers serve the local host and a
// remote one.
type linuxGeneral struct {
	src     Source
	ident   identityLookup
	procs   processTree
	disp    displayServer
	session sessionLookup
	ifaces  interfaceLister
	getenv  func(string) string

	osReleasePaths []string
}

func newLinuxGeneral(src Source) *linuxGeneral {
	return &linuxGeneral{
		src:            src,
		osReleasePaths: []string{"/etc/os-release", "/usr/lib/os-release"},
	}
}

func (g *linuxGeneral) Username(ctx context.Context) (string, error) {
	if g.ident == nil {
		return "", NotAvailable("user lookup is not available")
	}
	return g.ident.Username(ctx)
}

func (g *linuxGeneral) Hostname(ctx context.Context) (string, error) {
	if g.ident != nil {
		if name, err := g.ident.Hostname(ctx); err == nil {
			return name, nil
		}
	}
	return readString(ctx, g.src, "/proc/sys/kernel/hostname")
}

func (g *linuxGeneral) osRelease(ctx context.Context) (map[string]string, error) {
	p := firstExisting(ctx, g.src, g.osReleasePaths...)
	data, err := g.src.ReadFile(ctx, p)
	if err != nil {
		return nil, FromOSError(p, err)
	}
	return parseOSRelease(data), nil
}

// Distribution returns PRETTY_NAME, or NAME when the pretty form is absent.
func (g *linuxGeneral) Distribution(ctx context.Context) (string, error) {
	info, err := g.osRelease(ctx)
	if err != nil {
		return "", err
	}
	for _, key := range []string{"PRETTY_NAME", "NAME"} {
		if v := info[key]; v != "" {
			return v, nil
		}
	}
	return "", NotAvailable("os-release has no name")
}

// OperatingSystem returns NAME from os-release, falling back to the kernel type.
func (g *linuxGeneral) OperatingSystem(ctx context.Context) (string, error) {
	if info, err := g.osRelease(ctx); err == nil && info["NAME"] != "" {
		return info["NAME"], nil
	}
	return readString(ctx, g.src, "/proc/sys/kernel/ostype")
}

func (g *linuxGeneral) DesktopEnvironment(context.Context) (string, error) {
	return desktopFromEnv(g.getenv)
}

func (g *linuxGeneral) SessionType(ctx context.Context) (string, error) {
	if g.session == nil {
		return "", NotAvailable("session lookup is not available")
	}
	t, err := g.session.SessionType(ctx)
	if err != nil {
		return "", err
	}
	return capitalize(t), nil
}

func (g *linuxGeneral) WindowManager(ctx context.Context) (string, error) {
	if g.disp == nil {
		return "", NotAvailable("no display server")
	}
	return g.disp.WindowManager(ctx)
}

func (g *linuxGeneral) Shell(ctx context.Context, short bool) (string, error) {
	return processAncestor(ctx, g.procs, 1, short)
}

func (g *linuxGeneral) Terminal(ctx context.Context, short bool) (string, error) {
	return processAncestor(ctx, g.procs, 2, short)
}

func (g *linuxGeneral) cpuinfo(ctx context.Context) ([]byte, error) {
	data, err := g.src.ReadFile(ctx, "/proc/cpuinfo")
	if err != nil {
		return nil, FromOSError("/proc/cpuinfo", err)
	}
	return data, nil
}

func (g *linuxGeneral) CPUModelName(ctx context.Context) (string, error) {
	data, err := g.cpuinfo(ctx)
	if err != nil {
		return "", err
	}
	model, ok := parseCPUModel(data)
	if !ok {
		return "", NotAvailable("cpuinfo has no model name")
	}
	return model, nil
}

func (g *linuxGeneral) CPUCores(ctx context.Context) (int, error) {
	data, err := g.cpuinfo(ctx)
	if err != nil {
		return 0, err
	}
	if n := parseCPUCount(data); n > 0 {
		return n, nil
	}
	return 0, NotAvailable("cpuinfo lists no processors")
}

// CPUUsage reports the 1 minute load average relative to the core count.
func (g *linuxGeneral) CPUUsage(ctx context.Context) (int, error) {
	raw, err := readString(ctx, g.src, "/proc/loadavg")
	if err != nil {
		return 0, err
	}
	load1, err := parseLoadAverage(raw)
	if err != nil {
		return 0, Other("malformed /proc/loadavg", err)
	}
	cores, err := g.CPUCores(ctx)
	if err != nil {
		return 0, err
	}
	return loadPercent(load1, cores), nil
}

func (g *linuxGeneral) Uptime(ctx context.Context) (time.Duration, error) {
	raw, err := readString(ctx, g.src, "/proc/uptime")
	if err != nil {
		return 0, err
	}
	secs, err := parseUptimeSeconds(raw)
	if err != nil {
		return 0, Other("malformed /proc/uptime", err)
	}
	return time.Duration(math.Floor(secs)) * time.Second, nil
}

func (g *linuxGeneral) LocalIP(ctx context.Context, iface string) (string, error) {
	if g.ifaces == nil {
		return "", NotAvailable("interface enumeration is not available")
	}
	list, err := g.ifaces.Interfaces(ctx)
	if err != nil {
		return "", AsReadoutError(err)
	}
	return selectIPv4(list, iface)
}

// Backlight reads the first device under /sys/class/backlight.
func (g *linuxGeneral) Backlight(ctx context.Context) (int, error) {
	const dir = "/sys/class/backlight"
	devices, err := g.src.ReadDir(ctx, dir)
	if err != nil {
		return 0, FromOSError(dir, err)
	}
	if len(devices) == 0 {
		return 0, NotAvailable("no backlight device")
	}
	dev := path.Join(dir, devices[0])
	cur, err := readUint(ctx, g.src, path.Join(dev, "brightness"))
	if err != nil {
		return 0, err
	}
	maxBrightness, err := readUint(ctx, g.src, path.Join(dev, "max_brightness"))
	if err != nil {
		return 0, err
	}
	if maxBrightness == 0 {
		return 0, Other("max_brightness is zero", nil)
	}
	return percentOf(cur, maxBrightness), nil
}

// Resolution asks the display server first, then falls back to the mode
// lists of connected DRM connectors.
func (g *linuxGeneral) Resolution(ctx context.Context) (string, error) {
	if g.disp != nil {
		if res, err := g.disp.Resolution(ctx); err == nil {
			return res, nil
		}
	}
	return drmResolution(ctx, g.src)
}

// drmResolution joins the preferred mode of every connected connector.
func drmResolution(ctx context.Context, src Source) (string, error) {
	const dir = "/sys/class/drm"
	entries, err := src.ReadDir(ctx, dir)
	if err != nil {
		return "", FromOSError(dir, err)
	}
	var modes []string
	for _, name := range entries {
		// Connectors are named card<N>-<type>-<index>.
		if !strings.HasPrefix(name, "card") || !strings.Contains(name, "-") {
			continue
		}
		conn := path.Join(dir, name)
		status, err := readString(ctx, src, path.Join(conn, "status"))
		if err != nil || status != "connected" {
			continue
		}
		data, err := src.ReadFile(ctx, path.Join(conn, "modes"))
		if err != nil {
			continue
		}
		if mode := firstLine(data); mode != "" {
			modes = append(modes, mode)
		}
	}
	if len(modes) == 0 {
		return "", NotAvailable("no connected display")
	}
	return strings.Join(modes, ", "), nil
}

// parseIPAddrOutput parses `ip -o -4 addr show` lines into interfaces.
//
//	2: wlan0    inet 192.168.1.20/24 brd 192.168.1.255 scope global dynamic wlan0
func parseIPAddrOutput(out []byte) []netInterface {
	var ifaces []netInterface
	index := make(map[string]int)
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[2] != "inet" {
			continue
		}
		name := strings.TrimSuffix(fields[1], ":")
		i, ok := index[name]
		if !ok {
			i = len(ifaces)
			index[name] = i
			ifaces = append(ifaces, netInterface{Name: name, Loopback: name == "lo" || strings.HasPrefix(fields[3], "127.")})
		}
		ifaces[i].Addrs = append(ifaces[i].Addrs, fields[3])
	}
	return ifaces
}

// probeInterfaces implements interfaceLister with the ip(8) utility.
type probeInterfaces struct {
	src Source
}

func (p probeInterfaces) Interfaces(ctx context.Context) ([]netInterface, error) {
	out, err := p.src.Run(ctx, "ip", "-o", "-4", "addr", "show")
	if err != nil {
		return nil, FromProbeError("ip", err)
	}
	return parseIPAddrOutput(out), nil
}

// probeIdentity implements identityLookup with id(1) and uname(1).
type probeIdentity struct {
	src Source
}

func (p probeIdentity) Username(ctx context.Context) (string, error) {
	return p.firstLineOf(ctx, "id", "-un")
}

func (p probeIdentity) Hostname(ctx context.Context) (string, error) {
	return p.firstLineOf(ctx, "uname", "-n")
}

func (p probeIdentity) firstLineOf(ctx context.Context, name string, args ...string) (string, error) {
	out, err := p.src.Run(ctx, name, args...)
	if err != nil {
		return "", FromProbeError(name, err)
	}
	line := firstLine(out)
	if line == "" {
		return "", NotAvailable(name + " printed nothing")
	}
	return line, nil
}

// parsePercentValue parses "80" or "80%" into a clamped percentage.
func parsePercentValue(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, Other("malformed percentage "+strconv.Quote(s), err)
	}
	return clampPercent(v), nil
}
