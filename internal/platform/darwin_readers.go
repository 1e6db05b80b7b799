package platform

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// parsePmsetBattery parses the output of "pmset -g batt".
//
//	Now drawing from 'Battery Power'
//	 -InternalBattery-0 (id=12345678)	95%; discharging; 5:23 remaining present: true
func parsePmsetBattery(output []byte) (uint8, BatteryState, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Now drawing from") || !strings.Contains(line, "InternalBattery") {
			continue
		}
		_, status, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		fields := strings.Split(status, ";")
		pct, err := parsePercentValue(fields[0])
		if err != nil {
			return 0, BatteryUnknown, err
		}
		state := BatteryUnknown
		if len(fields) > 1 {
			state = ParseBatteryState(fields[1])
		}
		return uint8(pct), state, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, BatteryUnknown, Other("reading pmset output", err)
	}
	return 0, BatteryUnknown, NotAvailable("no internal battery")
}

// pmsetBattery implements BatteryReadout with pmset(1) and system_profiler(8).
type pmsetBattery struct {
	src Source
}

func (b pmsetBattery) read(ctx context.Context) (uint8, BatteryState, error) {
	out, err := b.src.Run(ctx, "pmset", "-g", "batt")
	if err != nil {
		return 0, BatteryUnknown, FromProbeError("pmset", err)
	}
	return parsePmsetBattery(out)
}

func (b pmsetBattery) Percentage(ctx context.Context) (uint8, error) {
	pct, _, err := b.read(ctx)
	return pct, err
}

func (b pmsetBattery) Status(ctx context.Context) (BatteryState, error) {
	_, state, err := b.read(ctx)
	return state, err
}

// Health reads "Maximum Capacity" from the power report.
func (b pmsetBattery) Health(ctx context.Context) (uint8, error) {
	out, err := b.src.Run(ctx, "system_profiler", "SPPowerDataType")
	if err != nil {
		return 0, FromProbeError("system_profiler", err)
	}
	raw, ok := lookupKeyValue(out, "Maximum Capacity")
	if !ok {
		return 0, NotAvailable("power report has no maximum capacity")
	}
	pct, err := parsePercentValue(raw)
	if err != nil {
		return 0, err
	}
	return uint8(pct), nil
}

var vmStatPageSize = regexp.MustCompile(`page size of (\d+) bytes`)

// parseVMStat parses vm_stat(1) output into page counts keyed by label, and
// returns the page size from the header.
func parseVMStat(output []byte) (map[string]uint64, uint64, error) {
	pageSize := uint64(4096)
	if m := vmStatPageSize.FindSubmatch(output); m != nil {
		if v, err := strconv.ParseUint(string(m[1]), 10, 64); err == nil {
			pageSize = v
		}
	}
	pages := make(map[string]uint64)
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		key, val, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		val = strings.TrimSuffix(strings.TrimSpace(val), ".")
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			continue
		}
		pages[strings.TrimSpace(key)] = n
	}
	if len(pages) == 0 {
		return nil, 0, Other("vm_stat printed no page counts", nil)
	}
	return pages, pageSize, nil
}

// vmStatMemory implements MemoryReadout with vm_stat(1). Total comes from
// hw.memsize since vm_stat does not report it.
type vmStatMemory struct {
	UnsupportedMemory
	src   Source
	total func() (uint64, error)
}

func (m vmStatMemory) pagesKiB(ctx context.Context, labels ...string) (uint64, error) {
	out, err := m.src.Run(ctx, "vm_stat")
	if err != nil {
		return 0, FromProbeError("vm_stat", err)
	}
	pages, pageSize, err := parseVMStat(out)
	if err != nil {
		return 0, err
	}
	var sum uint64
	for _, label := range labels {
		n, ok := pages[label]
		if !ok {
			return 0, NotAvailable(fmt.Sprintf("vm_stat has no %q", label))
		}
		sum += n
	}
	return sum * pageSize / 1024, nil
}

func (m vmStatMemory) Total(context.Context) (uint64, error) {
	bytes, err := m.total()
	if err != nil {
		return 0, FromOSError("sysctl hw.memsize", err)
	}
	return bytes / 1024, nil
}

func (m vmStatMemory) Free(ctx context.Context) (uint64, error) {
	return m.pagesKiB(ctx, "Pages free", "Pages speculative")
}

func (m vmStatMemory) Cached(ctx context.Context) (uint64, error) {
	return m.pagesKiB(ctx, "File-backed pages")
}

func (m vmStatMemory) Reclaimable(ctx context.Context) (uint64, error) {
	return m.pagesKiB(ctx, "Pages purgeable")
}

// Used is active + wired + compressed, matching Activity Monitor.
func (m vmStatMemory) Used(ctx context.Context) (uint64, error) {
	return m.pagesKiB(ctx, "Pages active", "Pages wired down", "Pages occupied by compressor")
}

// profilerProduct implements ProductReadout from the hardware overview.
type profilerProduct struct {
	UnsupportedProduct
	src Source
}

func (p profilerProduct) lookup(ctx context.Context, key string) (string, error) {
	out, err := p.src.Run(ctx, "system_profiler", "SPHardwareDataType")
	if err != nil {
		return "", FromProbeError("system_profiler", err)
	}
	v, ok := lookupKeyValue(out, key)
	if !ok || v == "" {
		return "", NotAvailable("hardware overview has no " + key)
	}
	return v, nil
}

func (profilerProduct) Vendor(context.Context) (string, error) {
	return "Apple", nil
}

func (p profilerProduct) Name(ctx context.Context) (string, error) {
	return p.lookup(ctx, "Model Name")
}

func (p profilerProduct) Version(ctx context.Context) (string, error) {
	return p.lookup(ctx, "Model Identifier")
}

var displayResolution = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// parseDisplayResolutions extracts "Resolution:" entries from the
// SPDisplaysDataType report.
func parseDisplayResolutions(output []byte) []string {
	var res []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		key, val, ok := strings.Cut(scanner.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Resolution" {
			continue
		}
		if m := displayResolution.FindStringSubmatch(val); m != nil {
			res = append(res, m[1]+"x"+m[2])
		}
	}
	return res
}

// darwinGeneral adds the macOS-specific facts to the sysctl readers.
type darwinGeneral struct {
	*sysctlGeneral
	src Source
}

func (g darwinGeneral) OperatingSystem(ctx context.Context) (string, error) {
	out, err := g.src.Run(ctx, "sw_vers", "-productVersion")
	if err != nil {
		return "", FromProbeError("sw_vers", err)
	}
	version := firstLine(out)
	if version == "" {
		return "", NotAvailable("sw_vers printed no version")
	}
	return "macOS " + version, nil
}

func (darwinGeneral) DesktopEnvironment(context.Context) (string, error) {
	return "Aqua", nil
}

func (darwinGeneral) WindowManager(context.Context) (string, error) {
	return "Quartz Compositor", nil
}

func (g darwinGeneral) Resolution(ctx context.Context) (string, error) {
	out, err := g.src.Run(ctx, "system_profiler", "SPDisplaysDataType")
	if err != nil {
		return "", FromProbeError("system_profiler", err)
	}
	res := parseDisplayResolutions(out)
	if len(res) == 0 {
		return "", NotAvailable("no display reported")
	}
	return strings.Join(res, ", "), nil
}
