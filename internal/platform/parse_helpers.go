package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// lookupKeyValue scans "Key: value" lines and returns the value of the first
// line whose key equals key. It is used for /proc/meminfo, /proc/cpuinfo and
// similar colon separated tables.
func lookupKeyValue(data []byte, key string) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == key {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// parseMeminfoValue extracts a "Key:   1234 kB" entry from meminfo-style text
// and returns its value in KiB.
func parseMeminfoValue(data []byte, key string) (uint64, error) {
	raw, ok := lookupKeyValue(data, key)
	if !ok {
		return 0, NotAvailable(key + " is not reported")
	}
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "kB"))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, Other("malformed "+key+" value", err)
	}
	return value, nil
}

// UsedMemory computes memory in use from meminfo-style counters (all in KiB).
// Reclaimable slab memory is only subtracted when it is reported (non-zero).
// The result saturates at zero rather than wrapping.
func UsedMemory(total, free, cached, buffers, reclaimable uint64) uint64 {
	used := saturatingSub(total, free)
	used = saturatingSub(used, cached)
	used = saturatingSub(used, buffers)
	if reclaimable != 0 {
		used = saturatingSub(used, reclaimable)
	}
	return used
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// parseOSRelease parses os-release(5) KEY=value lines, removing quotes.
// Comments and malformed lines are skipped.
func parseOSRelease(data []byte) map[string]string {
	info := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if val == "" {
			continue
		}
		info[strings.TrimSpace(key)] = val
	}
	return info
}

// countLines counts non-empty lines of output accepted by keep.
// A nil keep accepts every non-empty line.
func countLines(output []byte, keep func(line string) bool) int {
	count := 0
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if keep == nil || keep(line) {
			count++
		}
	}
	return count
}

// firstLine returns the first non-empty, trimmed line of output.
func firstLine(output []byte) string {
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// parseCPUModel extracts the processor model from /proc/cpuinfo text.
// x86 reports "model name"; many ARM kernels use "Hardware" or "Model" instead.
func parseCPUModel(data []byte) (string, bool) {
	for _, key := range []string{"model name", "Hardware", "Model", "cpu model", "Processor"} {
		if v, ok := lookupKeyValue(data, key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// parseCPUCount counts "processor" entries in /proc/cpuinfo text.
func parseCPUCount(data []byte) int {
	return countLines(data, func(line string) bool {
		k, _, ok := strings.Cut(line, ":")
		return ok && strings.TrimSpace(k) == "processor"
	})
}

// parseLoadAverage parses the output of /proc/loadavg and returns the 1 minute load.
func parseLoadAverage(output string) (float64, error) {
	fields := strings.Fields(output)
	if len(fields) < 1 {
		return 0, fmt.Errorf("unexpected loadavg format: %q", output)
	}
	load1, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse 1min load: %w", err)
	}
	return load1, nil
}

// parseUptimeSeconds parses the first field of /proc/uptime.
func parseUptimeSeconds(output string) (float64, error) {
	fields := strings.Fields(output)
	if len(fields) < 1 {
		return 0, fmt.Errorf("unexpected uptime format: %q", output)
	}
	return strconv.ParseFloat(fields[0], 64)
}

// loadPercent converts a 1 minute load average into a processor load
// percentage over cores, clamped to 0-100.
func loadPercent(load1 float64, cores int) int {
	if cores <= 0 {
		cores = 1
	}
	return clampPercent(load1 / float64(cores) * 100)
}

// clampPercent rounds v and clamps it to 0-100.
func clampPercent(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// percentOf returns part/whole as a clamped percentage.
func percentOf(part, whole uint64) int {
	if whole == 0 {
		return 0
	}
	return clampPercent(float64(part) / float64(whole) * 100)
}
