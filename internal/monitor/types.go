// Package monitor resolves a requested set of fields against a
// platform.Platform and returns one Readout per field.
//
// Failures are isolated per field: a field that cannot be read produces a
// Readout carrying its *platform.ReadoutError, and evaluation continues with
// the next requested field.
package monitor

import (
	"fmt"
	"strings"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// FieldKey identifies one displayable fact.
type FieldKey int

const (
	Host FieldKey = iota
	Machine
	Kernel
	Distribution
	OperatingSystem
	DesktopEnvironment
	WindowManager
	Packages
	Shell
	Terminal
	Uptime
	Processor
	ProcessorLoad
	Memory
	Battery
	LocalIP
	Backlight
	Resolution

	fieldCount
)

var fieldNames = [fieldCount]string{
	Host:               "host",
	Machine:            "machine",
	Kernel:             "kernel",
	Distribution:       "distribution",
	OperatingSystem:    "operating_system",
	DesktopEnvironment: "desktop_environment",
	WindowManager:      "window_manager",
	Packages:           "packages",
	Shell:              "shell",
	Terminal:           "terminal",
	Uptime:             "uptime",
	Processor:          "processor",
	ProcessorLoad:      "processor_load",
	Memory:             "memory",
	Battery:            "battery",
	LocalIP:            "local_ip",
	Backlight:          "backlight",
	Resolution:         "resolution",
}

var fieldLabels = [fieldCount]string{
	Host:               "Host",
	Machine:            "Machine",
	Kernel:             "Kernel",
	Distribution:       "Distro",
	OperatingSystem:    "OS",
	DesktopEnvironment: "DE",
	WindowManager:      "WM",
	Packages:           "Packages",
	Shell:              "Shell",
	Terminal:           "Terminal",
	Uptime:             "Uptime",
	Processor:          "CPU",
	ProcessorLoad:      "CPU Load",
	Memory:             "Memory",
	Battery:            "Battery",
	LocalIP:            "Local IP",
	Backlight:          "Brightness",
	Resolution:         "Resolution",
}

// AllFields returns every field in the default display order.
func AllFields() []FieldKey {
	keys := make([]FieldKey, fieldCount)
	for i := range keys {
		keys[i] = FieldKey(i)
	}
	return keys
}

// String returns the stable configuration name, e.g. "desktop_environment".
func (k FieldKey) String() string {
	if k < 0 || k >= fieldCount {
		return fmt.Sprintf("field(%d)", int(k))
	}
	return fieldNames[k]
}

// Label returns the display label.
func (k FieldKey) Label() string {
	if k < 0 || k >= fieldCount {
		return k.String()
	}
	return fieldLabels[k]
}

// HasGauge reports whether the field carries a 0-10 gauge bucket.
func (k FieldKey) HasGauge() bool {
	switch k {
	case Battery, Backlight, ProcessorLoad, Memory:
		return true
	default:
		return false
	}
}

// ParseFieldKey parses a field name. Matching ignores case and accepts
// "-", "_" or no separator between words.
func ParseFieldKey(name string) (FieldKey, error) {
	want := normalizeFieldName(name)
	for i, n := range fieldNames {
		if normalizeFieldName(n) == want {
			return FieldKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown readout %q", name)
}

func normalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// MarshalText encodes the key as its configuration name.
func (k FieldKey) MarshalText() ([]byte, error) {
	if k < 0 || k >= fieldCount {
		return nil, fmt.Errorf("invalid field key %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a configuration name.
func (k *FieldKey) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Readout is the result of one field. Err == nil means Value is valid.
type Readout struct {
	Key   FieldKey
	Value string
	// Gauge is the 0-10 bucket of gauge fields, 0 otherwise.
	Gauge int
	Err   *platform.ReadoutError
}

// OK reports whether the readout succeeded.
func (r Readout) OK() bool {
	return r.Err == nil
}

func success(key FieldKey, value string) Readout {
	return Readout{Key: key, Value: value}
}

func gauge(key FieldKey, value string, percent int) Readout {
	return Readout{Key: key, Value: value, Gauge: Bucket(percent)}
}

func failure(key FieldKey, err error) Readout {
	return Readout{Key: key, Err: platform.AsReadoutError(err)}
}
