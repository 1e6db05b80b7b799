//go:build darwin || netbsd

package platform

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// unixSysctl implements sysctlReader with the sysctl(3) interface.
type unixSysctl struct{}

func (unixSysctl) String(name string) (string, error) {
	return unix.Sysctl(name)
}

// Uint64 accepts both 32 and 64 bit integer nodes.
func (unixSysctl) Uint64(name string) (uint64, error) {
	if v, err := unix.SysctlUint64(name); err == nil {
		return v, nil
	}
	v, err := unix.SysctlUint32(name)
	if err != nil {
		return 0, err
	}
	return uint64(v), nil
}

// LoadAverage decodes struct loadavg { fixpt_t ldavg[3]; long fscale; }.
func (unixSysctl) LoadAverage() (float64, error) {
	raw, err := unix.SysctlRaw("vm.loadavg")
	if err != nil {
		return 0, err
	}
	var scale float64
	switch {
	case len(raw) >= 24:
		scale = float64(binary.NativeEndian.Uint64(raw[16:24]))
	case len(raw) >= 16:
		scale = float64(binary.NativeEndian.Uint32(raw[12:16]))
	default:
		return 0, fmt.Errorf("vm.loadavg: unexpected size %d", len(raw))
	}
	if scale == 0 {
		return 0, fmt.Errorf("vm.loadavg: zero fscale")
	}
	return float64(binary.NativeEndian.Uint32(raw[0:4])) / scale, nil
}

func (unixSysctl) BootTime() (time.Time, error) {
	tv, err := unix.SysctlTimeval("kern.boottime")
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(tv.Unix()), nil
}
