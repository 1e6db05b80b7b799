//go:build darwin || windows

package platform

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// gopsutilTree implements processTree with gopsutil's process table access.
type gopsutilTree struct {
	pid int32
}

func newGopsutilTree() gopsutilTree {
	return gopsutilTree{pid: int32(os.Getpid())}
}

func (t gopsutilTree) Ancestor(ctx context.Context, hops int) (procInfo, error) {
	pid := t.pid
	for i := 0; i < hops; i++ {
		proc, err := process.NewProcessWithContext(ctx, pid)
		if err != nil {
			return procInfo{}, NotAvailable("process " + strconv.Itoa(int(pid)) + " is gone")
		}
		ppid, err := proc.PpidWithContext(ctx)
		if err != nil {
			return procInfo{}, BackendError("reading parent of process "+strconv.Itoa(int(pid)), err)
		}
		if ppid <= 0 {
			return procInfo{}, NotAvailable("process has no ancestor at this depth")
		}
		pid = ppid
	}

	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return procInfo{}, NotAvailable("process " + strconv.Itoa(int(pid)) + " is gone")
	}
	info := procInfo{}
	if name, err := proc.NameWithContext(ctx); err == nil {
		info.Name = strings.TrimSuffix(name, ".exe")
	}
	if exe, err := proc.ExeWithContext(ctx); err == nil {
		info.Exe = exe
		if info.Name == "" {
			info.Name = strings.TrimSuffix(filepath.Base(exe), ".exe")
		}
	}
	if info.Name == "" {
		return procInfo{}, NotAvailable("process " + strconv.Itoa(int(pid)) + " has no name")
	}
	return info, nil
}
