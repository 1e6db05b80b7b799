//go:build linux

package platform

import (
	"context"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
)

// procfsTree implements processTree by following PPid links in procfs.
type procfsTree struct {
	fs  procfs.FS
	pid int
}

// newProcfsTree walks ancestors of pid using the procfs mounted at mount.
func newProcfsTree(mount string, pid int) (*procfsTree, error) {
	fs, err := procfs.NewFS(mount)
	if err != nil {
		return nil, err
	}
	return &procfsTree{fs: fs, pid: pid}, nil
}

func (t *procfsTree) Ancestor(ctx context.Context, hops int) (procInfo, error) {
	pid := t.pid
	for i := 0; i < hops; i++ {
		if err := ctx.Err(); err != nil {
			return procInfo{}, BackendError("walking process tree", err)
		}
		proc, err := t.fs.Proc(pid)
		if err != nil {
			return procInfo{}, FromOSError("process "+strconv.Itoa(pid), err)
		}
		stat, err := proc.Stat()
		if err != nil {
			return procInfo{}, FromOSError("stat of process "+strconv.Itoa(pid), err)
		}
		if stat.PPID <= 0 {
			return procInfo{}, NotAvailable("process has no ancestor at this depth")
		}
		pid = stat.PPID
	}

	proc, err := t.fs.Proc(pid)
	if err != nil {
		return procInfo{}, FromOSError("process "+strconv.Itoa(pid), err)
	}
	info := procInfo{}
	if comm, err := proc.Comm(); err == nil {
		info.Name = strings.TrimSpace(comm)
	}
	// The executable link is unreadable for processes owned by other users.
	if exe, err := proc.Executable(); err == nil {
		info.Exe = exe
	}
	if info.Name == "" && info.Exe == "" {
		return procInfo{}, NotAvailable("process " + strconv.Itoa(pid) + " has no name")
	}
	return info, nil
}

// waylandCompositors are process names of common Wayland compositors mapped
// to their display names.
var waylandCompositors = map[string]string{
	"sway":         "Sway",
	"hyprland":     "Hyprland",
	"wayfire":      "Wayfire",
	"river":        "River",
	"kwin_wayland": "KWin",
	"gnome-shell":  "Mutter",
	"mutter":       "Mutter",
	"weston":       "Weston",
	"labwc":        "labwc",
	"niri":         "niri",
}

// procfsCompositor finds a running Wayland compositor by scanning procfs.
type procfsCompositor struct {
	fs procfs.FS
}

func (c procfsCompositor) WindowManager(ctx context.Context) (string, error) {
	procs, err := c.fs.AllProcs()
	if err != nil {
		return "", FromOSError("process list", err)
	}
	for _, proc := range procs {
		if ctx.Err() != nil {
			return "", BackendError("scanning processes", ctx.Err())
		}
		comm, err := proc.Comm()
		if err != nil {
			continue
		}
		if name, ok := waylandCompositors[strings.ToLower(strings.TrimSpace(comm))]; ok {
			return name, nil
		}
	}
	return "", NotAvailable("no known Wayland compositor is running")
}
