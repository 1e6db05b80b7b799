//go:build linux && !android

package platform

import (
	"context"
	"os"
	"path/filepath"
)

// NewLinuxPlatform creates the Linux backend set.
func NewLinuxPlatform(opts ...Option) Platform {
	o := buildOptions(opts)
	return newReadoutSet("linux", func(ctx context.Context) (readouts, error) {
		return buildLinuxReadouts(o), nil
	})
}

func buildLinuxReadouts(o *options) readouts {
	src := newLocalSource(o)

	logind := newLogindSession(os.Getenv)
	session := chainSession{logind, envSession{getenv: os.Getenv}}
	x11 := newX11Display()
	disp := &linuxDisplay{x11: x11, session: session}

	general := newLinuxGeneral(src)
	general.ident = unixIdentity{}
	general.session = session
	general.ifaces = hostInterfaces{}
	general.getenv = os.Getenv
	general.disp = disp

	procMount := filepath.Join(o.root, "proc")
	if tree, err := newProcfsTree(procMount, os.Getpid()); err == nil {
		general.procs = tree
		disp.compositor = procfsCompositor{fs: tree.fs}
	} else {
		o.logger.Debug("procfs unavailable", "mount", procMount, "error", err)
	}

	return readouts{
		battery:  newLinuxBattery(src),
		kernel:   newLinuxKernel(src),
		memory:   newLinuxMemory(src),
		product:  newLinuxProduct(src),
		packages: newProbePackages(src, linuxPackageManagers),
		general:  general,
		closers:  []func() error{x11.Close, logind.Close},
	}
}
