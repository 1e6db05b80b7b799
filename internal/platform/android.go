//go:build android

package platform

import (
	"context"
	"os"
	"path/filepath"
)

// NewAndroidPlatform creates the Android backend set. Android shares the
// Linux virtual filesystems; device identity comes from system properties.
func NewAndroidPlatform(opts ...Option) Platform {
	o := buildOptions(opts)
	return newReadoutSet("android", func(ctx context.Context) (readouts, error) {
		src := newLocalSource(o)
		props := systemProps{src: src}

		general := newLinuxGeneral(src)
		general.ident = unixIdentity{}
		general.session = envSession{getenv: os.Getenv}
		general.ifaces = hostInterfaces{}
		general.getenv = os.Getenv
		procMount := filepath.Join(o.root, "proc")
		if tree, err := newProcfsTree(procMount, os.Getpid()); err == nil {
			general.procs = tree
		} else {
			o.logger.Debug("procfs unavailable", "mount", procMount, "error", err)
		}

		return readouts{
			battery:  newAndroidBattery(src),
			kernel:   newLinuxKernel(src),
			memory:   newLinuxMemory(src),
			product:  androidProduct{props: props},
			packages: newProbePackages(src, androidPackageManagers),
			general:  androidGeneral{linuxGeneral: general, props: props},
		}, nil
	})
}
