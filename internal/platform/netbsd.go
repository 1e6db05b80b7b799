//go:build netbsd

package platform

import (
	"context"
	"os"
)

// NewNetBSDPlatform creates the NetBSD backend set.
func NewNetBSDPlatform(opts ...Option) Platform {
	o := buildOptions(opts)
	return newReadoutSet("netbsd", func(ctx context.Context) (readouts, error) {
		src := newLocalSource(o)
		sysctl := unixSysctl{}
		x11 := newX11Display()

		general := netbsdGeneral{
			sysctlGeneral: &sysctlGeneral{
				sysctl:   sysctl,
				ident:    unixIdentity{},
				procs:    psTree{src: src, pid: os.Getpid()},
				ifaces:   hostInterfaces{},
				modelKey: "machdep.cpu_brand",
				coresKey: "hw.ncpuonline",
			},
			disp:   x11,
			getenv: os.Getenv,
		}

		return readouts{
			battery: envstatBatteryReadout{src: src, device: "acpibat0"},
			kernel:  unameKernel{},
			memory:  &meminfoMemory{src: src, path: "/proc/meminfo", freeOnly: true},
			product: sysctlProduct{
				sysctl:      sysctl,
				vendor:      "machdep.dmi.system-vendor",
				name:        "machdep.dmi.system-product",
				versionName: "machdep.dmi.system-version",
			},
			packages: newProbePackages(src, netbsdPackageManagers),
			general:  general,
			closers:  []func() error{x11.Close},
		}, nil
	})
}
