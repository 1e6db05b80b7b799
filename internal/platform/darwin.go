//go:build darwin

package platform

import (
	"context"
)

// NewDarwinPlatform creates the macOS backend set.
func NewDarwinPlatform(opts ...Option) Platform {
	o := buildOptions(opts)
	return newReadoutSet("darwin", func(ctx context.Context) (readouts, error) {
		src := newLocalSource(o)
		sysctl := unixSysctl{}

		general := darwinGeneral{
			sysctlGeneral: &sysctlGeneral{
				sysctl:   sysctl,
				ident:    unixIdentity{},
				procs:    newGopsutilTree(),
				ifaces:   hostInterfaces{},
				modelKey: "machdep.cpu.brand_string",
				coresKey: "hw.logicalcpu",
			},
			src: src,
		}

		return readouts{
			battery: pmsetBattery{src: src},
			kernel:  unameKernel{},
			memory: vmStatMemory{
				src:   src,
				total: func() (uint64, error) { return sysctl.Uint64("hw.memsize") },
			},
			product:  profilerProduct{src: src},
			packages: newProbePackages(src, darwinPackageManagers),
			general:  general,
		}, nil
	})
}
