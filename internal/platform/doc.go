// Package platform defines the capability contracts sysfetch reads host facts
// through, and the per-OS backends that satisfy them.
//
// # Architecture
//
// A Platform bundles one readout per capability: Battery, Kernel, Memory,
// Product, Packages and General. Each build target compiles exactly one
// backend set, chosen by NewPlatform through build-tagged factory files.
// Backends embed the Unsupported* defaults and override what the OS can
// answer, so every accessor exists on every platform.
//
// Every accessor returns either a value or a *ReadoutError whose Kind is one
// of MetricNotAvailable, Warning, BackendError or Other. Native failures are
// mapped once, at the backend boundary, by FromOSError and FromProbeError.
//
// Readers that only need files and external utilities are written against
// Source, which is implemented for the running host and for a remote host
// reached over SSH. The same Linux readers therefore serve NewPlatform on
// Linux and NewRemotePlatform.
//
// # Usage
//
//	p, err := platform.NewPlatform(platform.WithProbeTimeout(time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	if err := p.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	kernel, err := p.Kernel().PrettyKernel(ctx)
//	if errors.Is(err, platform.ErrMetricNotAvailable) {
//	    // not reported on this host
//	}
//
// # Thread Safety
//
// Platform values are safe for concurrent use. Cached OS handles (the X11
// connection, the logind bus, the SSH client) are opened lazily under a
// mutex and released by Close.
package platform
