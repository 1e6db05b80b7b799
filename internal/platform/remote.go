package platform

import (
	"context"
	"fmt"
	"strings"
)

// newSSHPlatform validates config and returns a Platform that connects on
// Initialize.
func newSSHPlatform(config RemoteConfig, o *options) (Platform, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid remote config: %w", err)
	}

	return newReadoutSet("remote-linux", func(ctx context.Context) (readouts, error) {
		client, err := dialSSH(ctx, config)
		if err != nil {
			return readouts{}, err
		}
		o.logger.Debug("connected", "host", config.address(), "user", config.User)

		src := newRemoteSource(&sshRunner{client: client, timeout: config.ProbeTimeout}, o.logger)
		if err := checkRemoteOS(ctx, src); err != nil {
			client.Close()
			return readouts{}, err
		}
		r := buildRemoteReadouts(src)
		r.closers = append(r.closers, client.Close)
		return r, nil
	}), nil
}

// checkRemoteOS makes sure the Linux readers apply to the remote host.
func checkRemoteOS(ctx context.Context, src Source) error {
	out, err := src.Run(ctx, "uname", "-s")
	if err != nil {
		return fmt.Errorf("failed to detect remote OS: %w", err)
	}
	if kernel := firstLine(out); !strings.EqualFold(kernel, "linux") {
		return fmt.Errorf("unsupported remote OS %q", kernel)
	}
	return nil
}

// buildRemoteReadouts assembles the Linux readers over a remote source.
func buildRemoteReadouts(src Source) readouts {
	general := newLinuxGeneral(src)
	general.ident = probeIdentity{src: src}
	general.ifaces = probeInterfaces{src: src}

	return readouts{
		battery:  newLinuxBattery(src),
		kernel:   newLinuxKernel(src),
		memory:   newLinuxMemory(src),
		product:  newLinuxProduct(src),
		packages: newProbePackages(src, linuxPackageManagers),
		general:  remoteGeneral{linuxGeneral: general},
	}
}

// remoteGeneral reports the facts that only make sense for the local
// session as not available.
type remoteGeneral struct {
	*linuxGeneral
}

func (remoteGeneral) Backlight(context.Context) (int, error) {
	return 0, NotAvailable("backlight is not read on remote hosts")
}
