package platform

import (
	"context"
)

// systemProps reads Android system properties through getprop(1).
type systemProps struct {
	src Source
}

func (p systemProps) get(ctx context.Context, key string) (string, error) {
	out, err := p.src.Run(ctx, "getprop", key)
	if err != nil {
		return "", FromProbeError("getprop", err)
	}
	value := firstLine(out)
	if value == "" {
		return "", NotAvailable(key + " is not set")
	}
	return value, nil
}

// first returns the first property in keys that is set.
func (p systemProps) first(ctx context.Context, keys ...string) (string, error) {
	var firstErr error
	for _, key := range keys {
		v, err := p.get(ctx, key)
		if err == nil {
			return v, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

func newAndroidBattery(src Source) *sysfsBattery {
	return &sysfsBattery{
		src: src,
		dirs: []string{
			"/sys/class/power_supply/battery",
			"/sys/class/power_supply/bms",
		},
	}
}

// androidProduct implements ProductReadout from build properties.
// Android has no product family; Family reports MetricNotAvailable.
type androidProduct struct {
	UnsupportedProduct
	props systemProps
}

func (p androidProduct) Vendor(ctx context.Context) (string, error) {
	return p.props.first(ctx, "ro.product.manufacturer", "ro.product.brand")
}

func (p androidProduct) Name(ctx context.Context) (string, error) {
	return p.props.first(ctx, "ro.product.model", "ro.product.name")
}

// androidGeneral overrides the Linux readers where Android keeps the fact in
// a system property instead.
type androidGeneral struct {
	*linuxGeneral
	props systemProps
}

func (g androidGeneral) OperatingSystem(ctx context.Context) (string, error) {
	release, err := g.props.get(ctx, "ro.build.version.release")
	if err != nil {
		return "", err
	}
	return "Android " + release, nil
}

func (g androidGeneral) Hostname(ctx context.Context) (string, error) {
	if name, err := g.props.get(ctx, "net.hostname"); err == nil {
		return name, nil
	}
	return g.linuxGeneral.Hostname(ctx)
}

func (g androidGeneral) CPUModelName(ctx context.Context) (string, error) {
	if model, err := g.props.get(ctx, "ro.soc.model"); err == nil {
		return model, nil
	}
	return g.linuxGeneral.CPUModelName(ctx)
}
