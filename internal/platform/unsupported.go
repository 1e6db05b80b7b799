package platform

import (
	"context"
	"time"
)

// The Unsupported* types implement each contract by returning
// ErrMetricNotAvailable from every accessor. Backends embed them and
// override only the accessors they support.

// UnsupportedBattery is the default BatteryReadout.
type UnsupportedBattery struct{}

func (UnsupportedBattery) Percentage(context.Context) (uint8, error) {
	return 0, ErrMetricNotAvailable
}

func (UnsupportedBattery) Status(context.Context) (BatteryState, error) {
	return BatteryUnknown, ErrMetricNotAvailable
}

func (UnsupportedBattery) Health(context.Context) (uint8, error) {
	return 0, ErrMetricNotAvailable
}

// UnsupportedKernel is the default KernelReadout.
type UnsupportedKernel struct{}

func (UnsupportedKernel) OSRelease(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedKernel) OSType(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedKernel) PrettyKernel(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

// UnsupportedMemory is the default MemoryReadout.
type UnsupportedMemory struct{}

func (UnsupportedMemory) Total(context.Context) (uint64, error)       { return 0, ErrMetricNotAvailable }
func (UnsupportedMemory) Free(context.Context) (uint64, error)        { return 0, ErrMetricNotAvailable }
func (UnsupportedMemory) Buffers(context.Context) (uint64, error)     { return 0, ErrMetricNotAvailable }
func (UnsupportedMemory) Cached(context.Context) (uint64, error)      { return 0, ErrMetricNotAvailable }
func (UnsupportedMemory) Reclaimable(context.Context) (uint64, error) { return 0, ErrMetricNotAvailable }
func (UnsupportedMemory) Used(context.Context) (uint64, error)        { return 0, ErrMetricNotAvailable }

// UnsupportedProduct is the default ProductReadout.
type UnsupportedProduct struct{}

func (UnsupportedProduct) Vendor(context.Context) (string, error)  { return "", ErrMetricNotAvailable }
func (UnsupportedProduct) Family(context.Context) (string, error)  { return "", ErrMetricNotAvailable }
func (UnsupportedProduct) Name(context.Context) (string, error)    { return "", ErrMetricNotAvailable }
func (UnsupportedProduct) Version(context.Context) (string, error) { return "", ErrMetricNotAvailable }

// UnsupportedPackages is the default PackageReadout.
type UnsupportedPackages struct{}

func (UnsupportedPackages) Count(context.Context) (PackageCount, error) {
	return PackageCount{}, ErrMetricNotAvailable
}

// UnsupportedGeneral is the default GeneralReadout.
type UnsupportedGeneral struct{}

func (UnsupportedGeneral) Username(context.Context) (string, error) { return "", ErrMetricNotAvailable }
func (UnsupportedGeneral) Hostname(context.Context) (string, error) { return "", ErrMetricNotAvailable }

func (UnsupportedGeneral) Distribution(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) OperatingSystem(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) DesktopEnvironment(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) SessionType(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) WindowManager(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) Shell(context.Context, bool) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) Terminal(context.Context, bool) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) CPUModelName(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) CPUCores(context.Context) (int, error) { return 0, ErrMetricNotAvailable }
func (UnsupportedGeneral) CPUUsage(context.Context) (int, error) { return 0, ErrMetricNotAvailable }

func (UnsupportedGeneral) Uptime(context.Context) (time.Duration, error) {
	return 0, ErrMetricNotAvailable
}

func (UnsupportedGeneral) LocalIP(context.Context, string) (string, error) {
	return "", ErrMetricNotAvailable
}

func (UnsupportedGeneral) Backlight(context.Context) (int, error) { return 0, ErrMetricNotAvailable }

func (UnsupportedGeneral) Resolution(context.Context) (string, error) {
	return "", ErrMetricNotAvailable
}
