package platform

import (
	"context"
	"path"
)

// sysfsBattery implements BatteryReadout over the power_supply class in sysfs.
// The first supply directory that exists is used, so a machine whose battery
// is exposed as BAT1 still reports.
type sysfsBattery struct {
	src  Source
	dirs []string
}

func newLinuxBattery(src Source) *sysfsBattery {
	return &sysfsBattery{
		src: src,
		dirs: []string{
			"/sys/class/power_supply/BAT0",
			"/sys/class/power_supply/BAT1",
		},
	}
}

func (b *sysfsBattery) attr(ctx context.Context, name string) string {
	paths := make([]string, len(b.dirs))
	for i, dir := range b.dirs {
		paths[i] = path.Join(dir, name)
	}
	return firstExisting(ctx, b.src, paths...)
}

func (b *sysfsBattery) Percentage(ctx context.Context) (uint8, error) {
	capacity, err := readUint(ctx, b.src, b.attr(ctx, "capacity"))
	if err != nil {
		return 0, err
	}
	if capacity > 100 {
		capacity = 100
	}
	return uint8(capacity), nil
}

func (b *sysfsBattery) Status(ctx context.Context) (BatteryState, error) {
	status, err := readString(ctx, b.src, b.attr(ctx, "status"))
	if err != nil {
		return BatteryUnknown, err
	}
	return ParseBatteryState(status), nil
}

// Health compares the last full charge against the design capacity. Some
// batteries report energy (µWh), others charge (µAh).
func (b *sysfsBattery) Health(ctx context.Context) (uint8, error) {
	var firstErr error
	for _, pair := range [][2]string{
		{"energy_full", "energy_full_design"},
		{"charge_full", "charge_full_design"},
	} {
		full, err := readUint(ctx, b.src, b.attr(ctx, pair[0]))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		design, err := readUint(ctx, b.src, b.attr(ctx, pair[1]))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if design == 0 {
			return 0, Other(pair[1]+" is zero", nil)
		}
		return uint8(percentOf(full, design)), nil
	}
	return 0, firstErr
}
