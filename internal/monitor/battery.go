package monitor

import (
	"context"
	"strconv"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// FormatBattery renders "75% (Charging)". An Unknown state is left out.
func FormatBattery(percent uint8, state platform.BatteryState) string {
	value := strconv.Itoa(int(percent)) + "%"
	if state == platform.BatteryUnknown {
		return value
	}
	return value + " (" + state.String() + ")"
}

func (c *collection) battery(ctx context.Context, key FieldKey) Readout {
	b := c.platform.Battery()
	pct, err := b.Percentage(ctx)
	if err != nil {
		return failure(key, err)
	}
	state, err := b.Status(ctx)
	if err != nil {
		return failure(key, err)
	}
	return gauge(key, FormatBattery(pct, state), int(pct))
}
