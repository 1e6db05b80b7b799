package monitor

import (
	"context"

	"github.com/dustin/go-humanize"
)

// FormatMemory renders used and total KiB as "4.3 GiB / 15 GiB".
func FormatMemory(usedKiB, totalKiB uint64) string {
	return humanize.IBytes(usedKiB*1024) + " / " + humanize.IBytes(totalKiB*1024)
}

// memoryPercent returns used/total as a whole percentage.
func memoryPercent(usedKiB, totalKiB uint64) int {
	if totalKiB == 0 {
		return 0
	}
	return clampPercent(int(usedKiB * 100 / totalKiB))
}

func (c *collection) memory(ctx context.Context, key FieldKey) Readout {
	mem := c.platform.Memory()
	total, err := mem.Total(ctx)
	if err != nil {
		return failure(key, err)
	}
	used, err := mem.Used(ctx)
	if err != nil {
		return failure(key, err)
	}
	return gauge(key, FormatMemory(used, total), memoryPercent(used, total))
}
