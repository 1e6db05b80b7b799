package monitor

import (
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d     time.Duration
		long  string
		short string
	}{
		{27*time.Hour + 12*time.Minute, "1 day, 3 hours, 12 minutes", "1d 3h 12m"},
		{49 * time.Hour, "2 days, 1 hour", "2d 1h"},
		{time.Hour + time.Minute + 59*time.Second, "1 hour, 1 minute", "1h 1m"},
		{3 * 24 * time.Hour, "3 days", "3d"},
		{time.Minute, "1 minute", "1m"},
		{42 * time.Second, "42 seconds", "42s"},
		{time.Second, "1 second", "1s"},
		{0, "0 seconds", "0s"},
		{-time.Hour, "0 seconds", "0s"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.d, false); got != tt.long {
			t.Errorf("FormatUptime(%v, false) = %q, want %q", tt.d, got, tt.long)
		}
		if got := FormatUptime(tt.d, true); got != tt.short {
			t.Errorf("FormatUptime(%v, true) = %q, want %q", tt.d, got, tt.short)
		}
	}
}

func TestFormatMemory(t *testing.T) {
	tests := []struct {
		used, total uint64
		want        string
	}{
		{4_500_000, 16_000_000, "4.3 GiB / 15 GiB"},
		{512 * 1024, 8 * 1024 * 1024, "512 MiB / 8.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatMemory(tt.used, tt.total); got != tt.want {
			t.Errorf("FormatMemory(%d, %d) = %q, want %q", tt.used, tt.total, got, tt.want)
		}
	}
	if got := memoryPercent(1, 0); got != 0 {
		t.Errorf("memoryPercent with zero total = %d, want 0", got)
	}
}
