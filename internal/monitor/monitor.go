package monitor

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// Options tune how values are formatted.
type Options struct {
	// ShortShell reports the shell and terminal by command name instead of path.
	ShortShell bool
	// ShortUptime selects "1d 3h 12m" over "1 day, 3 hours, 12 minutes".
	ShortUptime bool
	// Interface names the network interface LocalIP reads. Empty selects the
	// first non-loopback interface with an IPv4 address.
	Interface string
	// Logger receives one Debug record per failed field. Nil discards.
	Logger *slog.Logger
}

// Aggregator evaluates fields against one platform. It holds no readout
// state between calls, so repeated collections against unchanged backends
// return identical results.
type Aggregator struct {
	platform platform.Platform
	opts     Options
	logger   *slog.Logger
}

// New creates an Aggregator over p. p must already be initialized.
func New(p platform.Platform, opts Options) *Aggregator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{platform: p, opts: opts, logger: logger}
}

// Collect evaluates keys in order and returns exactly one Readout per key.
// A failing field never prevents the following fields from being read.
func (a *Aggregator) Collect(ctx context.Context, keys []FieldKey) []Readout {
	c := &collection{Aggregator: a}
	out := make([]Readout, 0, len(keys))
	for _, key := range keys {
		r := c.read(ctx, key)
		if r.Err != nil {
			a.logger.Debug("field unavailable",
				"field", key.String(),
				"kind", r.Err.Kind.String(),
				"reason", r.Err.Message())
		}
		out = append(out, r)
	}
	return out
}

// collection is the state of one Collect call. The window manager and
// desktop environment are read together and shared by both fields.
type collection struct {
	*Aggregator
	session *sessionNames
}

func (c *collection) read(ctx context.Context, key FieldKey) Readout {
	g := c.platform.General()
	switch key {
	case Host:
		return c.host(ctx, key)
	case Machine:
		return c.machine(ctx, key)
	case Kernel:
		return result(key)(c.platform.Kernel().PrettyKernel(ctx))
	case Distribution:
		return result(key)(g.Distribution(ctx))
	case OperatingSystem:
		return result(key)(g.OperatingSystem(ctx))
	case DesktopEnvironment:
		return c.sessionNames(ctx).desktop
	case WindowManager:
		return c.sessionNames(ctx).windowManager
	case Packages:
		return c.packages(ctx, key)
	case Shell:
		return result(key)(g.Shell(ctx, c.opts.ShortShell))
	case Terminal:
		return result(key)(g.Terminal(ctx, c.opts.ShortShell))
	case Uptime:
		up, err := g.Uptime(ctx)
		if err != nil {
			return failure(key, err)
		}
		return success(key, FormatUptime(up, c.opts.ShortUptime))
	case Processor:
		return c.processor(ctx, key)
	case ProcessorLoad:
		return percentResult(key)(g.CPUUsage(ctx))
	case Memory:
		return c.memory(ctx, key)
	case Battery:
		return c.battery(ctx, key)
	case LocalIP:
		return result(key)(g.LocalIP(ctx, c.opts.Interface))
	case Backlight:
		return percentResult(key)(g.Backlight(ctx))
	case Resolution:
		return result(key)(g.Resolution(ctx))
	default:
		return failure(key, platform.Other("unknown readout "+key.String(), nil))
	}
}

// result adapts a (string, error) accessor into a Readout.
func result(key FieldKey) func(string, error) Readout {
	return func(value string, err error) Readout {
		if err != nil {
			return failure(key, err)
		}
		return success(key, value)
	}
}

// percentResult adapts a percentage accessor into a gauge Readout.
func percentResult(key FieldKey) func(int, error) Readout {
	return func(pct int, err error) Readout {
		if err != nil {
			return failure(key, err)
		}
		pct = clampPercent(pct)
		return gauge(key, strconv.Itoa(pct)+"%", pct)
	}
}

func (c *collection) host(ctx context.Context, key FieldKey) Readout {
	g := c.platform.General()
	user, err := g.Username(ctx)
	if err != nil {
		return failure(key, err)
	}
	host, err := g.Hostname(ctx)
	if err != nil {
		return failure(key, err)
	}
	return success(key, user+"@"+host)
}

func (c *collection) packages(ctx context.Context, key FieldKey) Readout {
	count, err := c.platform.Packages().Count(ctx)
	if err != nil {
		return failure(key, err)
	}
	return success(key, strconv.Itoa(count.Count)+" ("+count.Manager+")")
}

func (c *collection) processor(ctx context.Context, key FieldKey) Readout {
	g := c.platform.General()
	model, err := g.CPUModelName(ctx)
	if err != nil {
		return failure(key, err)
	}
	cores, err := g.CPUCores(ctx)
	if err != nil {
		return failure(key, err)
	}
	return success(key, strings.TrimSpace(model)+" ("+strconv.Itoa(cores)+")")
}

// Bucket maps a percentage to a 10-segment gauge: 0 stays 0, 1-10 is 1,
// 11-20 is 2 and so on up to 91-100 as 10. Out-of-range input is clamped.
func Bucket(percent int) int {
	percent = clampPercent(percent)
	return (percent + 9) / 10
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
