package sysfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/opd-ai/sysfetch/internal/config"
	"github.com/opd-ai/sysfetch/internal/monitor"
	"github.com/opd-ai/sysfetch/internal/platform"
	"github.com/opd-ai/sysfetch/internal/render"
)

// Fetcher holds an initialized platform and the resolved configuration.
type Fetcher struct {
	cfg        *config.Config
	keys       []monitor.FieldKey
	platform   platform.Platform
	aggregator *monitor.Aggregator
	logger     *slog.Logger
}

// New loads the configuration, applies opts and initializes the platform.
// Configuration problems wrap ErrInvalidConfig and connection problems wrap
// ErrRemoteUnavailable.
func New(ctx context.Context, opts Options) (*Fetcher, error) {
	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger()
	}

	cfg, err := config.Read(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := opts.apply(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := config.Finalize(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	keys, err := cfg.Keys()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	p, err := newPlatform(ctx, cfg, opts.Platform, logger)
	if err != nil {
		return nil, err
	}

	monitorOpts := cfg.MonitorOptions()
	monitorOpts.Logger = logger
	logger.Debug("platform ready", "platform", p.Name(), "fields", len(keys))

	return &Fetcher{
		cfg:        cfg,
		keys:       keys,
		platform:   p,
		aggregator: monitor.New(p, monitorOpts),
		logger:     logger,
	}, nil
}

func newPlatform(ctx context.Context, cfg *config.Config, injected platform.Platform, logger *slog.Logger) (platform.Platform, error) {
	if injected != nil {
		if err := injected.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", injected.Name(), err)
		}
		return injected, nil
	}

	platformOpts := []platform.Option{
		platform.WithLogger(logger),
		platform.WithProbeTimeout(cfg.ProbeTimeout),
	}

	if cfg.Remote != nil {
		p, err := platform.NewRemotePlatform(cfg.Remote.PlatformConfig(cfg.ProbeTimeout), platformOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err := p.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRemoteUnavailable, cfg.Remote.Host, err)
		}
		return p, nil
	}

	p, err := platform.NewPlatform(platformOpts...)
	if err != nil {
		return nil, fmt.Errorf("create platform: %w", err)
	}
	if err := p.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", p.Name(), err)
	}
	return p, nil
}

// Collect reads the configured fields in order.
func (f *Fetcher) Collect(ctx context.Context) []monitor.Readout {
	return f.aggregator.Collect(ctx, f.keys)
}

// Keys returns the resolved field selection.
func (f *Fetcher) Keys() []monitor.FieldKey {
	return f.keys
}

// PlatformName identifies the backend set in use.
func (f *Fetcher) PlatformName() string {
	return f.platform.Name()
}

// Close releases the platform's cached handles.
func (f *Fetcher) Close() error {
	return f.platform.Close()
}

// Presenter returns the presenter selected by opts and the configuration.
func (f *Fetcher) Presenter(out io.Writer, opts Options) (render.Presenter, error) {
	switch {
	case opts.Export != "":
		format, err := render.ParseExportFormat(opts.Export)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return render.NewExportPresenter(out, format), nil
	case opts.Doctor:
		return render.NewDoctorPresenter(out, f.platform.Name()), nil
	default:
		return render.NewTextPresenter(out, render.TextOptions{
			KeyColor:  f.cfg.KeyColor,
			Separator: f.cfg.Separator,
			Bar:       f.cfg.Bar,
		}), nil
	}
}

// Run collects the configured fields once and writes them to opts.Stdout.
// Failed fields never make Run return an error.
func Run(ctx context.Context, opts Options) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	f, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			f.logger.Warn("closing platform", "error", err)
		}
	}()

	presenter, err := f.Presenter(out, opts)
	if err != nil {
		return err
	}
	return presenter.Present(f.Collect(ctx))
}
