package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"
)

// DefaultProbeTimeout bounds every external-process probe.
const DefaultProbeTimeout = 2 * time.Second

// Source gives backends access to the machine being described: its files,
// its executable search path and its processes. The local implementation
// reads the running host; the SSH implementation reads a remote one.
type Source interface {
	// ReadFile returns the full contents of path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadDir returns the sorted entry names of the directory at path.
	ReadDir(ctx context.Context, path string) ([]string, error)

	// Exists reports whether path exists.
	Exists(ctx context.Context, path string) bool

	// LookPath searches the executable search path for name.
	LookPath(ctx context.Context, name string) (string, error)

	// Run spawns name with args, waits for it under the probe deadline and
	// returns its captured standard output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Option configures a Platform.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	probeTimeout time.Duration
	root         string
}

func defaultOptions() *options {
	return &options{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		probeTimeout: DefaultProbeTimeout,
		root:         "/",
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProbeTimeout bounds every external-process probe.
// Non-positive values keep the default.
func WithProbeTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.probeTimeout = d
		}
	}
}

// WithRoot reads virtual-filesystem paths relative to root instead of "/".
// This is mostly useful for tests and for inspecting a mounted image.
func WithRoot(root string) Option {
	return func(o *options) {
		if root != "" {
			o.root = root
		}
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// localSource implements Source for the running host.
type localSource struct {
	root    string
	timeout time.Duration
	logger  *slog.Logger
}

func newLocalSource(o *options) *localSource {
	return &localSource{
		root:    o.root,
		timeout: o.probeTimeout,
		logger:  o.logger,
	}
}

func (s *localSource) resolve(path string) string {
	if s.root == "" || s.root == "/" {
		return path
	}
	return filepath.Join(s.root, path)
}

func (s *localSource) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.resolve(path))
}

func (s *localSource) ReadDir(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.resolve(path))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *localSource) Exists(_ context.Context, path string) bool {
	_, err := os.Stat(s.resolve(path))
	return err == nil
}

func (s *localSource) LookPath(_ context.Context, name string) (string, error) {
	return exec.LookPath(name)
}

func (s *localSource) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	// Give a killed child a moment to release its pipes before Wait returns.
	cmd.WaitDelay = 100 * time.Millisecond

	start := time.Now()
	err := cmd.Run()
	s.logger.Debug("probe finished", "cmd", name, "args", args, "elapsed", time.Since(start), "error", err)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s: %w", name, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return stdout.Bytes(), fmt.Errorf("%w (stderr: %s)", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}
