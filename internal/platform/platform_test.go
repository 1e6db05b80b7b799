package platform

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadoutSetDefaultsToUnsupported(t *testing.T) {
	ctx := context.Background()
	p := newReadoutSet("empty", func(context.Context) (readouts, error) {
		return readouts{}, nil
	})
	require.NoError(t, p.Initialize(ctx))

	_, err := p.Battery().Health(ctx)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	_, err = p.Kernel().OSType(ctx)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	_, err = p.Memory().Used(ctx)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	_, err = p.Product().Name(ctx)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	_, err = p.Packages().Count(ctx)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	_, err = p.General().Uptime(ctx)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	_, err = p.General().LocalIP(ctx, "eth0")
	assert.ErrorIs(t, err, ErrMetricNotAvailable)

	assert.NoError(t, p.Close())
}

func TestReadoutSetBuildFailure(t *testing.T) {
	boom := errors.New("dial failed")
	calls := 0
	p := newReadoutSet("remote", func(context.Context) (readouts, error) {
		calls++
		return readouts{}, boom
	})

	assert.ErrorIs(t, p.Initialize(context.Background()), boom)
	assert.ErrorIs(t, p.Initialize(context.Background()), boom)
	assert.Equal(t, 2, calls, "a failed build is retried")
}

func TestReadoutSetCloseJoinsErrors(t *testing.T) {
	first := errors.New("close x11")
	second := errors.New("close bus")
	var closed []string

	p := newReadoutSet("linux", func(context.Context) (readouts, error) {
		return readouts{
			kernel: newLinuxKernel(newFakeSource()),
			closers: []func() error{
				func() error {
					closed = append(closed, "x11")
					return first
				},
				func() error {
					closed = append(closed, "ssh")
					return nil
				},
				func() error {
					closed = append(closed, "bus")
					return second
				},
			},
		}, nil
	})
	require.NoError(t, p.Initialize(context.Background()))

	err := p.Close()
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Equal(t, []string{"x11", "ssh", "bus"}, closed)

	// Closing again has nothing left to release.
	assert.NoError(t, p.Close())
	assert.IsType(t, UnsupportedKernel{}, p.Kernel())
}

func TestReadoutSetConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource().withFile("/proc/sys/kernel/ostype", "Linux\n")
	p := newReadoutSet("linux", func(context.Context) (readouts, error) {
		return readouts{kernel: newLinuxKernel(src)}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Initialize(ctx)
			_ = p.Kernel()
		}()
	}
	wg.Wait()

	osType, err := p.Kernel().OSType(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Linux", osType)
}

func TestUnsupportedGeneralEveryAccessor(t *testing.T) {
	ctx := context.Background()
	var g GeneralReadout = UnsupportedGeneral{}

	checks := map[string]error{}
	_, checks["Username"] = g.Username(ctx)
	_, checks["Hostname"] = g.Hostname(ctx)
	_, checks["Distribution"] = g.Distribution(ctx)
	_, checks["DesktopEnvironment"] = g.DesktopEnvironment(ctx)
	_, checks["SessionType"] = g.SessionType(ctx)
	_, checks["WindowManager"] = g.WindowManager(ctx)
	_, checks["Terminal"] = g.Terminal(ctx, false)
	_, checks["Shell"] = g.Shell(ctx, true)
	_, checks["CPUModelName"] = g.CPUModelName(ctx)
	_, checks["CPUCores"] = g.CPUCores(ctx)
	_, checks["CPUUsage"] = g.CPUUsage(ctx)
	_, checks["OperatingSystem"] = g.OperatingSystem(ctx)
	_, checks["Backlight"] = g.Backlight(ctx)
	_, checks["Resolution"] = g.Resolution(ctx)

	for name, err := range checks {
		assert.ErrorIs(t, err, ErrMetricNotAvailable, name)
	}
}

func TestBuildOptions(t *testing.T) {
	o := buildOptions(nil)
	assert.Equal(t, DefaultProbeTimeout, o.probeTimeout)
	assert.Equal(t, "/", o.root)
	assert.NotNil(t, o.logger)

	o = buildOptions([]Option{WithProbeTimeout(-1), WithRoot(""), WithLogger(nil)})
	assert.Equal(t, DefaultProbeTimeout, o.probeTimeout)
	assert.Equal(t, "/", o.root)
	assert.NotNil(t, o.logger)
}
