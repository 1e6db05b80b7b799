//go:build linux || darwin || netbsd

package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceRun(t *testing.T) {
	src := newLocalSource(buildOptions(nil))

	out, err := src.Run(context.Background(), "sh", "-c", "echo one; echo two")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(out))

	_, err = src.Run(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, KindBackend, AsReadoutError(FromProbeError("sh", err)).Kind)
}

func TestLocalSourceRunKilledOnDeadline(t *testing.T) {
	src := newLocalSource(buildOptions([]Option{WithProbeTimeout(50 * time.Millisecond)}))

	start := time.Now()
	_, err := src.Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 3*time.Second)

	re := AsReadoutError(FromProbeError("sleep", err))
	assert.Equal(t, KindBackend, re.Kind)
	assert.Equal(t, "sleep timed out", re.Reason)
}

func TestLocalSourceLookPathMissing(t *testing.T) {
	src := newLocalSource(buildOptions(nil))
	_, err := src.LookPath(context.Background(), "sysfetch-no-such-binary")
	require.Error(t, err)
	assert.Equal(t, KindMetricNotAvailable, AsReadoutError(FromProbeError("sysfetch-no-such-binary", err)).Kind)
}
