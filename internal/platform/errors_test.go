package platform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadoutErrorIsMatchesKind(t *testing.T) {
	err := NotAvailable("no battery")

	assert.True(t, errors.Is(err, ErrMetricNotAvailable))
	assert.False(t, errors.Is(err, Warning("")))

	wrapped := fmt.Errorf("reading battery: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMetricNotAvailable))
}

func TestReadoutErrorUnwrap(t *testing.T) {
	cause := fs.ErrPermission
	err := BackendError("reading /sys/class/dmi/id/product_serial", cause)

	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, "backend_error: reading /sys/class/dmi/id/product_serial: permission denied", err.Error())
}

func TestReadoutErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ReadoutError
		want string
	}{
		{"reason only", Warning("the desktop environment is the window manager"), "the desktop environment is the window manager"},
		{"reason and cause", Other("malformed value", errors.New("bad digit")), "malformed value (bad digit)"},
		{"bare unavailable", ErrMetricNotAvailable, "this metric is not available on this system"},
		{"cause only", &ReadoutError{Kind: KindBackend, Err: errors.New("boom")}, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Message())
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "metric_not_available", KindMetricNotAvailable.String())
	assert.Equal(t, "warning", KindWarning.String())
	assert.Equal(t, "backend_error", KindBackend.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestAsReadoutError(t *testing.T) {
	assert.Nil(t, AsReadoutError(nil))

	re := AsReadoutError(fmt.Errorf("wrapped: %w", Warning("soft")))
	require.NotNil(t, re)
	assert.Equal(t, KindWarning, re.Kind)

	re = AsReadoutError(errors.New("plain"))
	require.NotNil(t, re)
	assert.Equal(t, KindOther, re.Kind)
}

func TestFromOSError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"missing file", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, KindMetricNotAvailable},
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, KindBackend},
		{"deadline", fmt.Errorf("read: %w", context.DeadlineExceeded), KindBackend},
		{"unexpected", errors.New("io error"), KindBackend},
		{"already classified", Other("parse", nil), KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsReadoutError(FromOSError("/x", tt.err))
			require.NotNil(t, got)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
	assert.NoError(t, FromOSError("/x", nil))
}

func TestFromProbeError(t *testing.T) {
	notFound := AsReadoutError(FromProbeError("pacman", &exec.Error{Name: "pacman", Err: exec.ErrNotFound}))
	assert.Equal(t, KindMetricNotAvailable, notFound.Kind)
	assert.Equal(t, "pacman is not installed", notFound.Reason)

	timeout := AsReadoutError(FromProbeError("rpm", fmt.Errorf("rpm: %w", context.DeadlineExceeded)))
	assert.Equal(t, KindBackend, timeout.Kind)
	assert.Equal(t, "rpm timed out", timeout.Reason)

	assert.NoError(t, FromProbeError("rpm", nil))
}
