package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/sysfetch/internal/monitor"
)

func TestDoctorPresenter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDoctorPresenter(&buf, "linux").Present(sampleReadouts()))
	out := buf.String()

	assert.Contains(t, out, "sysfetch doctor: linux")
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "DE: the desktop environment is the window manager")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "Battery: no battery (metric_not_available)")
	assert.Contains(t, out, "Resolution: xrandr failed (backend_error)")
	assert.Contains(t, out, "3 of 6 fields read, 1 warnings, 2 failures")
	assert.NotContains(t, out, "alice@archbox")

	warn := strings.Index(out, "DE:")
	res := strings.Index(out, "Resolution:")
	assert.Less(t, strings.Index(out, "Battery:"), warn, "failures keep collection order")
	assert.Less(t, warn, res)
}

func TestDoctorPresenterHealthy(t *testing.T) {
	var buf bytes.Buffer
	readouts := []monitor.Readout{{Key: monitor.Host, Value: "a@b"}}
	require.NoError(t, NewDoctorPresenter(&buf, "stub").Present(readouts))
	assert.Contains(t, buf.String(), "SUCCESS")
	assert.Contains(t, buf.String(), "1 of 1 fields read, 0 warnings, 0 failures")
}
