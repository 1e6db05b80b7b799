package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldKey(t *testing.T) {
	tests := []struct {
		in   string
		want FieldKey
	}{
		{"host", Host},
		{"Kernel", Kernel},
		{"desktop_environment", DesktopEnvironment},
		{"desktop-environment", DesktopEnvironment},
		{"DesktopEnvironment", DesktopEnvironment},
		{" local ip ", LocalIP},
		{"PROCESSOR_LOAD", ProcessorLoad},
	}
	for _, tt := range tests {
		got, err := ParseFieldKey(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFieldKey("gpu")
	assert.EqualError(t, err, `unknown readout "gpu"`)
}

func TestFieldKeyNames(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range AllFields() {
		name := k.String()
		require.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true

		parsed, err := ParseFieldKey(name)
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		assert.NotEmpty(t, k.Label())
	}
	assert.Len(t, AllFields(), 18)
	assert.Equal(t, Host, AllFields()[0])
	assert.Equal(t, Resolution, AllFields()[17])

	assert.Equal(t, "field(99)", FieldKey(99).String())
	assert.Equal(t, "Distro", Distribution.Label())
	assert.Equal(t, "Brightness", Backlight.Label())
}

func TestFieldKeyText(t *testing.T) {
	text, err := WindowManager.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "window_manager", string(text))

	var k FieldKey
	require.NoError(t, k.UnmarshalText([]byte("window-manager")))
	assert.Equal(t, WindowManager, k)

	assert.Error(t, k.UnmarshalText([]byte("nope")))
	_, err = FieldKey(-1).MarshalText()
	assert.Error(t, err)
}

func TestHasGauge(t *testing.T) {
	var gauges []FieldKey
	for _, k := range AllFields() {
		if k.HasGauge() {
			gauges = append(gauges, k)
		}
	}
	assert.ElementsMatch(t, []FieldKey{ProcessorLoad, Memory, Battery, Backlight}, gauges)
}
