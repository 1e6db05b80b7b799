// Package config loads sysfetch settings from a Lua file.
//
// A configuration file assigns a table to sysfetch.config:
//
//	sysfetch.config = {
//	    show = { "host", "machine", "kernel" },
//	    hide = { "battery" },
//	    short_shell = true,
//	    bar = true,
//	    probe_timeout = 2.5,
//	    key_color = "#5fafff",
//	}
//
// Every key is optional. Fields left out keep the values of DefaultConfig.
package config

import (
	"fmt"
	"time"

	"github.com/opd-ai/sysfetch/internal/monitor"
)

// Config holds the resolved settings of one run.
type Config struct {
	// Show lists the fields to display, in order. Empty selects every field
	// in the default order.
	Show []string
	// Hide removes fields from the Show selection.
	Hide []string

	ShortShell  bool
	ShortUptime bool
	// Bar renders gauge fields as a 10-segment bar instead of a number.
	Bar bool

	// Interface names the network interface LocalIP reads from.
	Interface string

	// ProbeTimeout bounds every file read and command spawned by a backend.
	ProbeTimeout time.Duration

	// KeyColor is the label colour as "#rrggbb".
	KeyColor string
	// Separator is printed between the label column and the value.
	Separator string

	// Remote is set when the readouts come from another host over SSH.
	Remote *RemoteConfig
}

// RemoteConfig describes the SSH target of a remote run.
type RemoteConfig struct {
	Host     string
	User     string
	Port     int
	Identity string
	// KnownHosts overrides ~/.ssh/known_hosts.
	KnownHosts string
	Insecure   bool
}

// Keys resolves the display selection: Show in order (or every field when
// Show is empty), minus Hide, with duplicates dropped.
func (c *Config) Keys() ([]monitor.FieldKey, error) {
	var keys []monitor.FieldKey
	if len(c.Show) == 0 {
		keys = monitor.AllFields()
	} else {
		for _, name := range c.Show {
			k, err := monitor.ParseFieldKey(name)
			if err != nil {
				return nil, fmt.Errorf("show: %w", err)
			}
			keys = append(keys, k)
		}
	}

	hidden := make(map[monitor.FieldKey]bool, len(c.Hide))
	for _, name := range c.Hide {
		k, err := monitor.ParseFieldKey(name)
		if err != nil {
			return nil, fmt.Errorf("hide: %w", err)
		}
		hidden[k] = true
	}

	seen := make(map[monitor.FieldKey]bool, len(keys))
	result := make([]monitor.FieldKey, 0, len(keys))
	for _, k := range keys {
		if hidden[k] || seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, k)
	}
	return result, nil
}

// MonitorOptions returns the formatting options for the aggregator.
func (c *Config) MonitorOptions() monitor.Options {
	return monitor.Options{
		ShortShell:  c.ShortShell,
		ShortUptime: c.ShortUptime,
		Interface:   c.Interface,
	}
}
