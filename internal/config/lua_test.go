package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func parseLua(t *testing.T, content string) *Config {
	t.Helper()
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return cfg
}

func TestLuaConfigParserParseFull(t *testing.T) {
	cfg := parseLua(t, `
sysfetch.config = {
    show = { "host", "machine", "kernel", "battery" },
    hide = { "battery" },
    short_shell = true,
    short_uptime = "yes",
    bar = true,
    interface = "wlan0",
    probe_timeout = 2.5,
    key_color = "#FF8700",
    separator = " : ",
    remote = { host = "box", user = "me", port = 2222, identity = "~/.ssh/id_ed25519" },
}
`)

	if want := []string{"host", "machine", "kernel", "battery"}; !reflect.DeepEqual(cfg.Show, want) {
		t.Errorf("Show = %v, want %v", cfg.Show, want)
	}
	if want := []string{"battery"}; !reflect.DeepEqual(cfg.Hide, want) {
		t.Errorf("Hide = %v, want %v", cfg.Hide, want)
	}
	if !cfg.ShortShell || !cfg.ShortUptime || !cfg.Bar {
		t.Errorf("flags = %v/%v/%v, want all true", cfg.ShortShell, cfg.ShortUptime, cfg.Bar)
	}
	if cfg.Interface != "wlan0" {
		t.Errorf("Interface = %q, want wlan0", cfg.Interface)
	}
	if cfg.ProbeTimeout != 2500*time.Millisecond {
		t.Errorf("ProbeTimeout = %v, want 2.5s", cfg.ProbeTimeout)
	}
	if cfg.KeyColor != "#FF8700" {
		t.Errorf("KeyColor = %q", cfg.KeyColor)
	}
	if cfg.Separator != " : " {
		t.Errorf("Separator = %q", cfg.Separator)
	}

	want := &RemoteConfig{Host: "box", User: "me", Port: 2222, Identity: "~/.ssh/id_ed25519"}
	if !reflect.DeepEqual(cfg.Remote, want) {
		t.Errorf("Remote = %+v, want %+v", cfg.Remote, want)
	}
}

func TestLuaConfigParserDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"comment only", "-- nothing here"},
		{"empty table", "sysfetch.config = {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parseLua(t, tt.content)
			if !reflect.DeepEqual(*cfg, DefaultConfig()) {
				t.Errorf("got %+v, want defaults", *cfg)
			}
		})
	}
}

func TestLuaConfigParserIncrementalAssignment(t *testing.T) {
	cfg := parseLua(t, `
local fields = {}
for _, f in ipairs({"kernel", "uptime"}) do
    fields[#fields + 1] = f
end
sysfetch.config.show = fields
sysfetch.config.probe_timeout = 3
`)
	if want := []string{"kernel", "uptime"}; !reflect.DeepEqual(cfg.Show, want) {
		t.Errorf("Show = %v, want %v", cfg.Show, want)
	}
	if cfg.ProbeTimeout != 3*time.Second {
		t.Errorf("ProbeTimeout = %v, want 3s", cfg.ProbeTimeout)
	}
	if cfg.Remote != nil {
		t.Errorf("Remote = %+v, want nil", cfg.Remote)
	}
}

func TestLuaConfigParserRemoteDefaultPort(t *testing.T) {
	cfg := parseLua(t, `sysfetch.config = { remote = { host = "10.0.0.2", insecure = true } }`)
	if cfg.Remote == nil {
		t.Fatal("Remote is nil")
	}
	if cfg.Remote.Port != DefaultRemotePort || !cfg.Remote.Insecure {
		t.Errorf("Remote = %+v", cfg.Remote)
	}
}

func TestLuaConfigParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax error", "sysfetch.config = {", "compile"},
		{"runtime error", `error("boom")`, "execute"},
		{"config not a table", `sysfetch.config = "host"`, "sysfetch.config is not a table"},
		{"global not a table", `sysfetch = 1`, "sysfetch is not a table"},
		{"show not a list", `sysfetch.config = { show = "host" }`, "show must be a list"},
		{"show entry not a string", `sysfetch.config = { show = { "host", {} } }`, "show[2] must be a string"},
		{"remote not a table", `sysfetch.config = { remote = "box" }`, "remote must be a table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLuaConfigParser()
			if err != nil {
				t.Fatalf("NewLuaConfigParser failed: %v", err)
			}
			defer p.Close()

			_, err = p.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLuaConfigParserReuse(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	if _, err := p.Parse([]byte(`sysfetch.config = { show = { "host" } }`)); err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	cfg, err := p.Parse([]byte(`-- second file sets nothing`))
	if err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}
	if len(cfg.Show) != 0 {
		t.Errorf("Show leaked from previous parse: %v", cfg.Show)
	}
}

func TestLuaConfigParserCloseTwice(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
