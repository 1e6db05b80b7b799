package config

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser executes a Lua configuration file and extracts the
// sysfetch.config table.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a LuaConfigParser whose print output is
// discarded.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser that writes Lua
// print output to stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes content and returns the configuration it assigns. Keys the
// file leaves out keep their DefaultConfig values.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	// Execute with resource limits
	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024,
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	if _, err := rt.Call1(thread, rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initGlobal installs a fresh sysfetch table with an empty config table so
// files may either assign sysfetch.config or set its keys one by one.
func (p *LuaConfigParser) initGlobal() {
	sysfetch := rt.NewTable()
	sysfetch.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("sysfetch"), rt.TableValue(sysfetch))
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	globalVal := p.runtime.GlobalEnv().Get(rt.StringValue("sysfetch"))
	if globalVal == rt.NilValue {
		return &cfg, nil
	}
	global, ok := globalVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("sysfetch is not a table")
	}

	configVal := global.Get(rt.StringValue("config"))
	if configVal == rt.NilValue {
		return &cfg, nil
	}
	table, ok := configVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("sysfetch.config is not a table")
	}

	if err := extractConfigTable(&cfg, table); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractConfigTable(cfg *Config, table *rt.Table) error {
	var err error
	if cfg.Show, err = getTableStrings(table, "show", cfg.Show); err != nil {
		return err
	}
	if cfg.Hide, err = getTableStrings(table, "hide", cfg.Hide); err != nil {
		return err
	}

	setBool(table, "short_shell", &cfg.ShortShell)
	setBool(table, "short_uptime", &cfg.ShortUptime)
	setBool(table, "bar", &cfg.Bar)
	setString(table, "interface", &cfg.Interface)
	setString(table, "key_color", &cfg.KeyColor)
	setString(table, "separator", &cfg.Separator)
	setSeconds(table, "probe_timeout", &cfg.ProbeTimeout)

	remoteVal, ok := lookup(table, "remote")
	if !ok {
		return nil
	}
	remoteTable, ok := remoteVal.TryTable()
	if !ok {
		return fmt.Errorf("remote must be a table")
	}
	cfg.Remote = extractRemote(remoteTable)
	return nil
}

func extractRemote(table *rt.Table) *RemoteConfig {
	remote := &RemoteConfig{Port: DefaultRemotePort}
	setString(table, "host", &remote.Host)
	setString(table, "user", &remote.User)
	setInt(table, "port", &remote.Port)
	setString(table, "identity", &remote.Identity)
	setString(table, "known_hosts", &remote.KnownHosts)
	setBool(table, "insecure", &remote.Insecure)
	return remote
}

// Close releases the Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// lookup returns the value stored under key, reporting false for nil.
func lookup(table *rt.Table, key string) (rt.Value, bool) {
	v := table.Get(rt.StringValue(key))
	return v, v != rt.NilValue
}

// The set* helpers assign *dst only when key holds a value of a usable type;
// anything else leaves the default in place.

func setBool(table *rt.Table, key string, dst *bool) {
	v, ok := lookup(table, key)
	if !ok {
		return
	}
	if b, ok := v.TryBool(); ok {
		*dst = b
	} else if s, ok := v.TryString(); ok {
		*dst = parseBool(s)
	}
}

func setString(table *rt.Table, key string, dst *string) {
	if v, ok := lookup(table, key); ok {
		if s, ok := v.TryString(); ok {
			*dst = s
		}
	}
}

func setInt(table *rt.Table, key string, dst *int) {
	v, ok := lookup(table, key)
	if !ok {
		return
	}
	if n, ok := v.TryInt(); ok {
		*dst = int(n)
	} else if f, ok := v.TryFloat(); ok {
		*dst = int(f)
	}
}

// setSeconds reads a number of seconds, fractions allowed.
func setSeconds(table *rt.Table, key string, dst *time.Duration) {
	v, ok := lookup(table, key)
	if !ok {
		return
	}
	if f, ok := v.TryFloat(); ok {
		*dst = time.Duration(f * float64(time.Second))
	} else if n, ok := v.TryInt(); ok {
		*dst = time.Duration(n) * time.Second
	}
}

// getTableStrings reads a Lua sequence of strings. A missing key returns
// fallback unchanged.
func getTableStrings(table *rt.Table, key string, fallback []string) ([]string, error) {
	v, ok := lookup(table, key)
	if !ok {
		return fallback, nil
	}
	list, ok := v.TryTable()
	if !ok {
		return nil, fmt.Errorf("%s must be a list of field names", key)
	}

	n := list.Len()
	result := make([]string, 0, n)
	for i := int64(1); i <= n; i++ {
		s, ok := list.Get(rt.IntValue(i)).TryString()
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", key, i)
		}
		result = append(result, s)
	}
	return result, nil
}
