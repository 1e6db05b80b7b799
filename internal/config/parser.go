package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Parser reads configuration files. It wraps a LuaConfigParser so one Lua
// runtime can serve several files.
type Parser struct {
	luaParser *LuaConfigParser
}

// NewParser creates a Parser.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}
	return &Parser{luaParser: luaParser}, nil
}

// ParseFile reads and parses the configuration at path.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return p.Parse(content)
}

// Parse parses configuration content.
func (p *Parser) Parse(content []byte) (*Config, error) {
	return p.luaParser.Parse(content)
}

// ParseFromFS reads and parses a configuration file from fsys.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}
	return p.Parse(content)
}

// ParseReader parses configuration read from r.
func (p *Parser) ParseReader(r io.Reader) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return p.Parse(content)
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}

// Load reads and expands the configuration at path, then finalizes it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := Finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read parses the configuration at path and expands environment variables
// without validating it. An empty path selects DefaultPath, and a missing
// default file yields DefaultConfig. A path given explicitly must exist.
func Read(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	var cfg *Config
	if path != "" {
		parser, err := NewParser()
		if err != nil {
			return nil, err
		}
		defer parser.Close()

		cfg, err = parser.ParseFile(path)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return nil, err
		}
	}
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}

	ExpandEnvConfig(cfg)
	return cfg, nil
}

// Finalize validates cfg and normalizes the key colour to "#rrggbb". Call it
// again after applying command-line overrides.
func Finalize(cfg *Config) error {
	if err := NewValidator().Validate(cfg).Error(); err != nil {
		return err
	}
	hex, err := NormalizeColor(cfg.KeyColor)
	if err != nil {
		return err
	}
	cfg.KeyColor = hex
	return nil
}
