package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches environment variable references in configuration values.
// Supports formats:
//   - ${VAR_NAME} - standard shell-like format
//   - ${VAR_NAME:-default} - with default value if unset or empty
//   - $VAR_NAME - simple format (word characters only)
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in s. Unset variables
// without a default expand to the empty string.
func ExpandEnv(s string) string {
	return expandWith(s, os.Getenv)
}

func expandWith(s string, getenv func(string) string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "${") {
			inner := match[2 : len(match)-1]
			name, fallback, hasDefault := strings.Cut(inner, ":-")
			if val := getenv(name); val != "" || !hasDefault {
				return val
			}
			return fallback
		}
		return getenv(match[1:])
	})
}

// ExpandEnvConfig expands environment variables in the string settings that
// name things on disk or on the network: the interface and every remote
// setting. Field names and the separator are left alone.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Interface = ExpandEnv(cfg.Interface)

	if r := cfg.Remote; r != nil {
		r.Host = ExpandEnv(r.Host)
		r.User = ExpandEnv(r.User)
		r.Identity = ExpandEnv(r.Identity)
		r.KnownHosts = ExpandEnv(r.KnownHosts)
	}
}
