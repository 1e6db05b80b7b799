package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// ParseRemoteTarget parses "[user@]host[:port]". IPv6 hosts with a port are
// written in brackets, "[::1]:2222". The user defaults to $USER.
func ParseRemoteTarget(target string) (*RemoteConfig, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("empty remote target")
	}

	remote := &RemoteConfig{Port: DefaultRemotePort, User: os.Getenv("USER")}
	if user, rest, ok := strings.Cut(target, "@"); ok {
		if user == "" {
			return nil, fmt.Errorf("remote target %q has an empty user", target)
		}
		remote.User = user
		target = rest
	}

	host := target
	switch {
	case strings.HasPrefix(target, "[") && strings.HasSuffix(target, "]"):
		host = target[1 : len(target)-1]
	case strings.HasPrefix(target, "[") || strings.Count(target, ":") == 1:
		h, port, err := net.SplitHostPort(target)
		if err != nil {
			return nil, fmt.Errorf("invalid remote target %q: %w", target, err)
		}
		p, err := strconv.Atoi(port)
		if err != nil || p < 1 || p > 65535 {
			return nil, fmt.Errorf("invalid port %q in remote target", port)
		}
		host, remote.Port = h, p
	}
	if host == "" {
		return nil, fmt.Errorf("remote target %q has an empty host", target)
	}
	remote.Host = host
	return remote, nil
}

// PlatformConfig converts r into the connection settings of the remote
// backend. An identity file selects key authentication; otherwise the SSH
// agent is used.
func (r *RemoteConfig) PlatformConfig(probeTimeout time.Duration) platform.RemoteConfig {
	cfg := platform.RemoteConfig{
		Host:                  r.Host,
		Port:                  r.Port,
		User:                  r.User,
		KnownHostsPath:        r.KnownHosts,
		InsecureIgnoreHostKey: r.Insecure,
		ProbeTimeout:          probeTimeout,
		AuthMethod:            platform.AgentAuth{},
	}
	if r.Identity != "" {
		cfg.AuthMethod = platform.KeyAuth{PrivateKeyPath: r.Identity}
	}
	return cfg
}
