package platform

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultConnectTimeout bounds the SSH handshake.
const DefaultConnectTimeout = 10 * time.Second

// ErrHostKeyUnverifiable is returned when no known_hosts file can be loaded
// and host key checking was not explicitly disabled.
var ErrHostKeyUnverifiable = errors.New("cannot verify remote host key")

// withDefaults fills the zero fields of a RemoteConfig.
func (c RemoteConfig) withDefaults() RemoteConfig {
	if c.Port == 0 {
		c.Port = 22
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.AuthMethod == nil {
		c.AuthMethod = AgentAuth{}
	}
	return c
}

func (c RemoteConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.User == "" {
		return fmt.Errorf("user is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func (c RemoteConfig) address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func authMethods(method AuthMethod) ([]ssh.AuthMethod, error) {
	switch auth := method.(type) {
	case PasswordAuth:
		return []ssh.AuthMethod{ssh.Password(auth.Password)}, nil
	case KeyAuth:
		key, err := os.ReadFile(auth.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}
		var signer ssh.Signer
		if auth.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(key, []byte(auth.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(key)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	case AgentAuth:
		socket := os.Getenv("SSH_AUTH_SOCK")
		if socket == "" {
			return nil, fmt.Errorf("SSH_AUTH_SOCK not set")
		}
		// The agent is dialled only when the server asks for a public key.
		return []ssh.AuthMethod{ssh.PublicKeysCallback(func() ([]ssh.Signer, error) {
			conn, err := net.Dial("unix", socket)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to SSH agent: %w", err)
			}
			defer conn.Close()
			return agent.NewClient(conn).Signers()
		})}, nil
	default:
		return nil, fmt.Errorf("unsupported auth method type: %T", auth)
	}
}

// hostKeyCallback verifies host keys against known_hosts.
func hostKeyCallback(c RemoteConfig) (ssh.HostKeyCallback, error) {
	if c.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	path := c.KnownHostsPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHostKeyUnverifiable, err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostKeyUnverifiable, err)
	}
	return cb, nil
}

func buildSSHConfig(c RemoteConfig) (*ssh.ClientConfig, error) {
	auth, err := authMethods(c.AuthMethod)
	if err != nil {
		return nil, err
	}
	hostKeys, err := hostKeyCallback(c)
	if err != nil {
		return nil, err
	}
	return &ssh.ClientConfig{
		User:            c.User,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         c.ConnectTimeout,
	}, nil
}

// dialSSH connects and authenticates, honouring ctx for the TCP dial and
// ConnectTimeout for the handshake.
func dialSSH(ctx context.Context, c RemoteConfig) (*ssh.Client, error) {
	cfg, err := buildSSHConfig(c)
	if err != nil {
		return nil, err
	}
	addr := c.address()
	dialer := net.Dialer{Timeout: c.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	if err := conn.SetDeadline(time.Now().Add(c.ConnectTimeout)); err != nil {
		conn.Close()
		return nil, err
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SSH handshake with %s failed: %w", addr, err)
	}
	// Clear the handshake deadline; probes carry their own.
	_ = conn.SetDeadline(time.Time{})
	return ssh.NewClient(sshConn, chans, reqs), nil
}
