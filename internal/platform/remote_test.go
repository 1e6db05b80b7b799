package platform

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptRunner answers remote command lines from a table. Unknown commands
// behave like a shell that cannot find the program.
type scriptRunner struct {
	results map[string]remoteResult
	err     error
	calls   []string
}

func (r *scriptRunner) Run(_ context.Context, cmd string) (remoteResult, error) {
	r.calls = append(r.calls, cmd)
	if r.err != nil {
		return remoteResult{}, r.err
	}
	if res, ok := r.results[cmd]; ok {
		return res, nil
	}
	return remoteResult{Code: 127}, nil
}

func newScriptSource(results map[string]remoteResult) (*remoteSource, *scriptRunner) {
	runner := &scriptRunner{results: results}
	return newRemoteSource(runner, slog.New(slog.NewTextHandler(io.Discard, nil))), runner
}

func TestNewSSHPlatform(t *testing.T) {
	tests := []struct {
		name    string
		config  RemoteConfig
		wantErr bool
	}{
		{
			name: "valid config with password auth",
			config: RemoteConfig{
				Host:       "example.com",
				User:       "testuser",
				AuthMethod: PasswordAuth{Password: "testpass"},
			},
		},
		{
			name: "valid config without auth method",
			config: RemoteConfig{
				Host: "example.com",
				User: "testuser",
			},
		},
		{
			name:    "missing host",
			config:  RemoteConfig{User: "testuser"},
			wantErr: true,
		},
		{
			name:    "missing user",
			config:  RemoteConfig{Host: "example.com"},
			wantErr: true,
		},
		{
			name:    "port out of range",
			config:  RemoteConfig{Host: "example.com", User: "testuser", Port: 70000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newSSHPlatform(tt.config, defaultOptions())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "remote-linux", p.Name())
		})
	}
}

func TestRemoteConfig_Defaults(t *testing.T) {
	config := RemoteConfig{Host: "example.com", User: "testuser"}.withDefaults()

	assert.Equal(t, 22, config.Port)
	assert.Equal(t, DefaultConnectTimeout, config.ConnectTimeout)
	assert.Equal(t, DefaultProbeTimeout, config.ProbeTimeout)
	assert.IsType(t, AgentAuth{}, config.AuthMethod)
	assert.Equal(t, "example.com:22", config.address())

	v6 := RemoteConfig{Host: "::1", Port: 2222}
	assert.Equal(t, "[::1]:2222", v6.address())

	kept := RemoteConfig{Port: 2200, ProbeTimeout: 5 * time.Second}.withDefaults()
	assert.Equal(t, 2200, kept.Port)
	assert.Equal(t, 5*time.Second, kept.ProbeTimeout)
}

func TestAuthMethods(t *testing.T) {
	methods, err := authMethods(PasswordAuth{Password: "secret"})
	require.NoError(t, err)
	assert.Len(t, methods, 1)

	_, err = authMethods(KeyAuth{PrivateKeyPath: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorContains(t, err, "failed to read private key")

	garbage := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0o600))
	_, err = authMethods(KeyAuth{PrivateKeyPath: garbage})
	assert.ErrorContains(t, err, "failed to parse private key")

	t.Setenv("SSH_AUTH_SOCK", "")
	_, err = authMethods(AgentAuth{})
	assert.ErrorContains(t, err, "SSH_AUTH_SOCK")
}

func TestHostKeyCallback(t *testing.T) {
	base := RemoteConfig{Host: "example.com", User: "testuser"}

	insecure := base
	insecure.InsecureIgnoreHostKey = true
	cb, err := hostKeyCallback(insecure)
	require.NoError(t, err)
	assert.NotNil(t, cb)

	missing := base
	missing.KnownHostsPath = filepath.Join(t.TempDir(), "known_hosts")
	_, err = hostKeyCallback(missing)
	assert.ErrorIs(t, err, ErrHostKeyUnverifiable)

	knownHostsPath := filepath.Join(t.TempDir(), "known_hosts")
	knownHostsContent := "example.com ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIBaLR4I4jx/L5oqjNBl0r/QJLCC0BFmPdCLzU4mQD8vS\n"
	require.NoError(t, os.WriteFile(knownHostsPath, []byte(knownHostsContent), 0o600))

	valid := base
	valid.KnownHostsPath = knownHostsPath
	cb, err = hostKeyCallback(valid)
	require.NoError(t, err)
	assert.NotNil(t, cb)
}

func TestSSHPlatform_InitializeFailsWithoutServer(t *testing.T) {
	p, err := newSSHPlatform(RemoteConfig{
		Host:                  "127.0.0.1",
		Port:                  1,
		User:                  "testuser",
		AuthMethod:            PasswordAuth{Password: "x"},
		InsecureIgnoreHostKey: true,
		ConnectTimeout:        time.Second,
	}, defaultOptions())
	require.NoError(t, err)

	assert.Error(t, p.Initialize(context.Background()))
	// Nothing was connected, so the readouts stay at their defaults.
	_, err = p.Kernel().OSType(context.Background())
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	assert.NoError(t, p.Close())
}

func TestRemoteSource_ReadFile(t *testing.T) {
	ctx := context.Background()
	src, runner := newScriptSource(map[string]remoteResult{
		"[ -e '/proc/sys/kernel/ostype' ] || exit 66; cat '/proc/sys/kernel/ostype'": {Stdout: []byte("Linux\n")},
		"[ -e '/etc/shadow' ] || exit 66; cat '/etc/shadow'":                         {Code: 1, Stderr: []byte("cat: /etc/shadow: Permission denied")},
		"[ -e '/nope' ] || exit 66; cat '/nope'":                                     {Code: exitMissing},
	})

	data, err := src.ReadFile(ctx, "/proc/sys/kernel/ostype")
	require.NoError(t, err)
	assert.Equal(t, "Linux\n", string(data))

	_, err = src.ReadFile(ctx, "/etc/shadow")
	assert.ErrorIs(t, err, fs.ErrPermission)

	_, err = src.ReadFile(ctx, "/nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = src.ReadFile(ctx, "/proc/../etc/passwd")
	assert.ErrorIs(t, err, fs.ErrInvalid)
	assert.Len(t, runner.calls, 3, "invalid paths never reach the remote shell")
}

func TestRemoteSource_ReadDirAndExists(t *testing.T) {
	ctx := context.Background()
	src, _ := newScriptSource(map[string]remoteResult{
		"[ -d '/sys/class/backlight' ] || exit 66; ls -1A '/sys/class/backlight'": {Stdout: []byte("intel_backlight\nacpi_video0\n")},
		"[ -e '/sys/class/power_supply/BAT0' ]":                                   {},
		"[ -e '/sys/class/power_supply/BAT1' ]":                                   {Code: 1},
	})

	names, err := src.ReadDir(ctx, "/sys/class/backlight")
	require.NoError(t, err)
	assert.Equal(t, []string{"acpi_video0", "intel_backlight"}, names)

	assert.True(t, src.Exists(ctx, "/sys/class/power_supply/BAT0"))
	assert.False(t, src.Exists(ctx, "/sys/class/power_supply/BAT1"))
	assert.False(t, src.Exists(ctx, "relative/path"))
}

func TestRemoteSource_LookPathAndRun(t *testing.T) {
	ctx := context.Background()
	src, runner := newScriptSource(map[string]remoteResult{
		"command -v 'pacman'":                {Stdout: []byte("/usr/bin/pacman\n")},
		"LC_ALL=C 'pacman' '-Qq'":            {Stdout: []byte("bash\nglibc\n")},
		"LC_ALL=C 'rpm' '-qa'":               {Code: 1, Stderr: []byte("rpmdb: lock held")},
		"LC_ALL=C 'echo' 'a'\\''; rm -rf /'": {Stdout: []byte("a'; rm -rf /\n")},
	})

	found, err := src.LookPath(ctx, "pacman")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/pacman", found)

	_, err = src.LookPath(ctx, "dpkg-query")
	assert.ErrorIs(t, err, exec.ErrNotFound)

	_, err = src.LookPath(ctx, "pac;man")
	assert.ErrorIs(t, err, exec.ErrNotFound)

	out, err := src.Run(ctx, "pacman", "-Qq")
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(out, nil))

	_, err = src.Run(ctx, "apk", "info")
	assert.ErrorIs(t, err, exec.ErrNotFound)

	_, err = src.Run(ctx, "rpm", "-qa")
	var exitErr *remoteExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "rpmdb: lock held")

	out, err = src.Run(ctx, "echo", "a'; rm -rf /")
	require.NoError(t, err)
	assert.Equal(t, "a'; rm -rf /\n", string(out))

	for _, cmd := range runner.calls {
		assert.False(t, strings.Contains(cmd, "pac;man"), "rejected names are never sent: %q", cmd)
	}
}

func TestRemoteSource_TransportError(t *testing.T) {
	runner := &scriptRunner{err: context.DeadlineExceeded}
	src := newRemoteSource(runner, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := src.Run(context.Background(), "uname", "-s")
	probeErr := AsReadoutError(FromProbeError("uname", err))
	assert.Equal(t, KindBackend, probeErr.Kind)
	assert.Equal(t, "uname timed out", probeErr.Reason)
}

func TestCheckRemoteOS(t *testing.T) {
	ctx := context.Background()

	linux, _ := newScriptSource(map[string]remoteResult{
		"LC_ALL=C 'uname' '-s'": {Stdout: []byte("Linux\n")},
	})
	assert.NoError(t, checkRemoteOS(ctx, linux))

	darwin, _ := newScriptSource(map[string]remoteResult{
		"LC_ALL=C 'uname' '-s'": {Stdout: []byte("Darwin\n")},
	})
	assert.ErrorContains(t, checkRemoteOS(ctx, darwin), `unsupported remote OS "Darwin"`)
}

func TestBuildRemoteReadouts(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource().
		withFile("/proc/meminfo", "MemTotal: 4000000 kB\nMemFree: 1000000 kB\nBuffers: 100000 kB\nCached: 900000 kB\n").
		withFile("/proc/sys/kernel/hostname", "fallback\n").
		withCommand("deploy\n", "id", "-un").
		withCommand("web-01\n", "uname", "-n").
		withCommand("1: lo    inet 127.0.0.1/8 scope host lo\n2: ens3    inet 203.0.113.7/24 scope global ens3\n", "ip", "-o", "-4", "addr", "show").
		withCommand("bash\nglibc\nlinux\n", "pacman", "-Qq").
		withFile("/sys/class/backlight/intel_backlight/brightness", "5\n").
		withFile("/sys/class/backlight/intel_backlight/max_brightness", "10\n")
	r := buildRemoteReadouts(src)

	used, err := r.memory.Used(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000000), used)

	user, err := r.general.Username(ctx)
	require.NoError(t, err)
	assert.Equal(t, "deploy", user)

	host, err := r.general.Hostname(ctx)
	require.NoError(t, err)
	assert.Equal(t, "web-01", host)

	ip, err := r.general.LocalIP(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)

	pkgs, err := r.packages.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, PackageCount{Manager: "pacman", Count: 3}, pkgs)

	for name, read := range map[string]func(context.Context) (string, error){
		"WindowManager":      r.general.WindowManager,
		"DesktopEnvironment": r.general.DesktopEnvironment,
		"SessionType":        r.general.SessionType,
	} {
		_, err := read(ctx)
		assert.True(t, errors.Is(err, ErrMetricNotAvailable), name)
	}
	_, err = r.general.Shell(ctx, true)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
	_, err = r.general.Backlight(ctx)
	assert.ErrorIs(t, err, ErrMetricNotAvailable)
}
