package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// exitMissing is the status the remote helpers use for "path does not exist".
const exitMissing = 66

// remoteResult is the outcome of one remote command.
type remoteResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
}

// commandRunner executes one shell command line on the remote host. A
// non-zero exit status is reported in the result, not as an error.
type commandRunner interface {
	Run(ctx context.Context, cmd string) (remoteResult, error)
}

// sshRunner runs commands in fresh SSH sessions on a shared client.
type sshRunner struct {
	client  *ssh.Client
	timeout time.Duration
}

func (r *sshRunner) Run(ctx context.Context, cmd string) (remoteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	session, err := r.client.NewSession()
	if err != nil {
		return remoteResult{}, fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmd)
	}()

	select {
	case err := <-done:
		res := remoteResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
		if err == nil {
			return res, nil
		}
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitStatus()
			return res, nil
		}
		return remoteResult{}, err
	case <-ctx.Done():
		// Make sure the remote command does not outlive the probe.
		_ = session.Signal(ssh.SIGKILL)
		_ = session.Close()
		return remoteResult{}, ctx.Err()
	}
}

// remoteSource implements Source on top of a commandRunner using only
// POSIX utilities on the remote side.
type remoteSource struct {
	runner commandRunner
	logger *slog.Logger
}

func newRemoteSource(runner commandRunner, logger *slog.Logger) *remoteSource {
	return &remoteSource{runner: runner, logger: logger}
}

func (s *remoteSource) run(ctx context.Context, what, cmd string) (remoteResult, error) {
	start := time.Now()
	res, err := s.runner.Run(ctx, cmd)
	s.logger.Debug("remote probe finished", "cmd", cmd, "code", res.Code, "elapsed", time.Since(start), "error", err)
	if err != nil {
		return res, fmt.Errorf("%s: %w", what, err)
	}
	return res, nil
}

func (s *remoteSource) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if !validatePath(path) {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}
	p := shellEscape(path)
	res, err := s.run(ctx, path, fmt.Sprintf("[ -e %s ] || exit %d; cat %s", p, exitMissing, p))
	if err != nil {
		return nil, err
	}
	return res.Stdout, resultError("read", path, res)
}

func (s *remoteSource) ReadDir(ctx context.Context, path string) ([]string, error) {
	if !validatePath(path) {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrInvalid}
	}
	p := shellEscape(path)
	res, err := s.run(ctx, path, fmt.Sprintf("[ -d %s ] || exit %d; ls -1A %s", p, exitMissing, p))
	if err != nil {
		return nil, err
	}
	if err := resultError("readdir", path, res); err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *remoteSource) Exists(ctx context.Context, path string) bool {
	if !validatePath(path) {
		return false
	}
	res, err := s.run(ctx, path, "[ -e "+shellEscape(path)+" ]")
	return err == nil && res.Code == 0
}

func (s *remoteSource) LookPath(ctx context.Context, name string) (string, error) {
	if !validCommandName(name) {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	res, err := s.run(ctx, name, "command -v "+shellEscape(name))
	if err != nil {
		return "", err
	}
	found := firstLine(res.Stdout)
	if res.Code != 0 || found == "" {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return found, nil
}

func (s *remoteSource) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if !validCommandName(name) {
		return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	res, err := s.run(ctx, name, "LC_ALL=C "+shellCommand(name, args...))
	if err != nil {
		return nil, err
	}
	switch res.Code {
	case 0:
		return res.Stdout, nil
	case 127:
		return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	default:
		return res.Stdout, &remoteExitError{Name: name, Code: res.Code, Stderr: string(bytes.TrimSpace(res.Stderr))}
	}
}

// remoteExitError reports a remote command that exited non-zero.
type remoteExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *remoteExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d (stderr: %s)", e.Name, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

func resultError(op, path string, res remoteResult) error {
	switch res.Code {
	case 0:
		return nil
	case exitMissing:
		return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	default:
		msg := strings.TrimSpace(string(res.Stderr))
		if strings.Contains(msg, "Permission denied") {
			return &fs.PathError{Op: op, Path: path, Err: fs.ErrPermission}
		}
		return &fs.PathError{Op: op, Path: path, Err: fmt.Errorf("exit status %d: %s", res.Code, msg)}
	}
}
