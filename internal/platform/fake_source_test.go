package platform

import (
	"context"
	"fmt"
	"io/fs"
	"os/exec"
	"path"
	"sort"
	"strings"
)

// fakeSource is an in-memory Source. Files are keyed by absolute path,
// executables by name and command output by the joined command line.
type fakeSource struct {
	files    map[string]string
	exes     map[string]bool
	outputs  map[string]string
	failures map[string]error
	calls    []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		files:    make(map[string]string),
		exes:     make(map[string]bool),
		outputs:  make(map[string]string),
		failures: make(map[string]error),
	}
}

func (s *fakeSource) withFile(p, content string) *fakeSource {
	s.files[p] = content
	return s
}

// withCommand registers an executable and the output of one invocation.
func (s *fakeSource) withCommand(output, name string, args ...string) *fakeSource {
	s.exes[name] = true
	s.outputs[commandKey(name, args...)] = output
	return s
}

func (s *fakeSource) withFailure(err error, name string, args ...string) *fakeSource {
	s.exes[name] = true
	s.failures[commandKey(name, args...)] = err
	return s
}

func commandKey(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (s *fakeSource) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, ok := s.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

func (s *fakeSource) ReadDir(_ context.Context, dir string) ([]string, error) {
	seen := make(map[string]bool)
	prefix := strings.TrimSuffix(dir, "/") + "/"
	for p := range s.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name, _, _ := strings.Cut(rest, "/")
		seen[name] = true
	}
	if len(seen) == 0 {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *fakeSource) Exists(_ context.Context, p string) bool {
	if _, ok := s.files[p]; ok {
		return true
	}
	prefix := strings.TrimSuffix(p, "/") + "/"
	for f := range s.files {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

func (s *fakeSource) LookPath(_ context.Context, name string) (string, error) {
	if !s.exes[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return path.Join("/usr/bin", name), nil
}

func (s *fakeSource) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := commandKey(name, args...)
	s.calls = append(s.calls, key)
	if err, ok := s.failures[key]; ok {
		return nil, err
	}
	out, ok := s.outputs[key]
	if !ok {
		if !s.exes[name] {
			return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
		}
		return nil, fmt.Errorf("fakeSource: no output registered for %q", key)
	}
	return []byte(out), nil
}
