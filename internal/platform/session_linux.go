//go:build linux && !android

package platform

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/coreos/go-systemd/v22/login1"
)

// logindSession implements sessionLookup by asking systemd-logind for the
// Type property of the caller's session. The D-Bus connection is opened on
// first use and kept until Close.
type logindSession struct {
	mu       sync.Mutex
	conn     *login1.Conn
	initDone bool
	initErr  error
	getenv   func(string) string
}

func newLogindSession(getenv func(string) string) *logindSession {
	return &logindSession{getenv: getenv}
}

func (s *logindSession) ensureInit() error {
	if s.initDone {
		return s.initErr
	}
	s.initDone = true
	conn, err := login1.New()
	if err != nil {
		s.initErr = NotAvailable(fmt.Sprintf("logind is not reachable: %v", err))
		return s.initErr
	}
	s.conn = conn
	return nil
}

func (s *logindSession) SessionType(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureInit(); err != nil {
		return "", err
	}
	// "auto" resolves to the session of the calling process.
	id := "auto"
	if s.getenv != nil {
		if env := s.getenv("XDG_SESSION_ID"); env != "" {
			id = env
		}
	}
	sessionPath, err := s.conn.GetSession(id)
	if err != nil {
		return "", NotAvailable(fmt.Sprintf("no logind session %q: %v", id, err))
	}
	prop, err := s.conn.GetSessionPropertyContext(ctx, sessionPath, "Type")
	if err != nil {
		return "", BackendError("reading session type from logind", err)
	}
	t, ok := prop.Value().(string)
	if !ok {
		return "", Other("logind session Type is not a string", nil)
	}
	t = strings.TrimSpace(t)
	if t == "" || t == "unspecified" {
		return "", NotAvailable("logind does not know the session type")
	}
	return t, nil
}

func (s *logindSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.initDone = false
	s.initErr = nil
	return nil
}
