package platform

import (
	"context"
)

type stubTree map[int]procInfo

func (s stubTree) Ancestor(_ context.Context, hops int) (procInfo, error) {
	info, ok := s[hops]
	if !ok {
		return procInfo{}, NotAvailable("no such ancestor")
	}
	return info, nil
}

type stubIdentity struct {
	user, host string
	err        error
}

func (s stubIdentity) Username(context.Context) (string, error) { return s.user, s.err }
func (s stubIdentity) Hostname(context.Context) (string, error) { return s.host, s.err }

type stubDisplay struct {
	wm, res string
	err     error
}

func (s stubDisplay) WindowManager(context.Context) (string, error) { return s.wm, s.err }
func (s stubDisplay) Resolution(context.Context) (string, error)    { return s.res, s.err }

type stubSession struct {
	kind string
	err  error
}

func (s stubSession) SessionType(context.Context) (string, error) { return s.kind, s.err }

type stubInterfaces []netInterface

func (s stubInterfaces) Interfaces(context.Context) ([]netInterface, error) { return s, nil }

func mapEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}
