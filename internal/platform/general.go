package platform

import (
	"context"
	"net/netip"
	"strings"
)

// procInfo identifies one process in the ancestor chain.
type procInfo struct {
	Name string
	Exe  string
}

// processTree walks the ancestors of the running process. hops is 1 for the
// parent, 2 for the grandparent.
type processTree interface {
	Ancestor(ctx context.Context, hops int) (procInfo, error)
}

// identityLookup resolves the current user and host names.
type identityLookup interface {
	Username(ctx context.Context) (string, error)
	Hostname(ctx context.Context) (string, error)
}

// displayServer answers questions about the graphical session.
type displayServer interface {
	WindowManager(ctx context.Context) (string, error)
	Resolution(ctx context.Context) (string, error)
}

// sessionLookup resolves the display session type ("x11", "wayland", "tty").
type sessionLookup interface {
	SessionType(ctx context.Context) (string, error)
}

// netInterface is one network interface and its addresses in CIDR form.
type netInterface struct {
	Name     string
	Loopback bool
	Addrs    []string
}

// interfaceLister enumerates network interfaces.
type interfaceLister interface {
	Interfaces(ctx context.Context) ([]netInterface, error)
}

// processAncestor resolves the hops-th ancestor through tree and formats it.
func processAncestor(ctx context.Context, tree processTree, hops int, short bool) (string, error) {
	if tree == nil {
		return "", NotAvailable("process ancestry is not available")
	}
	info, err := tree.Ancestor(ctx, hops)
	if err != nil {
		return "", AsReadoutError(err)
	}
	if short || info.Exe == "" {
		if info.Name == "" {
			return "", NotAvailable("process has no name")
		}
		return info.Name, nil
	}
	return info.Exe, nil
}

// selectIPv4 returns the first IPv4 address of the interface named want or,
// when want is empty, of the first non-loopback interface that has one.
func selectIPv4(ifaces []netInterface, want string) (string, error) {
	for _, iface := range ifaces {
		if want != "" && iface.Name != want {
			continue
		}
		if want == "" && iface.Loopback {
			continue
		}
		for _, addr := range iface.Addrs {
			if ip, ok := parseIPv4(addr); ok {
				return ip, nil
			}
		}
		if want != "" {
			return "", NotAvailable(want + " has no IPv4 address")
		}
	}
	if want != "" {
		return "", NotAvailable("interface " + want + " not found")
	}
	return "", NotAvailable("no non-loopback IPv4 address")
}

func parseIPv4(addr string) (string, bool) {
	if prefix, err := netip.ParsePrefix(addr); err == nil {
		ip := prefix.Addr()
		return ip.String(), ip.Is4()
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return "", false
	}
	return ip.String(), ip.Is4()
}

// desktopFromEnv reads the desktop environment from the XDG variables.
// XDG_CURRENT_DESKTOP may hold a colon-separated list; the first entry wins.
func desktopFromEnv(getenv func(string) string) (string, error) {
	if getenv == nil {
		return "", NotAvailable("session environment is not available")
	}
	if current := getenv("XDG_CURRENT_DESKTOP"); current != "" {
		first, _, _ := strings.Cut(current, ":")
		if first = strings.TrimSpace(first); first != "" {
			return first, nil
		}
	}
	if session := strings.TrimSpace(getenv("DESKTOP_SESSION")); session != "" {
		return session, nil
	}
	return "", NotAvailable("no desktop environment in the session")
}

// envSession implements sessionLookup from XDG_SESSION_TYPE.
type envSession struct {
	getenv func(string) string
}

func (s envSession) SessionType(context.Context) (string, error) {
	if s.getenv == nil {
		return "", NotAvailable("session environment is not available")
	}
	if t := strings.TrimSpace(s.getenv("XDG_SESSION_TYPE")); t != "" {
		return t, nil
	}
	return "", NotAvailable("XDG_SESSION_TYPE is not set")
}

// chainSession tries each lookup in order and returns the first success.
type chainSession []sessionLookup

func (c chainSession) SessionType(ctx context.Context) (string, error) {
	var firstErr error
	for _, s := range c {
		t, err := s.SessionType(ctx)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = NotAvailable("no session lookup configured")
	}
	return "", AsReadoutError(firstErr)
}
