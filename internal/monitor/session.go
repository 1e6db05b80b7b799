package monitor

import (
	"context"
	"strings"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// desktopIsWindowManager is the Warning reason for a session that runs a bare window manager.
const desktopIsWindowManager = "the desktop environment is the window manager"

// sessionNames holds the shared results of the window manager and desktop
// environment fields.
type sessionNames struct {
	windowManager Readout
	desktop       Readout
}

func (c *collection) sessionNames(ctx context.Context) *sessionNames {
	if c.session == nil {
		c.session = resolveSession(ctx, c.platform.General())
	}
	return c.session
}

// resolveSession reads both names independently. When they are the same
// name, the desktop field becomes a Warning and the window manager carries
// the session type, e.g. "Sway (Wayland)".
func resolveSession(ctx context.Context, g platform.GeneralReadout) *sessionNames {
	wm, wmErr := g.WindowManager(ctx)
	de, deErr := g.DesktopEnvironment(ctx)

	s := &sessionNames{
		windowManager: result(WindowManager)(wm, wmErr),
		desktop:       result(DesktopEnvironment)(de, deErr),
	}
	if wmErr != nil || deErr != nil || !strings.EqualFold(strings.TrimSpace(wm), strings.TrimSpace(de)) {
		return s
	}

	s.desktop = failure(DesktopEnvironment, platform.Warning(desktopIsWindowManager))
	if session, err := g.SessionType(ctx); err == nil && session != "" {
		s.windowManager = success(WindowManager, wm+" ("+session+")")
	}
	return s
}
