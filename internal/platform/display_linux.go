//go:build linux && !android

package platform

import (
	"context"
)

// linuxDisplay picks the window manager source by session type: the EWMH
// hints under X11, a compositor scan under Wayland.
type linuxDisplay struct {
	x11        *x11Display
	compositor procfsCompositor
	session    sessionLookup
}

func (d *linuxDisplay) WindowManager(ctx context.Context) (string, error) {
	if d.session != nil {
		if t, err := d.session.SessionType(ctx); err == nil && normalizeWord(t) == "wayland" {
			return d.compositor.WindowManager(ctx)
		}
	}
	wm, err := d.x11.WindowManager(ctx)
	if err == nil {
		return wm, nil
	}
	// Xwayland sessions without XDG_SESSION_TYPE still have a compositor.
	if alt, altErr := d.compositor.WindowManager(ctx); altErr == nil {
		return alt, nil
	}
	return "", AsReadoutError(err)
}

func (d *linuxDisplay) Resolution(ctx context.Context) (string, error) {
	return d.x11.Resolution(ctx)
}
