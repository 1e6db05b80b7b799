//go:build (linux && !android) || netbsd

package platform

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// x11Display implements displayServer over the X11 protocol.
// It caches the connection and interned atoms; the connection is opened on
// first use and released by Close.
type x11Display struct {
	mu       sync.Mutex
	conn     *xgb.Conn
	atoms    map[string]xproto.Atom
	initDone bool
	initErr  error
	randrOK  bool
}

func newX11Display() *x11Display {
	return &x11Display{atoms: make(map[string]xproto.Atom)}
}

// ensureInit opens the connection once. A failed attempt is remembered so a
// host without a display is not dialled repeatedly.
func (d *x11Display) ensureInit() error {
	if d.initDone {
		return d.initErr
	}
	d.initDone = true

	conn, err := xgb.NewConn()
	if err != nil {
		d.initErr = NotAvailable(fmt.Sprintf("no X11 display: %v", err))
		return d.initErr
	}
	d.conn = conn
	d.randrOK = randr.Init(conn) == nil
	return nil
}

func (d *x11Display) getAtom(name string) (xproto.Atom, error) {
	if atom, ok := d.atoms[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(d.conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, BackendError("interning "+name, err)
	}
	if reply.Atom == xproto.AtomNone {
		return 0, NotAvailable(name + " is not known to the X server")
	}
	d.atoms[name] = reply.Atom
	return reply.Atom, nil
}

func (d *x11Display) property(win xproto.Window, name string) (*xproto.GetPropertyReply, error) {
	atom, err := d.getAtom(name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(d.conn, false, win, atom, xproto.GetPropertyTypeAny, 0, 1024).Reply()
	if err != nil {
		return nil, BackendError("reading "+name, err)
	}
	if reply.ValueLen == 0 {
		return nil, NotAvailable(name + " is not set")
	}
	return reply, nil
}

func (d *x11Display) root() xproto.Window {
	return xproto.Setup(d.conn).DefaultScreen(d.conn).Root
}

// WindowManager follows the EWMH _NET_SUPPORTING_WM_CHECK window and reads
// its _NET_WM_NAME.
func (d *x11Display) WindowManager(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureInit(); err != nil {
		return "", err
	}
	check, err := d.property(d.root(), "_NET_SUPPORTING_WM_CHECK")
	if err != nil {
		return "", err
	}
	if check.Format != 32 || len(check.Value) < 4 {
		return "", Other("malformed _NET_SUPPORTING_WM_CHECK", nil)
	}
	wmWin := xproto.Window(xgb.Get32(check.Value))

	name, err := d.property(wmWin, "_NET_WM_NAME")
	if err != nil {
		return "", err
	}
	wm := strings.TrimRight(string(name.Value), "\x00")
	if wm == "" {
		return "", NotAvailable("window manager has no name")
	}
	return wm, nil
}

// Resolution lists every enabled CRTC through RandR, falling back to the
// root window size when the extension is missing.
func (d *x11Display) Resolution(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureInit(); err != nil {
		return "", err
	}
	root := d.root()
	if d.randrOK {
		if res, err := d.randrResolution(root); err == nil {
			return res, nil
		}
	}
	screen := xproto.Setup(d.conn).DefaultScreen(d.conn)
	return fmt.Sprintf("%dx%d", screen.WidthInPixels, screen.HeightInPixels), nil
}

func (d *x11Display) randrResolution(root xproto.Window) (string, error) {
	resources, err := randr.GetScreenResourcesCurrent(d.conn, root).Reply()
	if err != nil {
		return "", BackendError("querying RandR resources", err)
	}
	var sizes []string
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(d.conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info.Mode == 0 || info.Width == 0 {
			continue
		}
		sizes = append(sizes, fmt.Sprintf("%dx%d", info.Width, info.Height))
	}
	if len(sizes) == 0 {
		return "", NotAvailable("no active CRTC")
	}
	return strings.Join(sizes, ", "), nil
}

// Close releases the X11 connection.
func (d *x11Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	d.initDone = false
	d.initErr = nil
	return nil
}
