//go:build linux || darwin || netbsd

package platform

import (
	"context"
	"os"
	"os/user"
	"strings"

	"golang.org/x/sys/unix"
)

// unixIdentity implements identityLookup with uname(2) and the user database.
type unixIdentity struct{}

func (unixIdentity) Username(context.Context) (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	// Static builds on some systems cannot consult NSS.
	if name := os.Getenv("USER"); name != "" {
		return name, nil
	}
	if err != nil {
		return "", BackendError("looking up current user", err)
	}
	return "", NotAvailable("current user has no name")
}

func (unixIdentity) Hostname(context.Context) (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", FromOSError("uname", err)
	}
	name := unix.ByteSliceToString(uts.Nodename[:])
	if name = strings.TrimSpace(name); name == "" {
		return "", NotAvailable("uname reports no node name")
	}
	return name, nil
}

// unameKernel implements KernelReadout with uname(2).
type unameKernel struct{}

func (unameKernel) uname() (unix.Utsname, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return uts, FromOSError("uname", err)
	}
	return uts, nil
}

func (k unameKernel) OSRelease(context.Context) (string, error) {
	uts, err := k.uname()
	if err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Release[:]), nil
}

func (k unameKernel) OSType(context.Context) (string, error) {
	uts, err := k.uname()
	if err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Sysname[:]), nil
}

func (k unameKernel) PrettyKernel(ctx context.Context) (string, error) {
	return prettyKernel(ctx, k)
}
