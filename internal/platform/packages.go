package platform

import (
	"context"
	"path/filepath"
	"strings"
)

// packageManager describes how to count the packages of one manager.
type packageManager struct {
	// name is the display name reported alongside the count.
	name string
	// exe is looked up on the executable search path.
	exe string
	// args produce one line per installed package.
	args []string
	// skip drops leading header lines from the listing.
	skip int
	// keep filters lines by a manager-specific status marker; nil keeps all.
	keep func(line string) bool
	// count replaces the listing with a custom counter when set.
	count func(ctx context.Context, src Source) (int, error)
}

// probePackages implements PackageReadout by probing managers in a fixed
// priority order. The first manager found on the search path wins and its
// count is never combined with another manager's.
type probePackages struct {
	src      Source
	managers []packageManager
}

func newProbePackages(src Source, managers []packageManager) *probePackages {
	return &probePackages{src: src, managers: managers}
}

func (p *probePackages) Count(ctx context.Context) (PackageCount, error) {
	for _, m := range p.managers {
		if _, err := p.src.LookPath(ctx, m.exe); err != nil {
			continue
		}
		n, err := m.countWith(ctx, p.src)
		if err != nil {
			return PackageCount{}, err
		}
		return PackageCount{Manager: m.name, Count: n}, nil
	}
	return PackageCount{}, NotAvailable("no supported package manager found")
}

func (m packageManager) countWith(ctx context.Context, src Source) (int, error) {
	if m.count != nil {
		return m.count(ctx, src)
	}
	out, err := src.Run(ctx, m.exe, m.args...)
	if err != nil {
		return 0, FromProbeError(m.exe, err)
	}
	return countListing(out, m.skip, m.keep), nil
}

// countListing counts the non-empty lines of a listing after dropping skip
// header lines and applying keep.
func countListing(out []byte, skip int, keep func(string) bool) int {
	seen := 0
	return countLines(out, func(line string) bool {
		seen++
		if seen <= skip {
			return false
		}
		return keep == nil || keep(line)
	})
}

func hasPrefix(prefix string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, prefix) }
}

// countDirEntries counts subdirectories of dir, ignoring the names in exclude.
func countDirEntries(dir string, exclude ...string) func(context.Context, Source) (int, error) {
	return func(ctx context.Context, src Source) (int, error) {
		names, err := src.ReadDir(ctx, dir)
		if err != nil {
			return 0, FromOSError(dir, err)
		}
		n := 0
	next:
		for _, name := range names {
			for _, ex := range exclude {
				if name == ex {
					continue next
				}
			}
			n++
		}
		return n, nil
	}
}

// linuxPackageManagers is the Linux probing order.
var linuxPackageManagers = []packageManager{
	{name: "pacman", exe: "pacman", args: []string{"-Qq"}},
	{name: "dpkg", exe: "dpkg-query", args: []string{"-W", "-f=${db:Status-Abbrev}\n"}, keep: hasPrefix("ii")},
	{name: "rpm", exe: "rpm", args: []string{"-qa"}},
	{name: "xbps", exe: "xbps-query", args: []string{"-l"}},
	{name: "apk", exe: "apk", args: []string{"info"}},
	{name: "eopkg", exe: "eopkg", args: []string{"list-installed"}},
	{name: "flatpak", exe: "flatpak", args: []string{"list", "--app"}},
	{name: "snap", exe: "snap", args: []string{"list"}, skip: 1},
}

// androidPackageManagers is the Android probing order. Termux ships dpkg.
var androidPackageManagers = []packageManager{
	{name: "dpkg", exe: "dpkg-query", args: []string{"-W", "-f=${db:Status-Abbrev}\n"}, keep: hasPrefix("ii")},
	{name: "pm", exe: "pm", args: []string{"list", "packages"}, keep: hasPrefix("package:")},
}

// darwinPackageManagers is the macOS probing order.
var darwinPackageManagers = []packageManager{
	{name: "brew", exe: "brew", args: []string{"list", "--formula", "-1"}},
	{name: "port", exe: "port", args: []string{"installed"}, keep: hasPrefix(" ")},
}

// netbsdPackageManagers is the NetBSD probing order.
var netbsdPackageManagers = []packageManager{
	{name: "pkg_info", exe: "pkg_info"},
	{name: "pkgin", exe: "pkgin", args: []string{"list"}},
}

// windowsPackageManagers returns the Windows probing order. Scoop keeps one
// directory per installed app under its root, including scoop itself.
func windowsPackageManagers(scoopRoot string) []packageManager {
	return []packageManager{
		{name: "choco", exe: "choco", args: []string{"list", "--limit-output"}},
		{name: "scoop", exe: "scoop", count: countDirEntries(filepath.Join(scoopRoot, "apps"), "scoop")},
	}
}
