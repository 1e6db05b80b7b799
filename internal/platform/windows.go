//go:build windows

package platform

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"github.com/shirou/gopsutil/v4/cpu"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var (
	modKernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procGlobalMemoryStatusEx = modKernel32.NewProc("GlobalMemoryStatusEx")
	procGetSystemPowerStatus = modKernel32.NewProc("GetSystemPowerStatus")

	modUser32            = windows.NewLazySystemDLL("user32.dll")
	procGetSystemMetrics = modUser32.NewProc("GetSystemMetrics")
)

// NewWindowsPlatform creates the Windows backend set.
func NewWindowsPlatform(opts ...Option) Platform {
	o := buildOptions(opts)
	return newReadoutSet("windows", func(ctx context.Context) (readouts, error) {
		src := newLocalSource(o)
		return readouts{
			battery:  windowsBattery{},
			kernel:   windowsKernel{},
			memory:   windowsMemory{},
			product:  windowsProduct{},
			packages: newProbePackages(src, windowsPackageManagers(scoopRoot())),
			general: &windowsGeneral{
				procs:  newGopsutilTree(),
				ifaces: hostInterfaces{},
			},
		}, nil
	})
}

func scoopRoot() string {
	if root := os.Getenv("SCOOP"); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.Getenv("USERPROFILE"), "scoop")
	}
	return filepath.Join(home, "scoop")
}

// readRegistryString reads a REG_SZ value under HKEY_LOCAL_MACHINE.
func readRegistryString(path, name string) (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return "", FromOSError(`HKLM\`+path, err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", FromOSError(`HKLM\`+path+`\`+name, err)
	}
	if v = strings.TrimSpace(v); v == "" {
		return "", NotAvailable(name + " is empty")
	}
	return v, nil
}

// memoryStatusEx matches the MEMORYSTATUSEX structure.
type memoryStatusEx struct {
	dwLength                uint32
	dwMemoryLoad            uint32
	ullTotalPhys            uint64
	ullAvailPhys            uint64
	ullTotalPageFile        uint64
	ullAvailPageFile        uint64
	ullTotalVirtual         uint64
	ullAvailVirtual         uint64
	ullAvailExtendedVirtual uint64
}

// windowsMemory implements MemoryReadout with GlobalMemoryStatusEx.
// Windows has no separate buffer, cache or reclaimable counters.
type windowsMemory struct {
	UnsupportedMemory
}

func (windowsMemory) status() (*memoryStatusEx, error) {
	var st memoryStatusEx
	st.dwLength = uint32(unsafe.Sizeof(st))
	ret, _, err := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&st)))
	if ret == 0 {
		return nil, BackendError("GlobalMemoryStatusEx failed", err)
	}
	return &st, nil
}

func (m windowsMemory) Total(context.Context) (uint64, error) {
	st, err := m.status()
	if err != nil {
		return 0, err
	}
	return st.ullTotalPhys / 1024, nil
}

func (m windowsMemory) Free(context.Context) (uint64, error) {
	st, err := m.status()
	if err != nil {
		return 0, err
	}
	return st.ullAvailPhys / 1024, nil
}

func (m windowsMemory) Used(context.Context) (uint64, error) {
	st, err := m.status()
	if err != nil {
		return 0, err
	}
	return saturatingSub(st.ullTotalPhys, st.ullAvailPhys) / 1024, nil
}

const (
	acLineOnline          = 0x01
	batteryFlagCharging   = 0x08
	batteryFlagNoBattery  = 0x80
	batteryFlagUnknown    = 0xFF
	batteryPercentUnknown = 255
)

// systemPowerStatus matches the SYSTEM_POWER_STATUS structure.
type systemPowerStatus struct {
	ACLineStatus        byte
	BatteryFlag         byte
	BatteryLifePercent  byte
	SystemStatusFlag    byte
	BatteryLifeTime     uint32
	BatteryFullLifeTime uint32
}

// windowsBattery implements BatteryReadout with GetSystemPowerStatus.
type windowsBattery struct {
	UnsupportedBattery
}

func (windowsBattery) status() (*systemPowerStatus, error) {
	var st systemPowerStatus
	ret, _, err := procGetSystemPowerStatus.Call(uintptr(unsafe.Pointer(&st)))
	if ret == 0 {
		return nil, BackendError("GetSystemPowerStatus failed", err)
	}
	if st.BatteryFlag == batteryFlagUnknown || st.BatteryFlag&batteryFlagNoBattery != 0 {
		return nil, NotAvailable("no battery present")
	}
	return &st, nil
}

func (b windowsBattery) Percentage(context.Context) (uint8, error) {
	st, err := b.status()
	if err != nil {
		return 0, err
	}
	if st.BatteryLifePercent == batteryPercentUnknown {
		return 0, NotAvailable("battery charge is unknown")
	}
	return st.BatteryLifePercent, nil
}

func (b windowsBattery) Status(context.Context) (BatteryState, error) {
	st, err := b.status()
	if err != nil {
		return BatteryUnknown, err
	}
	switch {
	case st.BatteryFlag&batteryFlagCharging != 0:
		return BatteryCharging, nil
	case st.ACLineStatus == acLineOnline && st.BatteryLifePercent == 100:
		return BatteryFull, nil
	case st.ACLineStatus == acLineOnline:
		return BatteryUnknown, nil
	default:
		return BatteryDischarging, nil
	}
}

// windowsKernel implements KernelReadout with RtlGetVersion.
type windowsKernel struct{}

func (windowsKernel) OSRelease(context.Context) (string, error) {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
}

func (windowsKernel) OSType(context.Context) (string, error) {
	return "Windows NT", nil
}

func (k windowsKernel) PrettyKernel(ctx context.Context) (string, error) {
	return prettyKernel(ctx, k)
}

// windowsProduct implements ProductReadout from the SMBIOS copy the firmware
// leaves in the registry.
type windowsProduct struct{}

const biosKey = `HARDWARE\DESCRIPTION\System\BIOS`

func (windowsProduct) Vendor(context.Context) (string, error) {
	return readRegistryString(biosKey, "SystemManufacturer")
}

func (windowsProduct) Family(context.Context) (string, error) {
	return readRegistryString(biosKey, "SystemFamily")
}

func (windowsProduct) Name(context.Context) (string, error) {
	return readRegistryString(biosKey, "SystemProductName")
}

func (windowsProduct) Version(context.Context) (string, error) {
	return readRegistryString(biosKey, "SystemVersion")
}

// windowsGeneral implements GeneralReadout with Win32 calls and the registry.
type windowsGeneral struct {
	UnsupportedGeneral
	procs  processTree
	ifaces interfaceLister
}

func (*windowsGeneral) Username(context.Context) (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		// DOMAIN\user
		if _, name, ok := strings.Cut(u.Username, `\`); ok {
			return name, nil
		}
		return u.Username, nil
	}
	if name := os.Getenv("USERNAME"); name != "" {
		return name, nil
	}
	return "", NotAvailable("current user has no name")
}

func (*windowsGeneral) Hostname(context.Context) (string, error) {
	name, err := windows.ComputerName()
	if err != nil {
		return "", BackendError("GetComputerName failed", err)
	}
	return name, nil
}

const currentVersionKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`

func (*windowsGeneral) OperatingSystem(context.Context) (string, error) {
	name, err := readRegistryString(currentVersionKey, "ProductName")
	if err != nil {
		return "", err
	}
	// Windows 11 still reports "Windows 10" in ProductName.
	if v := windows.RtlGetVersion(); v.BuildNumber >= 22000 {
		name = strings.Replace(name, "Windows 10", "Windows 11", 1)
	}
	if display, err := readRegistryString(currentVersionKey, "DisplayVersion"); err == nil {
		name += " (" + display + ")"
	}
	return name, nil
}

func (g *windowsGeneral) Shell(ctx context.Context, short bool) (string, error) {
	return processAncestor(ctx, g.procs, 1, short)
}

func (g *windowsGeneral) Terminal(ctx context.Context, short bool) (string, error) {
	return processAncestor(ctx, g.procs, 2, short)
}

func (*windowsGeneral) CPUModelName(context.Context) (string, error) {
	return readRegistryString(`HARDWARE\DESCRIPTION\System\CentralProcessor\0`, "ProcessorNameString")
}

func (*windowsGeneral) CPUCores(context.Context) (int, error) {
	return runtime.NumCPU(), nil
}

// CPUUsage samples processor time over a short interval; Windows has no
// load average.
func (*windowsGeneral) CPUUsage(ctx context.Context) (int, error) {
	pct, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false)
	if err != nil {
		return 0, BackendError("sampling processor time", err)
	}
	if len(pct) == 0 {
		return 0, NotAvailable("no processor time sample")
	}
	return clampPercent(pct[0]), nil
}

func (*windowsGeneral) Uptime(context.Context) (time.Duration, error) {
	return windows.DurationSinceBoot().Truncate(time.Second), nil
}

func (g *windowsGeneral) LocalIP(ctx context.Context, iface string) (string, error) {
	list, err := g.ifaces.Interfaces(ctx)
	if err != nil {
		return "", AsReadoutError(err)
	}
	return selectIPv4(list, iface)
}

const (
	smCxScreen = 0
	smCyScreen = 1
)

// Resolution reports the primary display.
func (*windowsGeneral) Resolution(context.Context) (string, error) {
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return "", NotAvailable("no primary display")
	}
	return fmt.Sprintf("%dx%d", w, h), nil
}
