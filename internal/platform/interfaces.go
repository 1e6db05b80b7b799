package platform

import (
	"context"
	"slices"

	psnet "github.com/shirou/gopsutil/v4/net"
)

// hostInterfaces implements interfaceLister for the running host.
type hostInterfaces struct{}

func (hostInterfaces) Interfaces(ctx context.Context) ([]netInterface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, BackendError("listing network interfaces", err)
	}
	ifaces := make([]netInterface, 0, len(stats))
	for _, st := range stats {
		iface := netInterface{
			Name:     st.Name,
			Loopback: slices.Contains(st.Flags, "loopback"),
		}
		for _, a := range st.Addrs {
			iface.Addrs = append(iface.Addrs, a.Addr)
		}
		ifaces = append(ifaces, iface)
	}
	return ifaces, nil
}
