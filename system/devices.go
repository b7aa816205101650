package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/net"
)

// HostScanner enumerates processors, disk partitions and network interfaces.
// A section that cannot be read is reported inline instead of failing the scan.
type HostScanner struct{}

func NewHostScanner() *HostScanner {
	return &HostScanner{}
}

func (hs *HostScanner) Scan(ctx context.Context) (string, error) {
	var sb strings.Builder

	if infos, err := cpu.InfoWithContext(ctx); err != nil {
		fmt.Fprintf(&sb, "CPU scan failed: %v\n", err)
	} else {
		for _, info := range infos {
			fmt.Fprintf(&sb, "CPU device: %d\n", info.CPU)
			fmt.Fprintf(&sb, "vendorID=%s, model=%s, cores=%d, mhz=%.0f\n", info.VendorID, info.ModelName, info.Cores, info.Mhz)
		}
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if partitions, err := disk.PartitionsWithContext(ctx, false); err != nil {
		fmt.Fprintf(&sb, "Disk scan failed: %v\n", err)
	} else {
		for _, p := range partitions {
			fmt.Fprintf(&sb, "Disk device: %s\n", p.Device)
			fmt.Fprintf(&sb, "mountpoint=%s, fstype=%s\n", p.Mountpoint, p.Fstype)
		}
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if ifaces, err := net.InterfacesWithContext(ctx); err != nil {
		fmt.Fprintf(&sb, "Net scan failed: %v\n", err)
	} else {
		for _, iface := range ifaces {
			fmt.Fprintf(&sb, "Net device: %d\n", iface.Index)
			fmt.Fprintf(&sb, "name=%s, hw=%s, mtu=%d\n", iface.Name, iface.HardwareAddr, iface.MTU)
		}
	}

	return sb.String(), nil
}
