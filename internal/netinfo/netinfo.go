// Package netinfo finds the address under which other devices on the local
// network can reach this host.
package netinfo

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Unknown is reported to clients when no address could be found.
const Unknown = "Unable to get IP"

// ErrNoAddress is returned when no interface carries a usable IPv4 address.
var ErrNoAddress = errors.New("no non-loopback IPv4 address found")

// LocalIP returns the first private (or else any non-loopback) IPv4 address
// of an interface that is up.
func LocalIP(ctx context.Context) (string, error) {
	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	return pickAddress(ifaces)
}

func pickAddress(ifaces psnet.InterfaceStatList) (string, error) {
	var fallback netip.Addr
	for _, iface := range ifaces {
		if !slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback") {
			continue
		}
		for _, a := range iface.Addrs {
			addr, ok := parseAddr(a.Addr)
			if !ok || !addr.Is4() || addr.IsLoopback() || addr.IsLinkLocalUnicast() {
				continue
			}
			if addr.IsPrivate() {
				return addr.String(), nil
			}
			if !fallback.IsValid() {
				fallback = addr
			}
		}
	}
	if fallback.IsValid() {
		return fallback.String(), nil
	}
	return "", ErrNoAddress
}

// parseAddr accepts both CIDR ("192.168.1.5/24") and plain addresses.
func parseAddr(s string) (netip.Addr, bool) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Addr{}, false
		}
		return p.Addr(), true
	}
	addr, err := netip.ParseAddr(s)
	return addr, err == nil
}
