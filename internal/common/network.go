package common

import "net"

// AccessibleHosts returns the host names the server can be reached on:
// localhost, the loopback address and the first non-loopback IPv4 address
// of an interface that is up.
func AccessibleHosts() []string {
	hosts := []string{"localhost", "127.0.0.1"}

	interfaces, err := net.Interfaces()
	if err != nil {
		return hosts
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 ||
			iface.Flags&net.FlagUp == 0 ||
			iface.Flags&net.FlagPointToPoint != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
				continue
			}
			return append(hosts, ipnet.IP.String())
		}
	}
	return hosts
}
