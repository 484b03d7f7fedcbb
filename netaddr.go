package streamslice

import (
	"net"
	"strings"
)

// getAllIPs 列出可访问的IPv4地址，第一个固定为localhost
func getAllIPs() []string {
	ipList := []string{"localhost"}
	seen := map[string]struct{}{"localhost": {}}

	interfaces, err := net.Interfaces()
	if err != nil {
		return ipList
	}
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if isVirtualInterface(iface.Name) {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.To4() == nil {
				continue
			}
			s := ip.String()
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				ipList = append(ipList, s)
			}
		}
	}
	return ipList
}

var virtualKeywords = []string{
	"virtual", "vmware", "vbox", "docker", "bridge",
	"tunnel", "hyper-v", "veth", "utun", "tap",
	"virbr", "kube-", "cni-", "wsl",
}

// isVirtualInterface 判断是否为虚拟网卡（Docker/VMware/桥接/隧道等）
func isVirtualInterface(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range virtualKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
