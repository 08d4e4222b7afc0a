// Package discovery scans a local subnet for reachable hasher-server
// workers by probing each candidate address's HTTP health endpoint.
package discovery

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"hasher/internal/client"
)

// DiscoveryResult describes one probed address.
type DiscoveryResult struct {
	Address    string `json:"address"`
	IPAddress  string `json:"ip_address"`
	Port       int    `json:"port"`
	LatencyMs  int64  `json:"latency_ms"`
	Responding bool   `json:"responding"`
	Error      string `json:"error,omitempty"`
}

// DiscoveryConfig holds configuration for network discovery
type DiscoveryConfig struct {
	Subnet          string        `json:"subnet"`           // CIDR notation, e.g., "192.168.1.0/24"
	Port            int           `json:"port"`             // hasher-server HTTP port (default 8545)
	Timeout         time.Duration `json:"timeout"`          // connection timeout per host
	ConcurrentScans int           `json:"concurrent_scans"` // number of concurrent workers
	SkipLocalhost   bool          `json:"skip_localhost"`   // skip localhost scanning
}

// NewDiscoveryConfig creates a default discovery configuration
func NewDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		Subnet:          "",
		Port:            8545,
		Timeout:         2 * time.Second,
		ConcurrentScans: 20,
		SkipLocalhost:   false,
	}
}

// DiscoverServers scans the network for hasher-server instances
func DiscoverServers(config DiscoveryConfig) ([]DiscoveryResult, error) {
	if config.Subnet == "" {
		subnet, err := getLocalSubnet()
		if err != nil {
			return nil, fmt.Errorf("failed to determine local subnet: %w", err)
		}
		config.Subnet = subnet
	}

	ip, ipnet, err := net.ParseCIDR(config.Subnet)
	if err != nil {
		return nil, fmt.Errorf("invalid subnet %s: %w", config.Subnet, err)
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, config.ConcurrentScans)
	results := make(chan DiscoveryResult, 100)
	var mu sync.Mutex
	var discoveries []DiscoveryResult

	var ips []string
	for ip := ip.Mask(ipnet.Mask); ipnet.Contains(ip); incrementIP(ip) {
		ips = append(ips, ip.String())
	}

	if !config.SkipLocalhost {
		localhostAddr := fmt.Sprintf("localhost:%d", config.Port)
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- probeServer(localhostAddr, "127.0.0.1", config.Port, config.Timeout)
		}()
	}

	for _, ipStr := range ips {
		if isLocalIP(ipStr) {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(ip string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			address := fmt.Sprintf("%s:%d", ip, config.Port)
			results <- probeServer(address, ip, config.Port, config.Timeout)
		}(ipStr)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		mu.Lock()
		discoveries = append(discoveries, result)
		mu.Unlock()
	}

	return discoveries, nil
}

// probeServer hits a candidate address's /healthz endpoint.
func probeServer(address, ipAddress string, port int, timeout time.Duration) DiscoveryResult {
	start := time.Now()
	result := DiscoveryResult{
		Address:    address,
		IPAddress:  ipAddress,
		Port:       port,
		Responding: false,
	}

	c := client.NewAPIClient(address)
	c.HTTPClient.Timeout = timeout

	health, err := c.Health()
	result.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Responding = health.Status == "ok"
	return result
}

// getLocalSubnet attempts to determine the local network subnet
func getLocalSubnet() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
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

			parts := strings.Split(ip.String(), ".")
			if len(parts) == 4 {
				return fmt.Sprintf("%s.%s.%s.0/24", parts[0], parts[1], parts[2]), nil
			}
		}
	}

	return "", fmt.Errorf("no suitable network interface found")
}

// incrementIP increments an IP address
func incrementIP(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

// isLocalIP checks if an IP address is local
func isLocalIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	if ip.IsLoopback() {
		return true
	}

	interfaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ifaceIP net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ifaceIP = v.IP
			case *net.IPAddr:
				ifaceIP = v.IP
			}

			if ifaceIP != nil && ifaceIP.Equal(ip) {
				return true
			}
		}
	}

	return false
}

// FindBestServer selects the lowest-latency responding server.
func FindBestServer(discoveries []DiscoveryResult) *DiscoveryResult {
	var best *DiscoveryResult

	for i := range discoveries {
		result := &discoveries[i]
		if !result.Responding {
			continue
		}
		if best == nil || result.LatencyMs < best.LatencyMs {
			best = result
		}
	}

	return best
}

// DiscoverAndConnect scans the network and returns a client connected
// to the best available worker.
func DiscoverAndConnect(config DiscoveryConfig) (*client.APIClient, *DiscoveryResult, error) {
	discoveries, err := DiscoverServers(config)
	if err != nil {
		return nil, nil, fmt.Errorf("network discovery failed: %w", err)
	}

	best := FindBestServer(discoveries)
	if best == nil {
		return nil, nil, fmt.Errorf("no hasher-server instances found on network")
	}

	return client.NewAPIClient(best.Address), best, nil
}
