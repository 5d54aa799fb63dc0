package utils

import (
	"fmt"
	"net"
	"strconv"
)

// ValidatePeerAddr checks that addr has the host:port form used for peer and
// listen addresses. The host may be an IP or a DNS name.
func ValidatePeerAddr(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if host == "" {
		return fmt.Errorf("invalid address %q: missing host", addr)
	}
	if net.ParseIP(host) == nil && !validHostname(host) {
		return fmt.Errorf("invalid address %q: bad host %q", addr, host)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid address %q: bad port: %w", addr, err)
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid address %q: port %d out of range", addr, port)
	}
	return nil
}

func validHostname(host string) bool {
	if len(host) > 253 {
		return false
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
