package dyno

import (
	"errors"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is the port dynolog listens on unless overridden.
const DefaultPort = 1778

// NormalizeHost resolves a user-supplied host to a dialable "host:port"
// address. A host that already carries a colon is kept verbatim so explicit
// ports win over the configured one.
func NormalizeHost(host string, port int) (string, error) {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return "", errors.New("host must not be empty")
	}
	if strings.Contains(trimmed, ":") {
		return trimmed, nil
	}
	return net.JoinHostPort(trimmed, strconv.Itoa(port)), nil
}

// NormalizeHosts resolves every host in order, rejecting duplicates after
// normalization so a batch never contacts the same daemon twice.
func NormalizeHosts(hosts []string, port int) ([]string, error) {
	resolved := make([]string, 0, len(hosts))
	seen := make(map[string]struct{}, len(hosts))
	for _, host := range hosts {
		addr, err := NormalizeHost(host, port)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[addr]; ok {
			return nil, errors.New("duplicate host " + addr)
		}
		seen[addr] = struct{}{}
		resolved = append(resolved, addr)
	}
	if len(resolved) == 0 {
		return nil, errors.New("at least one host is required")
	}
	return resolved, nil
}
