package dyno

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ConnectError reports a daemon endpoint that could not be reached. The
// rendered message carries an operator hint when the cause has a common
// remedy.
type ConnectError struct {
	Host string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %s: %v%s", e.Host, e.Err, connectHint(e.Err))
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

func connectHint(err error) string {
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return "; verify dynolog is running and listening on this port"
	case errors.As(err, &dnsErr):
		return "; check the host name"
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "; host did not answer within the connect timeout"
		}
		return ""
	}
}

// ProtocolError reports a daemon that was reachable but whose exchange
// broke down: a frame could not be written or read, or the payload could
// not be encoded or decoded.
type ProtocolError struct {
	Host string
	Op   string
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Host, e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
