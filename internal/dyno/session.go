package dyno

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"
)

// Session is one TCP conversation with a daemon. Each session carries
// exactly one request/response pair; callers close it when the exchange is
// done and open a fresh one for the next command.
type Session struct {
	host string
	conn net.Conn
}

// Dial opens a session to addr, a normalized "host:port" address. The
// timeout bounds the connection attempt; ctx cancellation aborts it early.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Session, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectError{Host: addr, Err: err}
	}
	return &Session{host: addr, conn: conn}, nil
}

// Host returns the normalized address this session talks to.
func (s *Session) Host() string {
	return s.host
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Send encodes the request payload, writes it as one frame, and blocks for
// the framed response. A context deadline, when present, bounds the whole
// exchange; without one the call waits as long as the daemon takes, which
// trace requests rely on.
func (s *Session) Send(ctx context.Context, payload any) (Document, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Document{}, &ProtocolError{Host: s.host, Op: "encode request", Err: err}
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := s.conn.SetDeadline(deadline); err != nil {
			return Document{}, &ProtocolError{Host: s.host, Op: "set deadline", Err: err}
		}
		defer s.conn.SetDeadline(time.Time{}) //nolint:errcheck
	}

	if err := WriteFrame(s.conn, body); err != nil {
		return Document{}, &ProtocolError{Host: s.host, Op: "send request", Err: err}
	}

	response, err := ReadFrame(s.conn)
	if err != nil {
		return Document{}, &ProtocolError{Host: s.host, Op: "read response", Err: err}
	}
	if !json.Valid(response) {
		return Document{}, &ProtocolError{Host: s.host, Op: "decode response", Err: errors.New("response is not valid JSON")}
	}
	return NewDocument(response), nil
}
