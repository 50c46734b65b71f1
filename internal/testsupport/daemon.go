package testsupport

import (
	"net"
	"sync"
	"testing"

	"dynoctl/internal/dyno"
)

// Responder produces the reply payload for one decoded request payload.
type Responder func(request []byte) []byte

// StaticResponder replies with the same payload to every request.
func StaticResponder(response string) Responder {
	return func([]byte) []byte {
		return []byte(response)
	}
}

// MockDaemon is an in-process stand-in for a dynolog request socket. It
// speaks the real framing: one length-prefixed JSON request per connection,
// answered with one length-prefixed response.
type MockDaemon struct {
	listener net.Listener
	respond  Responder

	mu       sync.Mutex
	requests [][]byte

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// StartDaemon launches a mock daemon on a loopback port. It is shut down
// automatically when the test finishes.
func StartDaemon(t testing.TB, respond Responder) *MockDaemon {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	daemon := &MockDaemon{listener: listener, respond: respond}
	daemon.wg.Add(1)
	go daemon.serve()
	t.Cleanup(daemon.Close)

	return daemon
}

func (d *MockDaemon) serve() {
	defer d.wg.Done()
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		d.wg.Add(1)
		go d.handle(conn)
	}
}

func (d *MockDaemon) handle(conn net.Conn) {
	defer d.wg.Done()
	defer conn.Close()

	request, err := dyno.ReadFrame(conn)
	if err != nil {
		return
	}

	d.mu.Lock()
	d.requests = append(d.requests, append([]byte(nil), request...))
	d.mu.Unlock()

	if response := d.respond(request); response != nil {
		dyno.WriteFrame(conn, response) //nolint:errcheck
	}
}

// Addr returns the daemon's "host:port" listen address.
func (d *MockDaemon) Addr() string {
	return d.listener.Addr().String()
}

// Requests returns a copy of every request payload received so far.
func (d *MockDaemon) Requests() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.requests))
	for i, request := range d.requests {
		out[i] = append([]byte(nil), request...)
	}
	return out
}

// Close stops the listener and waits for in-flight connections to finish.
func (d *MockDaemon) Close() {
	d.closeOnce.Do(func() {
		d.listener.Close()
	})
	d.wg.Wait()
}

// RefusedAddr returns a loopback address where nothing is listening.
func RefusedAddr(t testing.TB) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()
	return addr
}
