package dyno

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

func startFrameServer(t *testing.T, handle func(conn net.Conn, request []byte)) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		request, err := ReadFrame(conn)
		if err != nil {
			return
		}
		handle(conn, request)
	}()

	return listener.Addr().String()
}

func TestSessionRoundTrip(t *testing.T) {
	addr := startFrameServer(t, func(conn net.Conn, request []byte) {
		if string(request) != `{"fn":"getVersion"}` {
			t.Errorf("unexpected request payload: %s", request)
		}
		WriteFrame(conn, []byte(`{"version":"0.3.1"}`)) //nolint:errcheck
	})

	session, err := Dial(context.Background(), addr, 2*time.Second)
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer session.Close()

	if session.Host() != addr {
		t.Fatalf("Host() = %q, want %q", session.Host(), addr)
	}

	doc, err := session.Send(context.Background(), NewVersionRequest())
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if version, ok := doc.String("version"); !ok || version != "0.3.1" {
		t.Fatalf("unexpected response: %s", doc.Raw())
	}
}

func TestDialRefusedConnection(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	_, err = Dial(context.Background(), addr, 2*time.Second)
	if err == nil {
		t.Fatal("expected dial error")
	}

	var connectErr *ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected *ConnectError, got %T", err)
	}
	if connectErr.Host != addr {
		t.Fatalf("error host = %q, want %q", connectErr.Host, addr)
	}
	if !strings.Contains(err.Error(), "verify dynolog is running") {
		t.Fatalf("expected operator hint in %q", err.Error())
	}
}

func TestSendMalformedResponse(t *testing.T) {
	addr := startFrameServer(t, func(conn net.Conn, _ []byte) {
		conn.Write([]byte{0x01, 0x02}) //nolint:errcheck
	})

	session, err := Dial(context.Background(), addr, 2*time.Second)
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer session.Close()

	_, err = session.Send(context.Background(), NewStatusRequest())
	if err == nil {
		t.Fatal("expected protocol error")
	}

	var protocolErr *ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected *ProtocolError, got %T", err)
	}
	if protocolErr.Op != "read response" {
		t.Fatalf("unexpected op %q", protocolErr.Op)
	}
}

func TestSendNonJSONResponse(t *testing.T) {
	addr := startFrameServer(t, func(conn net.Conn, _ []byte) {
		WriteFrame(conn, []byte("pong")) //nolint:errcheck
	})

	session, err := Dial(context.Background(), addr, 2*time.Second)
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer session.Close()

	_, err = session.Send(context.Background(), NewStatusRequest())
	if err == nil {
		t.Fatal("expected protocol error")
	}

	var protocolErr *ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected *ProtocolError, got %T", err)
	}
	if protocolErr.Op != "decode response" {
		t.Fatalf("unexpected op %q", protocolErr.Op)
	}
}

func TestSendHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	addr := startFrameServer(t, func(conn net.Conn, _ []byte) {
		<-release
	})

	session, err := Dial(context.Background(), addr, 2*time.Second)
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = session.Send(ctx, NewStatusRequest())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Send did not respect deadline, took %s", elapsed)
	}

	var protocolErr *ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected *ProtocolError, got %T", err)
	}
}
