package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dynoctl/internal/dispatch"
	"dynoctl/internal/dyno"
	"dynoctl/internal/kineto"
	"dynoctl/internal/logging"
	"dynoctl/internal/testsupport"
)

func TestInvokeRoundTrip(t *testing.T) {
	daemon := testsupport.StartDaemon(t, testsupport.StaticResponder(`{"version":"0.3.1"}`))
	invoker := dispatch.NewInvoker(logging.NewNop(), 2*time.Second, 0)

	outcome, err := invoker.Invoke(context.Background(), daemon.Addr(), dispatch.VersionCommand{})
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	if outcome.Host != daemon.Addr() {
		t.Fatalf("outcome host = %q, want %q", outcome.Host, daemon.Addr())
	}
	if outcome.Operation != "version" {
		t.Fatalf("outcome operation = %q", outcome.Operation)
	}
	if version, ok := outcome.Response.String("version"); !ok || version != "0.3.1" {
		t.Fatalf("unexpected response: %s", outcome.Response.Raw())
	}

	requests := daemon.Requests()
	if len(requests) != 1 || string(requests[0]) != `{"fn":"getVersion"}` {
		t.Fatalf("unexpected requests: %v", requests)
	}
}

func TestInvokeConnectError(t *testing.T) {
	addr := testsupport.RefusedAddr(t)
	invoker := dispatch.NewInvoker(logging.NewNop(), time.Second, 0)

	outcome, err := invoker.Invoke(context.Background(), addr, dispatch.StatusCommand{})
	if err == nil {
		t.Fatal("expected connect error")
	}

	var connectErr *dyno.ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected *dyno.ConnectError, got %T", err)
	}
	if outcome.Host != addr {
		t.Fatalf("outcome should carry the host even on failure, got %q", outcome.Host)
	}
}

func TestInvokeRejectsMalformedResponseShape(t *testing.T) {
	daemon := testsupport.StartDaemon(t, testsupport.StaticResponder(`{"ok":true}`))
	invoker := dispatch.NewInvoker(logging.NewNop(), 2*time.Second, 0)

	command := dispatch.TraceCommand{
		Config: kineto.Config{
			LogFile: "/tmp/trace.json",
			Trigger: kineto.DurationTrigger{DurationMS: 500},
		},
		PIDs:         []int64{0},
		ProcessLimit: 3,
	}
	_, err := invoker.Invoke(context.Background(), daemon.Addr(), command)
	if err == nil {
		t.Fatal("expected protocol error for response without processesMatched")
	}

	var protocolErr *dyno.ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected *dyno.ProtocolError, got %T", err)
	}
	if protocolErr.Op != "decode response" {
		t.Fatalf("unexpected op %q", protocolErr.Op)
	}
}

func TestInvokeRequestTimeout(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(request []byte) []byte {
		time.Sleep(500 * time.Millisecond)
		return []byte(`{"status":"ok"}`)
	})
	invoker := dispatch.NewInvoker(logging.NewNop(), 2*time.Second, 100*time.Millisecond)

	_, err := invoker.Invoke(context.Background(), daemon.Addr(), dispatch.StatusCommand{})
	if err == nil {
		t.Fatal("expected timeout error")
	}

	var protocolErr *dyno.ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected *dyno.ProtocolError, got %T", err)
	}
}
