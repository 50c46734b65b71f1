// Package dyno speaks the dynolog daemon's TCP protocol.
//
// Every exchange is one framed JSON request followed by one framed JSON
// response over a fresh connection. Frames carry a 4-byte little-endian
// length prefix; requests are flat JSON objects whose "fn" key names the
// daemon operation. Session owns the connection lifecycle, request.go holds
// the payload builders for the supported operations, and Document wraps the
// daemon's reply for field access without committing to a schema the daemon
// does not promise.
//
// Errors split into ConnectError for endpoints that could not be reached and
// ProtocolError for reachable daemons that misbehaved; multi-host callers
// rely on that distinction when summarizing partial failures.
package dyno
