package dyno

import (
	"encoding/binary"
	"fmt"
	"io"
)

// frameHeaderLength is the fixed size of the length prefix.
const frameHeaderLength = 4

// maxPayloadLength caps frame payloads. Daemon responses are small JSON
// documents; 16 MB leaves room while catching a stream that has lost sync.
const maxPayloadLength = 16 * 1024 * 1024

// WriteFrame writes a length-prefixed payload to w. The frame format is
// [4 bytes payload length, little-endian uint32] [payload]. The daemon
// reads the prefix in host byte order and ships on little-endian platforms
// only, so the wire order is fixed here.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > maxPayloadLength {
		return fmt.Errorf("payload length %d exceeds maximum %d", len(payload), maxPayloadLength)
	}
	var header [frameHeaderLength]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("write frame payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads one length-prefixed payload from r. Returns an error if
// the stream is malformed or the payload exceeds maxPayloadLength.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [frameHeaderLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	payloadLength := binary.LittleEndian.Uint32(header[:])
	if payloadLength > maxPayloadLength {
		return nil, fmt.Errorf("frame length %d exceeds maximum %d", payloadLength, maxPayloadLength)
	}
	payload := make([]byte, payloadLength)
	if payloadLength > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("read frame payload: %w", err)
		}
	}
	return payload, nil
}
