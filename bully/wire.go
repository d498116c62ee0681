package bully

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// Both the registry protocol and the peer protocol put one JSON body per
// frame: a 4 byte big-endian length followed by that many bytes.
const maxFrame = 64 * 1024

func writeFrame(w io.Writer, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	if len(body) > maxFrame {
		return fmt.Errorf("frame too large: %d bytes", len(body))
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(body)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing frame header: %w", err)
	}

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing frame body: %w", err)
	}

	return nil
}

func readFrame(r io.Reader, v interface{}) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("reading frame header: %w", err)
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > maxFrame {
		return fmt.Errorf("frame too large: %d bytes", size)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("reading frame body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding frame: %w", err)
	}

	return nil
}
