// Package rogue decodes the framed binary capture format written by
// the DAQ stream writer: a flat sequence of frames, each an 8-byte
// header followed by a channel-dependent payload.
package rogue

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the fixed number of header bytes per frame.
const HeaderSize = 8

// Header is the frame header, little-endian on the wire:
// uint32 size, uint16 flags, uint8 error code, uint8 channel id.
type Header struct {
	Size    uint32
	Flags   uint16
	Error   uint8
	Channel uint8
}

// DecodeHeader unpacks the first HeaderSize bytes of b.
func DecodeHeader(b []byte) Header {
	return Header{
		Size:    binary.LittleEndian.Uint32(b[0:4]),
		Flags:   binary.LittleEndian.Uint16(b[4:6]),
		Error:   b[6],
		Channel: b[7],
	}
}

// Encode renders the header in wire order.
func (h Header) Encode() []byte {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Size)
	binary.LittleEndian.PutUint16(b[4:6], h.Flags)
	b[6] = h.Error
	b[7] = h.Channel
	return b
}

// PayloadSize returns the number of payload bytes following the
// header. The size field counts a fixed 4-byte tail in addition to the
// payload, so the payload length is size - 4; this accounting was
// validated against captured frames.
func (h Header) PayloadSize() int {
	return int(h.Size) - 4
}

// ErrCorruptHeader marks a header whose size field cannot describe a
// valid frame.
var ErrCorruptHeader = errors.New("implausible frame size")

// ErrTruncated marks a stream that ended inside a frame payload.
var ErrTruncated = errors.New("stream truncated inside frame")

// StreamError is a fatal stream-level failure. Offset is the byte
// position of the frame whose read failed.
type StreamError struct {
	Offset int64
	Err    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error at byte %d: %v", e.Offset, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
