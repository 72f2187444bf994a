package rogue

import (
	"fmt"
	"io"
)

// ReaderConfig fixes the stream-level parameters for one pass.
type ReaderConfig struct {
	// Channel selects which frames are surfaced; frames on every other
	// channel are skipped without decoding.
	Channel uint8
}

// Frame is one surfaced frame: its header plus the raw payload bytes.
type Frame struct {
	Header  Header
	Payload []byte
}

// FrameReader walks a capture stream frame by frame. Every iteration
// consumes exactly HeaderSize + payload bytes, so a pass always makes
// forward progress and terminates at end of stream.
type FrameReader struct {
	r   io.Reader
	cfg ReaderConfig

	offset  int64
	scanned int
	matched int
	hdr     [HeaderSize]byte
}

// NewFrameReader wraps r for one forward-only pass.
func NewFrameReader(r io.Reader, cfg ReaderConfig) *FrameReader {
	return &FrameReader{r: r, cfg: cfg}
}

// Next returns the next frame on the configured channel. It returns
// io.EOF when the stream ends at a header boundary (a short final
// header also counts as a clean end of capture) and a *StreamError
// when the stream is corrupt or truncated inside a frame.
func (fr *FrameReader) Next() (Frame, error) {
	for {
		if _, err := io.ReadFull(fr.r, fr.hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return Frame{}, io.EOF
			}
			return Frame{}, &StreamError{Offset: fr.offset, Err: err}
		}
		hdr := DecodeHeader(fr.hdr[:])
		size := hdr.PayloadSize()
		if size < 0 {
			return Frame{}, &StreamError{
				Offset: fr.offset,
				Err:    fmt.Errorf("%w: size field %d", ErrCorruptHeader, hdr.Size),
			}
		}
		frameOff := fr.offset
		fr.offset += HeaderSize
		fr.scanned++

		if hdr.Channel != fr.cfg.Channel {
			if _, err := io.CopyN(io.Discard, fr.r, int64(size)); err != nil {
				return Frame{}, &StreamError{
					Offset: frameOff,
					Err:    fmt.Errorf("%w: %v", ErrTruncated, err),
				}
			}
			fr.offset += int64(size)
			continue
		}

		payload := make([]byte, size)
		if _, err := io.ReadFull(fr.r, payload); err != nil {
			return Frame{}, &StreamError{
				Offset: frameOff,
				Err:    fmt.Errorf("%w: %v", ErrTruncated, err),
			}
		}
		fr.offset += int64(size)
		fr.matched++
		return Frame{Header: hdr, Payload: payload}, nil
	}
}

// FramesScanned returns the number of frame headers decoded so far.
func (fr *FrameReader) FramesScanned() int { return fr.scanned }

// FramesMatched returns the number of frames surfaced on the
// configured channel.
func (fr *FrameReader) FramesMatched() int { return fr.matched }

// BytesConsumed returns the total bytes consumed from the stream.
func (fr *FrameReader) BytesConsumed() int64 { return fr.offset }
