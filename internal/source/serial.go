// Package source provides byte-stream sources for live captures: a raw
// serial port and a tail-follow file reader. Both feed the same frame
// reader as an offline capture file.
package source

import (
	"fmt"
	"io"

	serial "go.bug.st/serial"
)

// OpenSerial opens device as a raw byte stream for the frame reader.
func OpenSerial(device string, baud int) (io.ReadCloser, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return port, nil
}
