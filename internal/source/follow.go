package source

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"
)

// Follow wraps a capture file so reads at end-of-file wait for the
// writer to append more data instead of returning io.EOF. Close stops
// the follow; a blocked Read then returns io.EOF.
type Follow struct {
	f    *os.File
	poll time.Duration

	once sync.Once
	done chan struct{}
}

// OpenFollow opens path for tail-following. poll <= 0 selects the
// default polling interval.
func OpenFollow(path string, poll time.Duration) (*Follow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if poll <= 0 {
		poll = 500 * time.Millisecond
	}
	return &Follow{f: f, poll: poll, done: make(chan struct{})}, nil
}

func (t *Follow) Read(p []byte) (int, error) {
	for {
		n, err := t.f.Read(p)
		if errors.Is(err, os.ErrClosed) {
			// Close raced with a blocked read; treat as end of stream.
			return n, io.EOF
		}
		if n > 0 || (err != nil && err != io.EOF) {
			return n, err
		}
		select {
		case <-t.done:
			return 0, io.EOF
		case <-time.After(t.poll):
		}
	}
}

// Close stops the follow and closes the underlying file.
func (t *Follow) Close() error {
	t.once.Do(func() { close(t.done) })
	return t.f.Close()
}
