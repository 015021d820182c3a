package runner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// LineSource reads newline-terminated records from a reader in a background pump,
// so a caller can stop waiting for the next line when its context ends.
type LineSource struct {
	reader *bufio.Reader

	lines     chan lineResult
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

type lineResult struct {
	text string
	err  error
}

// NewLineSource wraps r. Reading starts on the first call to Next.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{
		reader: bufio.NewReader(r),
		lines:  make(chan lineResult),
		done:   make(chan struct{}),
	}
}

func (s *LineSource) initPump() {
	s.startOnce.Do(func() {
		go s.pump()
	})
}

func (s *LineSource) pump() {
	defer close(s.lines)
	for {
		text, err := s.reader.ReadString('\n')
		if text != "" && !s.send(lineResult{text: strings.TrimSuffix(text, "\n")}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				s.send(lineResult{err: err})
			}
			return
		}
	}
}

func (s *LineSource) send(res lineResult) bool {
	select {
	case s.lines <- res:
		return true
	case <-s.done:
		return false
	}
}

// Next returns the next line without its trailing '\n'. A '\r' before it is kept.
// It returns io.EOF once the reader is exhausted, or ctx.Err() if ctx ends first.
func (s *LineSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}

// Close stops the pump once its pending read returns. A read blocked on a
// terminal stays blocked until the process exits.
func (s *LineSource) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
