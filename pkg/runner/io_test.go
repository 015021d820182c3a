package runner

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLineSource_Next(t *testing.T) {
	src := NewLineSource(strings.NewReader("a=1\nb=2\r\nlast"))
	defer src.Close()
	ctx := context.Background()

	line, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a=1", line)

	line, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b=2\r", line, "carriage return is left to the transformer")

	line, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineSource_Deadline(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	src := NewLineSource(pr)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := src.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLineSource_LateLineAfterTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	src := NewLineSource(pr)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	_, err := src.Next(ctx)
	cancel()
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		pw.Write([]byte("x=1\n"))
		pw.Close()
	}()

	line, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x=1", line)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestLineSource_ReadError(t *testing.T) {
	src := NewLineSource(failingReader{})
	defer src.Close()

	_, err := src.Next(context.Background())
	assert.EqualError(t, err, "broken pipe")
}

func TestLineSource_CloseReleasesPump(t *testing.T) {
	src := NewLineSource(strings.NewReader("a\nb\nc\n"))
	_, err := src.Next(context.Background())
	require.NoError(t, err)

	src.Close()
	src.Close()

	// The pump exits, closing the channel; remaining lines may or may not be drained.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-src.lines:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("pump did not stop after Close")
		}
	}
}

func TestLineSource_NoLeakAfterEarlyStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pr, pw := io.Pipe()
	src := NewLineSource(pr)

	go func() {
		pw.Write([]byte("a=1\nb=2\n"))
		pw.Close()
	}()

	line, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a=1", line)

	// The consumer stops after one line; the pump must not stay parked on send.
	src.Close()
}
