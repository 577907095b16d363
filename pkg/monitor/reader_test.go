package monitor

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, r *Reader, n int) []string {
	t.Helper()
	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case line, ok := <-r.Lines():
			if !ok {
				return got
			}
			got = append(got, line.Text)
		case <-timeout:
			t.Fatalf("timed out after %d lines: %v", len(got), got)
		}
	}
	return got
}

func TestReaderDeliversLines(t *testing.T) {
	pr, pw := io.Pipe()
	r := newReader(pr, 8)
	defer r.Close()

	go func() {
		pw.Write([]byte("boot ok\r\nservo bus up\n"))
		pw.Close()
	}()

	require.Equal(t, []string{"boot ok", "servo bus up"}, collect(t, r, 2))
}

func TestReaderDropsUndecodableBytes(t *testing.T) {
	pr, pw := io.Pipe()
	r := newReader(pr, 8)
	defer r.Close()

	go func() {
		pw.Write([]byte("ok\n\xff\xfe\n\xffpartial\xfe line\n"))
		pw.Close()
	}()

	// The all-garbage line vanishes; mixed lines keep their valid runes.
	require.Equal(t, []string{"ok", "partial line"}, collect(t, r, 2))
}

func TestReaderCloseEndsChannel(t *testing.T) {
	pr, pw := io.Pipe()
	r := newReader(pr, 8)

	require.NoError(t, r.Close())
	pw.CloseWithError(io.ErrClosedPipe)

	select {
	case _, ok := <-r.Lines():
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}
