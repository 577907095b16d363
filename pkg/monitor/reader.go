// Package monitor tails the diagnostic log feed the gateway prints on its
// console UART.
//
// The reader runs on its own goroutine and its own serial port; it never
// touches the command connection and never blocks it. Lines that fail to
// decode are dropped silently.
package monitor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.bug.st/serial"
)

// Line is one decoded log line with its arrival time.
type Line struct {
	Text string
	When time.Time
}

// Config configures the log feed.
type Config struct {
	// Port is the serial device carrying the log feed.
	Port string
	// BaudRate of the feed. Default 57600.
	BaudRate int
	// Buffer is the line channel capacity. When the consumer lags, the
	// oldest buffered line is dropped. Default 256.
	Buffer int
}

// Reader collects gateway log lines in the background.
type Reader struct {
	src   io.ReadCloser
	lines chan Line

	closeOnce sync.Once
	closeErr  error
}

// Open starts tailing the gateway log feed.
func Open(cfg Config) (*Reader, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 57600
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open log port %s: %w", cfg.Port, err)
	}
	return newReader(port, cfg.Buffer), nil
}

func newReader(src io.ReadCloser, buffer int) *Reader {
	if buffer <= 0 {
		buffer = 256
	}
	r := &Reader{src: src, lines: make(chan Line, buffer)}
	go r.loop()
	return r
}

// Lines returns the channel of decoded log lines. It is closed when the
// feed ends or the reader is closed.
func (r *Reader) Lines() <-chan Line {
	return r.lines
}

// Close stops the reader. Safe to call more than once.
func (r *Reader) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.src.Close()
	})
	return r.closeErr
}

func (r *Reader) loop() {
	defer close(r.lines)

	sc := bufio.NewScanner(r.src)
	for sc.Scan() {
		text := strings.TrimRight(sc.Text(), "\r")
		if !utf8.ValidString(text) {
			text = strings.ToValidUTF8(text, "")
		}
		if text == "" {
			continue
		}

		line := Line{Text: text, When: time.Now()}
		select {
		case r.lines <- line:
		default:
			// Consumer is behind; drop the oldest line, keep the feed
			// moving.
			select {
			case <-r.lines:
			default:
			}
			select {
			case r.lines <- line:
			default:
			}
		}
	}
	// Read errors end the feed; the command path is unaffected.
}
