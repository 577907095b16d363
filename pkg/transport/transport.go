// Package transport delivers framed commands to the servo gateway over a
// serial link or a TCP socket, pacing writes so the physical bus is never
// flooded.
package transport

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Defaults shared by both transports.
const (
	// DefaultSendInterval is the minimum gap between two command frames.
	// The bus needs this much quiet time to apply a command.
	DefaultSendInterval = 35 * time.Millisecond
	// DefaultDialTimeout bounds TCP connection setup.
	DefaultDialTimeout = 5 * time.Second
	// DefaultReplyTimeout bounds the wait for an (optional) registration
	// reply from the gateway.
	DefaultReplyTimeout = 500 * time.Millisecond
	// DefaultSettleTime is how long a freshly opened serial port rests
	// before the first frame goes out.
	DefaultSettleTime = 500 * time.Millisecond
)

// Conn is one open link to the gateway. At most one command is in flight at
// a time: Send serializes concurrent callers but does not order them, so
// callers that care about command order need their own serialization.
type Conn interface {
	// Send writes one fully built envelope, waiting out the inter-command
	// gap first. It fails with ErrNotConnected after Close.
	Send(ctx context.Context, frame []byte) error
	Close() error
}

// pacer tracks the earliest-next-send time for a connection: a one-off
// absolute lower bound (port settle after open) plus a fixed token-bucket
// gap between commands.
type pacer struct {
	limiter *rate.Limiter

	mu        sync.Mutex
	notBefore time.Time
}

func newPacer(interval time.Duration, notBefore time.Time) *pacer {
	return &pacer{
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		notBefore: notBefore,
	}
}

func (p *pacer) wait(ctx context.Context) error {
	p.mu.Lock()
	notBefore := p.notBefore
	p.mu.Unlock()

	if d := time.Until(notBefore); d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return p.limiter.Wait(ctx)
}
