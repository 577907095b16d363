package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hilokeshrm/USB-ls-x/pkg/luci"
)

// DefaultPort is the gateway's TCP listening port.
const DefaultPort = 7777

// TCPConfig configures a connection to the gateway's TCP front.
type TCPConfig struct {
	// Address is host or host:port; the default port is appended when
	// missing.
	Address string
	// DialTimeout overrides DefaultDialTimeout.
	DialTimeout time.Duration
	// ReplyTimeout overrides DefaultReplyTimeout.
	ReplyTimeout time.Duration
	// SendInterval overrides DefaultSendInterval.
	SendInterval time.Duration
	// RegistrationAsText routes the registration preamble through a UTF-8
	// round-trip before sending, mimicking the legacy client. For the
	// fixed preamble the wire bytes come out identical; the flag exists
	// to keep the legacy behavior reachable, not to fix it.
	RegistrationAsText bool
	// Logger receives debug-level traffic logs. Nil disables logging.
	Logger *zap.Logger
}

// TCPConn sends envelopes to the gateway over TCP.
type TCPConn struct {
	pace *pacer
	log  *zap.Logger

	mu   sync.Mutex
	conn net.Conn
	open bool
}

// DialTCP connects to the gateway, sends the one-time registration
// preamble, and drains any reply within a short deadline. The gateway not
// answering the registration is normal.
func DialTCP(cfg TCPConfig) (*TCPConn, error) {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReplyTimeout == 0 {
		cfg.ReplyTimeout = DefaultReplyTimeout
	}
	if cfg.SendInterval == 0 {
		cfg.SendInterval = DefaultSendInterval
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	addr := cfg.Address
	if !strings.Contains(addr, ":") {
		addr = net.JoinHostPort(addr, strconv.Itoa(DefaultPort))
	}

	conn, err := net.DialTimeout("tcp", addr, cfg.DialTimeout)
	if err != nil {
		return nil, mapDialError(err)
	}

	reg := luci.Registration()
	if cfg.RegistrationAsText {
		reg = []byte(strings.ToValidUTF8(string(reg), ""))
	}
	if _, err := conn.Write(reg); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send registration: %w", err)
	}

	// Drain a registration reply if one comes; silence is fine.
	_ = conn.SetReadDeadline(time.Now().Add(cfg.ReplyTimeout))
	buf := make([]byte, 1024)
	if n, err := conn.Read(buf); err == nil && n > 0 {
		log.Debug("registration reply", zap.Int("bytes", n))
	}
	_ = conn.SetReadDeadline(time.Time{})

	log.Debug("gateway connected", zap.String("addr", addr))

	return &TCPConn{
		conn: conn,
		open: true,
		log:  log,
		pace: newPacer(cfg.SendInterval, time.Time{}),
	}, nil
}

// Send implements Conn.
func (c *TCPConn) Send(ctx context.Context, frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return ErrNotConnected
	}
	if err := c.pace.wait(ctx); err != nil {
		return err
	}
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("write %d bytes: %w", len(frame), err)
	}
	c.log.Debug("frame sent", zap.Int("bytes", len(frame)))
	return nil
}

// Close implements Conn. Subsequent Sends fail with ErrNotConnected.
func (c *TCPConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil
	}
	c.open = false
	return c.conn.Close()
}
