package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

// SerialConfig configures a direct serial link to the gateway.
type SerialConfig struct {
	// Port is the device path, e.g. /dev/ttyUSB0 or COM20.
	Port string
	// BaudRate of the link itself (not the servo bus). Default 57600.
	BaudRate int
	// SendInterval overrides DefaultSendInterval.
	SendInterval time.Duration
	// SettleTime overrides DefaultSettleTime.
	SettleTime time.Duration
	// Logger receives debug-level traffic logs. Nil disables logging.
	Logger *zap.Logger
}

// SerialConn sends envelopes over a local serial port.
type SerialConn struct {
	pace *pacer
	log  *zap.Logger

	mu   sync.Mutex
	port serial.Port
	open bool
}

// DialSerial opens the serial link at 8 data bits, no parity, one stop bit.
// Stale driver buffers are flushed, and the first Send is held back until
// the port has settled.
func DialSerial(cfg SerialConfig) (*SerialConn, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 57600
	}
	if cfg.SendInterval == 0 {
		cfg.SendInterval = DefaultSendInterval
	}
	if cfg.SettleTime == 0 {
		cfg.SettleTime = DefaultSettleTime
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("flush input buffer: %w", err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("flush output buffer: %w", err)
	}

	log.Debug("serial link open",
		zap.String("port", cfg.Port),
		zap.Int("baud", cfg.BaudRate))

	return &SerialConn{
		port: port,
		open: true,
		log:  log,
		pace: newPacer(cfg.SendInterval, time.Now().Add(cfg.SettleTime)),
	}, nil
}

// Send implements Conn.
func (c *SerialConn) Send(ctx context.Context, frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return ErrNotConnected
	}
	if err := c.pace.wait(ctx); err != nil {
		return err
	}
	if _, err := c.port.Write(frame); err != nil {
		return fmt.Errorf("write %d bytes: %w", len(frame), err)
	}
	c.log.Debug("frame sent", zap.Int("bytes", len(frame)))
	return nil
}

// Close implements Conn. Subsequent Sends fail with ErrNotConnected.
func (c *SerialConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil
	}
	c.open = false
	return c.port.Close()
}
