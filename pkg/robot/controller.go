package robot

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hilokeshrm/USB-ls-x/pkg/dynamixel"
	"github.com/hilokeshrm/USB-ls-x/pkg/luci"
	"github.com/hilokeshrm/USB-ls-x/pkg/transport"
)

// Controller is the command facade: it converts units, builds bus frames,
// wraps them in the LUCI envelope and sends them over the active
// connection. It owns at most one connection at a time, created by Connect
// and dropped by Disconnect. Commands are write-only; nothing is read back.
type Controller struct {
	cfg Config
	log *zap.Logger

	mu   sync.Mutex
	conn transport.Conn
}

// New creates a controller. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.applyDefaults()
	return &Controller{cfg: cfg, log: log}
}

// Connect opens the configured transport. Connecting while already
// connected is a no-op.
func (c *Controller) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	var (
		conn transport.Conn
		err  error
	)
	switch c.cfg.Transport {
	case TransportSerial:
		conn, err = transport.DialSerial(transport.SerialConfig{
			Port:     c.cfg.Port,
			BaudRate: c.cfg.LinkBaud,
			Logger:   c.log,
		})
	case TransportTCP:
		conn, err = transport.DialTCP(transport.TCPConfig{
			Address:            c.cfg.Address,
			RegistrationAsText: c.cfg.RegistrationAsText,
			Logger:             c.log,
		})
	default:
		return fmt.Errorf("%w: transport %q", dynamixel.ErrInvalidArgument, c.cfg.Transport)
	}
	if err != nil {
		return err
	}

	c.conn = conn
	return nil
}

// Connected reports whether a connection is open.
func (c *Controller) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Disconnect closes and drops the connection, if any.
func (c *Controller) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// SendPositions commands a set of servos to move. The four slices run in
// parallel and must be the same length; ids must be unique. Validation
// failures are reported before any bytes reach the transport.
func (c *Controller) SendPositions(ctx context.Context, ids []byte, families []dynamixel.Family, degrees, velocities []float64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no motors", dynamixel.ErrInvalidArgument)
	}
	if len(families) != len(ids) || len(degrees) != len(ids) || len(velocities) != len(ids) {
		return fmt.Errorf("%w: ids/families/degrees/velocities lengths differ (%d/%d/%d/%d)",
			dynamixel.ErrInvalidArgument, len(ids), len(families), len(degrees), len(velocities))
	}

	entries := make([]dynamixel.SyncWriteEntry, len(ids))
	for i, id := range ids {
		pos := dynamixel.PositionFromDegrees(degrees[i], families[i])
		vel := dynamixel.VelocityFromRPM(velocities[i], families[i])

		data := make([]byte, 4)
		binary.LittleEndian.PutUint16(data[0:2], pos)
		binary.LittleEndian.PutUint16(data[2:4], vel)
		entries[i] = dynamixel.SyncWriteEntry{ID: id, Data: data}

		c.log.Debug("motor command",
			zap.Uint8("id", id),
			zap.Stringer("family", families[i]),
			zap.Float64("degrees", degrees[i]),
			zap.Uint16("position", pos),
			zap.Uint16("velocity", vel))
	}

	frame, err := dynamixel.BuildSyncWrite(dynamixel.RegGoalPosition, 4, entries)
	if err != nil {
		return err
	}
	return c.send(ctx, frame)
}

// SendAll commands the stock fleet: exactly NumServos positions, ids 1..12,
// all AX, at the default velocity.
func (c *Controller) SendAll(ctx context.Context, degrees []float64) error {
	if len(degrees) != NumServos {
		return fmt.Errorf("%w: got %d positions, want %d", dynamixel.ErrInvalidArgument, len(degrees), NumServos)
	}
	velocities := make([]float64, NumServos)
	for i := range velocities {
		velocities[i] = DefaultVelocityRPM
	}
	return c.SendPositions(ctx, DefaultIDs(), DefaultFamilies(), degrees, velocities)
}

// MoveToNeutral sends the fleet to its rest pose.
func (c *Controller) MoveToNeutral(ctx context.Context) error {
	return c.SendAll(ctx, NeutralPose)
}

// SetServoBaudRate writes a servo's baud-rate register (address 4) so the
// servo itself re-clocks its bus UART. This is a configuration write: after
// it lands, the servo only listens at the new rate.
func (c *Controller) SetServoBaudRate(ctx context.Context, id byte, bps int) error {
	value, err := dynamixel.BaudRegisterValue(bps)
	if err != nil {
		return err
	}
	frame, err := dynamixel.BuildWrite(id, dynamixel.RegBaudRate, []byte{value})
	if err != nil {
		return err
	}
	c.log.Debug("baud register write",
		zap.Uint8("id", id),
		zap.Int("bps", bps),
		zap.Uint8("value", value))
	return c.send(ctx, frame)
}

// send wraps one bus frame and puts it on the wire. The stage-by-stage hex
// logging here is the debugging hook: run with a debug-level logger to see
// exactly what a command turned into.
func (c *Controller) send(ctx context.Context, frame []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return transport.ErrNotConnected
	}

	env := luci.Wrap(c.cfg.Module, luci.ModeWrite, frame, c.cfg.Variant(), c.cfg.BusBaud)

	c.log.Debug("bus frame", zap.String("hex", hex.EncodeToString(frame)))
	c.log.Debug("luci envelope",
		zap.String("hex", hex.EncodeToString(env)),
		zap.Stringer("variant", c.cfg.Variant()),
		zap.Uint16("module", c.cfg.Module))

	if err := conn.Send(ctx, env); err != nil {
		return fmt.Errorf("send command: %w", err)
	}
	return nil
}
