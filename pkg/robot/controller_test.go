package robot

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hilokeshrm/USB-ls-x/pkg/dynamixel"
	"github.com/hilokeshrm/USB-ls-x/pkg/transport"
)

// fakeConn records every envelope instead of touching hardware.
type fakeConn struct {
	frames [][]byte
	closed bool
}

func (f *fakeConn) Send(_ context.Context, frame []byte) error {
	if f.closed {
		return transport.ErrNotConnected
	}
	f.frames = append(f.frames, append([]byte(nil), frame...))
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func newTestController(cfg Config) (*Controller, *fakeConn) {
	c := New(cfg, nil)
	fake := &fakeConn{}
	c.conn = fake
	return c, fake
}

// unwrap peels the LUCI envelope off a recorded send and returns the bus
// frame, checking the envelope structure on the way.
func unwrap(t *testing.T, env []byte, bridge bool) []byte {
	t.Helper()

	require.Equal(t, []byte{0x00, 0x00, 0x02}, env[:3])
	require.Equal(t, uint16(254), binary.LittleEndian.Uint16(env[3:5]))

	subLen := int(binary.LittleEndian.Uint16(env[11:13]))
	total := int(binary.LittleEndian.Uint16(env[8:10]))
	require.Equal(t, subLen+5, total)
	require.Len(t, env, 15+subLen)

	sub := env[15:]
	if bridge {
		return sub[1:]
	}
	return sub
}

func TestSendAllShape(t *testing.T) {
	c, fake := newTestController(Config{})

	require.NoError(t, c.SendAll(context.Background(), NeutralPose))
	require.Len(t, fake.frames, 1)

	frame := unwrap(t, fake.frames[0], true)
	require.Equal(t, byte(0xFE), frame[2], "broadcast target")
	require.Equal(t, byte(0x83), frame[4], "sync write instruction")
	require.Equal(t, byte(30), frame[5], "goal position address")
	require.Equal(t, byte(4), frame[6], "per-motor data length")

	// 12 entries of (id + 4 data bytes), plus instruction/address/len/checksum.
	require.Equal(t, byte((4+1)*NumServos+4), frame[3])
	require.Equal(t, dynamixel.Checksum(frame[2:len(frame)-1]), frame[len(frame)-1])

	// First servo: id 1, neutral 150 degrees -> 512, 30 RPM -> 269.
	require.Equal(t, byte(1), frame[7])
	require.Equal(t, uint16(512), binary.LittleEndian.Uint16(frame[8:10]))
	require.Equal(t, uint16(269), binary.LittleEndian.Uint16(frame[10:12]))
}

func TestSendAllUsesConfiguredBusBaud(t *testing.T) {
	c, fake := newTestController(Config{BusBaud: 222222})

	require.NoError(t, c.MoveToNeutral(context.Background()))
	require.Len(t, fake.frames, 1)
	require.Equal(t, byte(3), fake.frames[0][15], "baud index for 222222")
}

func TestSendAllDirectVariant(t *testing.T) {
	c, fake := newTestController(Config{Envelope: "direct"})

	require.NoError(t, c.MoveToNeutral(context.Background()))
	frame := unwrap(t, fake.frames[0], false)
	require.Equal(t, byte(0xFF), frame[0])
	require.Equal(t, byte(0xFF), frame[1])
}

func TestSendPositionsValidation(t *testing.T) {
	c, fake := newTestController(Config{})
	ctx := context.Background()

	testCases := []struct {
		name       string
		ids        []byte
		families   []dynamixel.Family
		degrees    []float64
		velocities []float64
	}{
		{"empty", nil, nil, nil, nil},
		{"short families", []byte{1, 2}, []dynamixel.Family{dynamixel.FamilyAX}, []float64{150, 150}, []float64{30, 30}},
		{"short degrees", []byte{1, 2}, []dynamixel.Family{dynamixel.FamilyAX, dynamixel.FamilyAX}, []float64{150}, []float64{30, 30}},
		{"short velocities", []byte{1, 2}, []dynamixel.Family{dynamixel.FamilyAX, dynamixel.FamilyAX}, []float64{150, 150}, []float64{30}},
		{"duplicate ids", []byte{1, 1}, []dynamixel.Family{dynamixel.FamilyAX, dynamixel.FamilyAX}, []float64{150, 150}, []float64{30, 30}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.SendPositions(ctx, tc.ids, tc.families, tc.degrees, tc.velocities)
			require.ErrorIs(t, err, dynamixel.ErrInvalidArgument)
			require.Empty(t, fake.frames, "no I/O on invalid arguments")
		})
	}

	err := c.SendAll(ctx, []float64{150})
	require.ErrorIs(t, err, dynamixel.ErrInvalidArgument)
	require.Empty(t, fake.frames)
}

func TestSendWithoutConnection(t *testing.T) {
	c := New(Config{}, nil)
	err := c.MoveToNeutral(context.Background())
	require.ErrorIs(t, err, transport.ErrNotConnected)
	require.False(t, c.Connected())
}

func TestSetServoBaudRate(t *testing.T) {
	c, fake := newTestController(Config{})

	require.NoError(t, c.SetServoBaudRate(context.Background(), 1, 222222))
	frame := unwrap(t, fake.frames[0], true)
	require.Equal(t, []byte{0xFF, 0xFF, 0x01, 0x04, 0x03, 0x04, 0x08, 0xEB}, frame)

	_, err := dynamixel.BaudRegisterValue(1)
	require.Error(t, err)
	require.Error(t, c.SetServoBaudRate(context.Background(), 1, 1))
	require.Len(t, fake.frames, 1, "invalid baud performs no I/O")
}

func TestPlay(t *testing.T) {
	c, fake := newTestController(Config{})

	steps := Sweep(90, 120, 10, 0)
	require.Len(t, steps, 4)
	require.NoError(t, c.Play(context.Background(), steps))
	require.Len(t, fake.frames, 4)
}

func TestPlayCancellation(t *testing.T) {
	c, fake := newTestController(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Play(ctx, Sweep(90, 210, 10, time.Second))
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, fake.frames)
}

func TestSweepDescending(t *testing.T) {
	steps := Sweep(210, 180, 10, 0)
	require.Len(t, steps, 4)
	require.Equal(t, 210.0, steps[0].Degrees[0])
	require.Equal(t, 180.0, steps[3].Degrees[0])
}

func TestConfigDefaults(t *testing.T) {
	c := New(Config{}, nil)
	require.Equal(t, TransportTCP, c.cfg.Transport)
	require.Equal(t, 57142, c.cfg.BusBaud)
	require.Equal(t, uint16(254), c.cfg.Module)
}
