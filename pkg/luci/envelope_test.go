package luci

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapDirect(t *testing.T) {
	frame := []byte{0xFF, 0xFF, 0x01, 0x04, 0x03, 0x04, 0x08, 0xEB}
	env := Wrap(ModuleRobot, ModeWrite, frame, Direct, 57142)

	expect := []byte{
		0x00, 0x00, 0x02, // prefix
		0xFE, 0x00, // module 254
		0x00, 0x00, 0x00, // padding
		0x0D, 0x00, // total length = 8 + 5
		0x00,       // mode write
		0x08, 0x00, // sub-packet 0 length
		0x00, 0x00, // sub-packet 1 length
	}
	expect = append(expect, frame...)
	require.Equal(t, expect, env)
}

func TestWrapSerialBridge(t *testing.T) {
	frame := []byte{0xFF, 0xFF, 0x01, 0x04, 0x03, 0x04, 0x08, 0xEB}
	env := Wrap(ModuleRobot, ModeWrite, frame, SerialBridge, 222222)

	expect := []byte{
		0x00, 0x00, 0x02,
		0xFE, 0x00,
		0x00, 0x00, 0x00,
		0x0E, 0x00, // total length = 9 + 5
		0x00,
		0x09, 0x00,
		0x00, 0x00,
		0x03, // baud index for 222222
	}
	expect = append(expect, frame...)
	require.Equal(t, expect, env)
}

func TestWrapShortForm(t *testing.T) {
	for _, mode := range []byte{ModeShort4, ModeShort5} {
		env := Wrap(ModuleRobot, mode, []byte{0x01, 0x02, 0x03}, SerialBridge, 57142)
		require.Equal(t, []byte{0x00, 0x00, 0x02}, env)
	}
}

// The total length field must equal len(sub-packet 0) + 5 whatever the
// variant or frame size.
func TestWrapLengthInvariant(t *testing.T) {
	for _, v := range []Variant{SerialBridge, Direct} {
		for _, n := range []int{1, 8, 60, 200} {
			frame := make([]byte, n)
			env := Wrap(ModuleRobot, ModeWrite, frame, v, 1000000)

			subLen := int(binary.LittleEndian.Uint16(env[11:13]))
			total := int(binary.LittleEndian.Uint16(env[8:10]))
			require.Equal(t, subLen+5, total, "variant %v, frame %d bytes", v, n)
			require.Len(t, env, 15+subLen)
			require.Zero(t, binary.LittleEndian.Uint16(env[13:15]), "sub-packet 1 length")
		}
	}
}

func TestBaudIndex(t *testing.T) {
	for i, bps := range BaudRates {
		require.Equal(t, byte(i), BaudIndex(bps))
	}
	// Rates outside the table fall back to 57142, never an error.
	require.Equal(t, byte(6), BaudIndex(4000000))
	require.Equal(t, byte(6), BaudIndex(0))
}

func TestRegistration(t *testing.T) {
	require.Equal(t, []byte{0, 0, 2, 3, 0, 0, 0, 0, 0, 0}, Registration())
}
