// Package luci builds the LUCI envelope the LS5/LS6 gateway expects around
// raw Dynamixel bus frames.
package luci

import "encoding/binary"

// BaudRates lists the servo bus speeds the gateway UART supports, in wire
// index order. The index, not the rate itself, is what goes on the wire.
var BaudRates = [8]int{2000000, 1000000, 500000, 222222, 117647, 100000, 57142, 9615}

// fallbackBaudIndex (57142 bps) is substituted for rates missing from the
// table. The gateway firmware has always treated unknown rates this way
// rather than rejecting them, so callers see a fallback, not an error.
const fallbackBaudIndex = 6

// ModuleRobot is the module number addressing the robot servo controller
// inside the gateway.
const ModuleRobot uint16 = 254

// Envelope modes. Modes 4 and 5 are short-form control commands carrying no
// payload at all.
const (
	ModeWrite  byte = 0
	ModeShort4 byte = 4
	ModeShort5 byte = 5
)

// Variant selects the sub-packet layout.
type Variant int

const (
	// SerialBridge prefixes the bus frame with the UART baud-rate index so
	// the gateway can clock its servo UART for the frame.
	SerialBridge Variant = iota
	// Direct carries the bare bus frame, as used when talking straight to
	// a servo bus without the UART bridge.
	Direct
)

func (v Variant) String() string {
	if v == Direct {
		return "direct"
	}
	return "bridge"
}

// Registration returns the preamble a TCP client sends once per connection
// before any command frames. The gateway may or may not answer it.
func Registration() []byte {
	return []byte{0x00, 0x00, 0x02, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// BaudIndex returns the wire index for a bus baud rate. Unknown rates fall
// back to the 57142 entry; see fallbackBaudIndex.
func BaudIndex(bps int) byte {
	for i, r := range BaudRates {
		if r == bps {
			return byte(i)
		}
	}
	return fallbackBaudIndex
}

// Wrap builds the envelope carrying one bus frame to the given module.
// Short-form modes return the fixed three-byte prefix alone. For the
// SerialBridge variant, sub-packet 0 is the baud index byte followed by the
// frame; for Direct it is the bare frame. The envelope's total length field
// is always len(sub-packet 0) + 5.
func Wrap(module uint16, mode byte, frame []byte, v Variant, busBaud int) []byte {
	if mode == ModeShort4 || mode == ModeShort5 {
		return []byte{0x00, 0x00, 0x02}
	}

	sub := frame
	if v == SerialBridge {
		sub = make([]byte, 0, 1+len(frame))
		sub = append(sub, BaudIndex(busBaud))
		sub = append(sub, frame...)
	}

	out := make([]byte, 0, 15+len(sub))
	out = append(out, 0x00, 0x00, 0x02)
	out = binary.LittleEndian.AppendUint16(out, module)
	out = append(out, 0x00, 0x00, 0x00)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(sub)+5))
	out = append(out, mode)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(sub)))
	out = binary.LittleEndian.AppendUint16(out, 0)
	out = append(out, sub...)
	return out
}
