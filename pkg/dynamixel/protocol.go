package dynamixel

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for malformed commands. It is always
// reported before any bytes reach a transport.
var ErrInvalidArgument = errors.New("invalid argument")

// Instruction codes.
const (
	InstWrite     byte = 0x03
	InstSyncWrite byte = 0x83
)

// Frame header bytes.
const (
	headerByte1 = 0xFF
	headerByte2 = 0xFF
)

// Checksum returns the Protocol 1.0 checksum over b: 255 minus the byte sum
// modulo 256. Callers pass everything between the FF FF header and the
// checksum byte itself; the header is never accumulated.
func Checksum(b []byte) byte {
	var sum byte
	for _, c := range b {
		sum += c
	}
	return 255 - sum
}

// BuildWrite builds a single-target WRITE frame setting registers starting
// at address on one servo. Used for configuration writes such as the
// baud-rate register.
func BuildWrite(id, address byte, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: write needs at least one data byte", ErrInvalidArgument)
	}
	if id > Broadcast {
		return nil, fmt.Errorf("%w: servo id %d", ErrInvalidArgument, id)
	}
	length := len(data) + 3 // address + data + instruction + checksum
	if length > 0xFF {
		return nil, fmt.Errorf("%w: %d data bytes exceed frame capacity", ErrInvalidArgument, len(data))
	}

	frame := make([]byte, 0, 6+len(data)+1)
	frame = append(frame, headerByte1, headerByte2, id, byte(length), InstWrite, address)
	frame = append(frame, data...)
	frame = append(frame, Checksum(frame[2:]))
	return frame, nil
}

// SyncWriteEntry is one servo's slot in a SYNC_WRITE batch.
type SyncWriteEntry struct {
	ID   byte
	Data []byte
}

// BuildSyncWrite builds a broadcast SYNC_WRITE frame writing the same
// register range on every listed servo in one bus transaction. All entries
// must carry exactly dataLen bytes and ids must be unique within the batch;
// entry order affects the wire bytes but not which servo gets what.
func BuildSyncWrite(startAddress, dataLen byte, entries []SyncWriteEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no servos in batch", ErrInvalidArgument)
	}
	length := (int(dataLen)+1)*len(entries) + 4
	if length > 0xFF {
		return nil, fmt.Errorf("%w: %d servos at %d bytes each exceed frame capacity", ErrInvalidArgument, len(entries), dataLen)
	}

	frame := make([]byte, 0, 8+length)
	frame = append(frame, headerByte1, headerByte2, Broadcast, byte(length), InstSyncWrite, startAddress, dataLen)

	seen := make(map[byte]bool, len(entries))
	for _, e := range entries {
		if e.ID > MaxID {
			return nil, fmt.Errorf("%w: servo id %d", ErrInvalidArgument, e.ID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: servo id %d repeated in batch", ErrInvalidArgument, e.ID)
		}
		seen[e.ID] = true
		if len(e.Data) != int(dataLen) {
			return nil, fmt.Errorf("%w: servo %d has %d data bytes, want %d", ErrInvalidArgument, e.ID, len(e.Data), dataLen)
		}
		frame = append(frame, e.ID)
		frame = append(frame, e.Data...)
	}

	frame = append(frame, Checksum(frame[2:]))
	return frame, nil
}
