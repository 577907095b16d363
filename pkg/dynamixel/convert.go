package dynamixel

import (
	"fmt"
	"math"
)

// PositionFromDegrees maps an angle in degrees to the goal-position register
// value for the given family. Out-of-range angles clamp to the register
// limits; the conversion itself never fails.
func PositionFromDegrees(degrees float64, f Family) uint16 {
	if f == FamilyMX {
		return clampRound(degrees/mxDegreesMax*mxPositionMax, mxPositionMax)
	}
	return clampRound(degrees/axDegreesMax*axPositionMax, axPositionMax)
}

// VelocityFromRPM maps a speed in RPM to the moving-speed register value for
// the given family, clamped to [0, 1023].
func VelocityFromRPM(rpm float64, f Family) uint16 {
	if f == FamilyMX {
		return clampRound(rpm/mxRPMMax*velocityMax, velocityMax)
	}
	return clampRound(rpm/axRPMMax*velocityMax, velocityMax)
}

func clampRound(v float64, max uint16) uint16 {
	r := math.Round(v)
	if r <= 0 {
		return 0
	}
	if r >= float64(max) {
		return max
	}
	return uint16(r)
}

// BaudRegisterValue computes the value to write to the baud-rate register
// (address 4) for a target bus speed: Baud(bps) = 2,000,000 / (value + 1).
func BaudRegisterValue(bps int) (byte, error) {
	if bps <= 0 {
		return 0, fmt.Errorf("%w: baud rate %d", ErrInvalidArgument, bps)
	}
	v := math.Round(2_000_000/float64(bps)) - 1
	if v < 0 || v > 254 {
		return 0, fmt.Errorf("%w: baud rate %d maps to register value %0.f, want 0-254", ErrInvalidArgument, bps, v)
	}
	return byte(v), nil
}
