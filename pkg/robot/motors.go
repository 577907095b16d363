// Package robot provides the command facade for a Dynamixel servo robot
// behind an LS5/LS6 gateway.
package robot

import "github.com/hilokeshrm/USB-ls-x/pkg/dynamixel"

// NumServos is the number of servos in the stock robot.
const NumServos = 12

// DefaultVelocityRPM is the moving speed used when the caller does not
// specify one.
const DefaultVelocityRPM = 30.0

// NeutralPose is the safe rest position for the stock robot, in degrees,
// indexed by servo id minus one.
var NeutralPose = []float64{150, 90, 150, 150, 210, 150, 150, 90, 150, 150, 210, 150}

// DefaultIDs returns servo ids 1 through NumServos.
func DefaultIDs() []byte {
	ids := make([]byte, NumServos)
	for i := range ids {
		ids[i] = byte(i + 1)
	}
	return ids
}

// DefaultFamilies returns the stock fleet's scaling families (all AX).
func DefaultFamilies() []dynamixel.Family {
	families := make([]dynamixel.Family, NumServos)
	for i := range families {
		families[i] = dynamixel.FamilyAX
	}
	return families
}
