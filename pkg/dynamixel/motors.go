// Package dynamixel builds Dynamixel Protocol 1.0 instruction frames for
// AX, MX and XL series servos.
package dynamixel

// Family groups servo models that share position and velocity scaling.
type Family int

const (
	FamilyAX Family = iota // 300 degree range, 1024 steps
	FamilyMX               // 360 degree range, 4096 steps
	FamilyXL               // scales like AX
)

func (f Family) String() string {
	switch f {
	case FamilyAX:
		return "AX"
	case FamilyMX:
		return "MX"
	case FamilyXL:
		return "XL"
	}
	return "unknown"
}

// Model identifies a specific servo model on the bus.
type Model int

const (
	ModelAX12 Model = iota
	ModelAX18
	ModelMX28
	ModelMX64
	ModelMX106
	ModelXL320
)

// Family returns the scaling family for the model.
func (m Model) Family() Family {
	switch m {
	case ModelMX28, ModelMX64, ModelMX106:
		return FamilyMX
	case ModelXL320:
		return FamilyXL
	}
	return FamilyAX
}

// Control table addresses (Protocol 1.0).
const (
	RegBaudRate     byte = 4
	RegGoalPosition byte = 30
	RegMovingSpeed  byte = 32
)

// Special bus IDs.
const (
	Broadcast byte = 0xFE
	MaxID     byte = 0xFC
)

// Register scaling limits per family.
const (
	axPositionMax = 1023
	axDegreesMax  = 300.0
	axRPMMax      = 114.0

	mxPositionMax = 4095
	mxDegreesMax  = 360.0
	mxRPMMax      = 117.0

	velocityMax = 1023
)
