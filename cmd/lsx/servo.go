package main

import (
	"fmt"

	"github.com/hilokeshrm/USB-ls-x/pkg/dynamixel"
)

type ServoCommand struct {
	ConnectOptions
	Family string  `short:"f" long:"family" choice:"ax" choice:"mx" choice:"xl" default:"ax" description:"Servo family"`
	RPM    float64 `long:"rpm" default:"30" description:"Moving speed in RPM"`
	Args   struct {
		ID      uint8   `positional-arg-name:"id" required:"yes" description:"Servo bus ID"`
		Degrees float64 `positional-arg-name:"degrees" required:"yes" description:"Target angle"`
	} `positional-args:"yes" required:"yes"`
}

func (c *ServoCommand) Execute(args []string) error {
	var family dynamixel.Family
	switch c.Family {
	case "mx":
		family = dynamixel.FamilyMX
	case "xl":
		family = dynamixel.FamilyXL
	default:
		family = dynamixel.FamilyAX
	}

	ctrl := c.connect()
	defer ctrl.Disconnect()

	ctx, stop := interruptContext()
	defer stop()

	err := ctrl.SendPositions(ctx,
		[]byte{c.Args.ID},
		[]dynamixel.Family{family},
		[]float64{c.Args.Degrees},
		[]float64{c.RPM})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s servo %d → %.1f° at %.0f RPM\n",
		successStyle.Render("✓"), c.Args.ID, c.Args.Degrees, c.RPM)
	return nil
}
