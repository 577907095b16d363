package main

import (
	"fmt"

	"github.com/hilokeshrm/USB-ls-x/pkg/robot"
)

type PoseCommand struct {
	ConnectOptions
	Args struct {
		Degrees []float64 `positional-arg-name:"degrees" description:"Target angle per servo, in bus order"`
	} `positional-args:"yes"`
}

func (c *PoseCommand) Execute(args []string) error {
	if len(c.Args.Degrees) != robot.NumServos {
		fatal(fmt.Errorf("expected %d angles, got %d", robot.NumServos, len(c.Args.Degrees)))
	}

	ctrl := c.connect()
	defer ctrl.Disconnect()

	ctx, stop := interruptContext()
	defer stop()

	if err := ctrl.SendAll(ctx, c.Args.Degrees); err != nil {
		fatal(err)
	}
	fmt.Println(successStyle.Render("✓") + " pose sent")
	return nil
}
