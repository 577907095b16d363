package main

import (
	"fmt"
	"time"

	"github.com/hilokeshrm/USB-ls-x/pkg/robot"
)

type SweepCommand struct {
	ConnectOptions
	From   float64       `long:"from" default:"90" description:"Start angle"`
	To     float64       `long:"to" default:"210" description:"End angle"`
	Stride float64       `long:"stride" default:"10" description:"Angle step between poses"`
	Hold   time.Duration `long:"hold" default:"100ms" description:"Pause after each pose"`
}

func (c *SweepCommand) Execute(args []string) error {
	steps := robot.Sweep(c.From, c.To, c.Stride, c.Hold)
	if len(steps) == 0 {
		fatal(fmt.Errorf("sweep from %.1f to %.1f with stride %.1f produces no steps", c.From, c.To, c.Stride))
	}

	ctrl := c.connect()
	defer ctrl.Disconnect()

	ctx, stop := interruptContext()
	defer stop()

	fmt.Println(dimStyle.Render(fmt.Sprintf("playing %d poses, Ctrl-C to stop", len(steps))))
	if err := ctrl.Play(ctx, steps); err != nil {
		fatal(err)
	}
	fmt.Println(successStyle.Render("✓") + " sweep complete")
	return nil
}
