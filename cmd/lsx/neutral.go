package main

import (
	"fmt"
)

type NeutralCommand struct {
	ConnectOptions
}

func (c *NeutralCommand) Execute(args []string) error {
	ctrl := c.connect()
	defer ctrl.Disconnect()

	ctx, stop := interruptContext()
	defer stop()

	if err := ctrl.MoveToNeutral(ctx); err != nil {
		fatal(err)
	}
	fmt.Println(successStyle.Render("✓") + " neutral pose sent")
	return nil
}
