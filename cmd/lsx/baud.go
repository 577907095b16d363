package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type BaudCommand struct {
	ConnectOptions
	Yes  bool `short:"y" long:"yes" description:"Skip the confirmation prompt"`
	Args struct {
		ID  uint8 `positional-arg-name:"id" required:"yes" description:"Servo bus ID"`
		BPS int   `positional-arg-name:"bps" required:"yes" description:"New baud rate in bits per second"`
	} `positional-args:"yes" required:"yes"`
}

func (c *BaudCommand) Execute(args []string) error {
	if !c.Yes {
		var proceed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Rewrite baud register of servo %d to %d bps?", c.Args.ID, c.Args.BPS)).
				Description("The register is persistent. The servo only answers at the new rate afterwards.").
				Value(&proceed),
		))
		if err := form.Run(); err != nil {
			fatal(err)
		}
		if !proceed {
			fmt.Println(dimStyle.Render("aborted"))
			return nil
		}
	}

	ctrl := c.connect()
	defer ctrl.Disconnect()

	ctx, stop := interruptContext()
	defer stop()

	if err := ctrl.SetServoBaudRate(ctx, c.Args.ID, c.Args.BPS); err != nil {
		fatal(err)
	}
	fmt.Printf("%s servo %d now expects %d bps\n", successStyle.Render("✓"), c.Args.ID, c.Args.BPS)
	return nil
}
