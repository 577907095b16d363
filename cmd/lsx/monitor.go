package main

import (
	"fmt"

	"github.com/hilokeshrm/USB-ls-x/pkg/monitor"
)

type MonitorCommand struct {
	Port string `short:"p" long:"port" required:"yes" description:"Serial device carrying the gateway's log feed"`
	Baud int    `long:"baud" default:"57600" description:"Baud rate of the log feed"`
}

func (c *MonitorCommand) Execute(args []string) error {
	reader, err := monitor.Open(monitor.Config{Port: c.Port, BaudRate: c.Baud})
	if err != nil {
		fatal(err)
	}
	defer reader.Close()

	ctx, stop := interruptContext()
	defer stop()

	fmt.Println(dimStyle.Render("listening on " + c.Port + ", Ctrl-C to stop"))
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-reader.Lines():
			if !ok {
				return nil
			}
			fmt.Printf("%s %s\n", dimStyle.Render(line.When.Format("15:04:05.000")), line.Text)
		}
	}
}
