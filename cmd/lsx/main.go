package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jessevdk/go-flags"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Options struct {
	Neutral NeutralCommand `command:"neutral" description:"Move all servos to the neutral pose"`
	Pose    PoseCommand    `command:"pose" description:"Send a full twelve-servo pose"`
	Servo   ServoCommand   `command:"servo" description:"Command a single servo"`
	Sweep   SweepCommand   `command:"sweep" description:"Sweep the whole fleet between two angles"`
	Baud    BaudCommand    `command:"baud" description:"Rewrite a servo's baud-rate register"`
	Monitor MonitorCommand `command:"monitor" description:"Tail the gateway's serial log feed"`
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.LongDescription = "Dynamixel servo control through an LS5/LS6 gateway or a USB serial adapter."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+err.Error())
	os.Exit(1)
}
