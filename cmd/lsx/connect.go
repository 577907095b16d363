package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hilokeshrm/USB-ls-x/pkg/logging"
	"github.com/hilokeshrm/USB-ls-x/pkg/robot"
)

// ConnectOptions holds the flags shared by every command that talks to the
// servo bus. Flags override values from the config file.
type ConnectOptions struct {
	TCP      string `short:"t" long:"tcp" description:"Gateway address (host or host:port)"`
	Serial   string `short:"s" long:"serial" description:"Serial device (e.g. /dev/ttyUSB0)"`
	LinkBaud int    `long:"link-baud" description:"Baud rate of the serial link to the gateway"`
	BusBaud  int    `long:"bus-baud" description:"Baud rate of the servo bus behind the gateway"`
	Direct   bool   `long:"direct" description:"Omit the bus-baud prefix byte from the envelope"`
	Config   string `short:"c" long:"config" description:"Config file path" default:"lsx.json"`
	Verbose  bool   `short:"v" long:"verbose" description:"Log every frame at debug level"`
	LogFile  string `long:"log-file" description:"Append logs to a rolling file as well"`
}

func (o *ConnectOptions) config() robot.Config {
	var cfg robot.Config
	if loaded, err := robot.LoadConfigFrom(o.Config); err == nil {
		cfg = *loaded
	}
	if o.TCP != "" {
		cfg.Transport = robot.TransportTCP
		cfg.Address = o.TCP
	}
	if o.Serial != "" {
		cfg.Transport = robot.TransportSerial
		cfg.Port = o.Serial
	}
	if o.LinkBaud != 0 {
		cfg.LinkBaud = o.LinkBaud
	}
	if o.BusBaud != 0 {
		cfg.BusBaud = o.BusBaud
	}
	if o.Direct {
		cfg.Envelope = "direct"
	}
	return cfg
}

// connect builds a controller from flags and config and opens the transport.
// It exits the process on failure so commands can use the result directly.
func (o *ConnectOptions) connect() *robot.Controller {
	level := "info"
	if o.Verbose {
		level = "debug"
	}
	log := logging.New(logging.Config{Level: level, File: o.LogFile})

	ctrl := robot.New(o.config(), log)
	if err := ctrl.Connect(); err != nil {
		fatal(err)
	}
	return ctrl
}

// interruptContext returns a context that is cancelled on Ctrl-C.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
