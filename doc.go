// Package usblsx provides command-only control of Dynamixel servos behind
// an LS5/LS6 gateway.
//
// The gateway accepts Dynamixel Protocol 1.0 bus frames wrapped in its own
// LUCI envelope, either over TCP (port 7777) or over a local serial link.
// This module builds those frames, wraps them, and sends them with the
// pacing the physical bus needs. It is write-only: commands are fire and
// forget and no servo feedback is parsed.
//
// # Usage
//
//	go install github.com/hilokeshrm/USB-ls-x/cmd/lsx@latest
//
// Move the robot to its neutral pose through a gateway on the network:
//
//	lsx --tcp 192.168.0.110 neutral
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/lsx: CLI with neutral, pose, servo, sweep, baud and monitor commands
//   - pkg/dynamixel: bus frame builder and unit conversion
//   - pkg/luci: LUCI envelope builder and baud table
//   - pkg/transport: serial and TCP connections with send pacing
//   - pkg/robot: command facade, configuration and pose sequences
//   - pkg/monitor: gateway serial log reader
//   - pkg/logging: zap logger construction with optional file rotation
package usblsx
