package robot

import (
	"encoding/json"
	"os"

	"github.com/hilokeshrm/USB-ls-x/pkg/luci"
)

const DefaultConfigFile = "lsx.json"

// Transport kinds.
const (
	TransportTCP    = "tcp"
	TransportSerial = "serial"
)

// Config holds the gateway connection settings.
type Config struct {
	// Transport is "tcp" or "serial".
	Transport string `json:"transport"`
	// Address is the gateway host or host:port (tcp).
	Address string `json:"address,omitempty"`
	// Port is the serial device (serial).
	Port string `json:"port,omitempty"`
	// LinkBaud is the serial link speed. Default 57600.
	LinkBaud int `json:"link_baud,omitempty"`
	// BusBaud is the servo bus speed behind the gateway. Default 57142.
	BusBaud int `json:"bus_baud,omitempty"`
	// Envelope is "bridge" (baud index precedes the bus frame) or
	// "direct" (bare bus frame). Default bridge.
	Envelope string `json:"envelope,omitempty"`
	// Module is the LUCI module number. Default 254 (robot controller).
	Module uint16 `json:"module,omitempty"`
	// RegistrationAsText mirrors the legacy TCP client's registration
	// quirk; see transport.TCPConfig.
	RegistrationAsText bool `json:"registration_as_text,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.Transport == "" {
		c.Transport = TransportTCP
	}
	if c.LinkBaud == 0 {
		c.LinkBaud = 57600
	}
	if c.BusBaud == 0 {
		c.BusBaud = 57142
	}
	if c.Module == 0 {
		c.Module = luci.ModuleRobot
	}
}

// Variant maps the envelope setting to the codec constant.
func (c *Config) Variant() luci.Variant {
	if c.Envelope == "direct" {
		return luci.Direct
	}
	return luci.SerialBridge
}

// LoadConfig loads configuration from the default config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
