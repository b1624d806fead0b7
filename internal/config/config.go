package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Platform overrides board detection ("ev3", "brickpi", "brickpi3",
	// "pistorms"). Empty means autodetect.
	Platform string `yaml:"platform,omitempty"`
	// PollMillis is the sample interval of the monitor loops.
	PollMillis int `yaml:"poll_millis"`
	// BatteryAlertVolts triggers the LED warning blink below this voltage.
	BatteryAlertVolts float64 `yaml:"battery_alert_volts"`
	// Framebuffer is the LCD device node.
	Framebuffer string `yaml:"framebuffer,omitempty"`
	// Per-port device configuration keyed by port name ("in1".."in4").
	Ports map[string]PortConfig `yaml:"ports,omitempty"`
}

type PortConfig struct {
	Mode   string `yaml:"mode,omitempty"`
	Device string `yaml:"device,omitempty"`
}

// PortConfig returns the configuration for a port, empty defaults if absent.
func (c *Config) PortConfig(port string) *PortConfig {
	res := &PortConfig{}

	if c.Ports == nil {
		return res
	}

	if pc, ok := c.Ports[port]; ok {
		if pc.Mode != "" {
			res.Mode = pc.Mode
		}
		if pc.Device != "" {
			res.Device = pc.Device
		}
	}

	return res
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".config", "ev3dev-mgr")
	_ = os.MkdirAll(path, 0755)
	return filepath.Join(path, "config.yaml"), nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return defaultPath()
}

// Save writes the configuration to path, or to the default location when
// path is empty.
func Save(path string, conf *Config) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads the configuration from path, or from the default location when
// path is empty. A missing file is created with defaults.
func Load(path string) (*Config, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	conf := &Config{
		PollMillis:        1000,
		BatteryAlertVolts: 6.5,
		Framebuffer:       "/dev/fb0",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = Save(path, conf)
		if err != nil {
			return nil, err
		}
		return conf, nil
	}

	err = yaml.Unmarshal(data, conf)
	if err != nil {
		return nil, err
	}

	return conf, nil
}
