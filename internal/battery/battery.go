// Package battery reads the brick battery through the power_supply class.
package battery

import (
	"fmt"
	"path/filepath"

	"ev3dev/internal/sysfs"
)

// Battery interface defines methods to read battery information.
type Battery interface {
	Voltage() (float64, error)
	Current() (float64, error)
}

// Voltage returns the battery voltage in volts. The kernel reports microvolts.
func Voltage() (float64, error) {
	basePath, err := batteryPath()
	if err != nil {
		return 0, err
	}

	uv, err := sysfs.ReadInt(filepath.Join(basePath, "voltage_now"))
	if err != nil {
		return 0, err
	}

	return float64(uv) / 1e6, nil
}

// Current returns the battery current draw in amps. The kernel reports
// microamps. Not every board provides current_now.
func Current() (float64, error) {
	basePath, err := batteryPath()
	if err != nil {
		return 0, err
	}

	ua, err := sysfs.ReadInt(filepath.Join(basePath, "current_now"))
	if err != nil {
		return 0, err
	}

	return float64(ua) / 1e6, nil
}

func batteryPath() (string, error) {
	// The EV3 brick names its supply lego-ev3-battery, BrickPi boards use a
	// brickpi prefix. Match either, pick the first hit.
	for _, pattern := range []string{
		"/sys/class/power_supply/lego-ev3-battery",
		"/sys/class/power_supply/brickpi*-battery",
		"/sys/class/power_supply/pistorms-battery",
	} {
		matches, err := sysfs.FS.Glob(pattern)
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("battery path not found")
}
