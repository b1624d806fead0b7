// Package sensor reads lego-sensor devices. Every sensor exposes the same
// attribute shape (mode, num_values, decimals, value0..valueN), the concrete
// types only pin a driver name and name the useful modes.
package sensor

import (
	"fmt"
	"math"

	"ev3dev/internal/device"
	"ev3dev/internal/platform"
)

// Sensor is a generic lego-sensor device.
type Sensor struct {
	dev *device.Device
}

// Open locates the sensor on the numbered input port (1-4). An empty driver
// matches any sensor on the port.
func Open(port int, driver string) (*Sensor, error) {
	address := platform.Detect().InputAddress(port)
	dev, err := device.Find(device.ClassSensor, address, driver)
	if err != nil {
		return nil, err
	}
	return &Sensor{dev: dev}, nil
}

// Mode returns the currently selected mode string.
func (s *Sensor) Mode() (string, error) {
	return s.dev.ReadString("mode")
}

// SetMode selects a mode. The kernel resets value attributes on change.
func (s *Sensor) SetMode(mode string) error {
	return s.dev.WriteString("mode", mode)
}

// Command sends a command to sensors that support them.
func (s *Sensor) Command(cmd string) error {
	return s.dev.WriteString("command", cmd)
}

// DriverName returns the kernel driver bound to this sensor.
func (s *Sensor) DriverName() (string, error) {
	return s.dev.ReadString("driver_name")
}

// NumValues returns how many value<N> attributes the current mode provides.
func (s *Sensor) NumValues() (int, error) {
	return s.dev.ReadInt("num_values")
}

// Value returns the raw integer reading of value<i>.
func (s *Sensor) Value(i int) (int, error) {
	return s.dev.ReadInt(fmt.Sprintf("value%d", i))
}

// Float returns value<i> scaled by the decimals attribute, which tells how
// many decimal places the raw integer carries.
func (s *Sensor) Float(i int) (float64, error) {
	raw, err := s.Value(i)
	if err != nil {
		return 0, err
	}
	dec, err := s.dev.ReadInt("decimals")
	if err != nil {
		return 0, err
	}
	return float64(raw) / math.Pow10(dec), nil
}
