// Package motor drives tacho-motor devices. Commands and setpoints are the
// ones the ev3dev tacho-motor class defines, speeds are in tacho counts per
// second and positions in tacho counts.
package motor

import (
	"strings"
	"time"

	"ev3dev/internal/device"
	"ev3dev/internal/platform"
)

// Stop actions accepted by the stop_action attribute.
const (
	StopCoast = "coast"
	StopBrake = "brake"
	StopHold  = "hold"
)

// Polarity values.
const (
	PolarityNormal   = "normal"
	PolarityInversed = "inversed"
)

// Motor is a generic tacho motor on an output port.
type Motor struct {
	dev *device.Device
}

// Open locates the motor on the lettered output port ('A'-'D'). An empty
// driver matches any motor on the port.
func Open(port byte, driver string) (*Motor, error) {
	address := platform.Detect().OutputAddress(port)
	dev, err := device.Find(device.ClassMotor, address, driver)
	if err != nil {
		return nil, err
	}
	return &Motor{dev: dev}, nil
}

// OpenLarge locates an EV3/NXT large motor on the port.
func OpenLarge(port byte) (*Motor, error) { return Open(port, "lego-ev3-l-motor") }

// OpenMedium locates an EV3 medium motor on the port.
func OpenMedium(port byte) (*Motor, error) { return Open(port, "lego-ev3-m-motor") }

// SetSpeed sets the speed setpoint used by the run commands.
func (m *Motor) SetSpeed(countsPerSec int) error {
	return m.dev.WriteInt("speed_sp", countsPerSec)
}

// Speed returns the current measured speed.
func (m *Motor) Speed() (int, error) {
	return m.dev.ReadInt("speed")
}

// MaxSpeed returns the motor's rated maximum speed.
func (m *Motor) MaxSpeed() (int, error) {
	return m.dev.ReadInt("max_speed")
}

// Position returns the current tacho count.
func (m *Motor) Position() (int, error) {
	return m.dev.ReadInt("position")
}

// ResetPosition zeroes the tacho count and clears any motor state.
func (m *Motor) ResetPosition() error {
	return m.dev.WriteString("command", "reset")
}

// DutyCycle returns the current PWM duty cycle in percent.
func (m *Motor) DutyCycle() (int, error) {
	return m.dev.ReadInt("duty_cycle")
}

// SetStopAction selects what the motor does on Stop: coast, brake or hold.
func (m *Motor) SetStopAction(action string) error {
	return m.dev.WriteString("stop_action", action)
}

// SetPolarity flips the rotation direction of all commands.
func (m *Motor) SetPolarity(polarity string) error {
	return m.dev.WriteString("polarity", polarity)
}

// RunForever runs at the speed setpoint until another command arrives.
func (m *Motor) RunForever() error {
	return m.dev.WriteString("command", "run-forever")
}

// RunToPosition runs to the given absolute tacho position, then stops with
// the configured stop action.
func (m *Motor) RunToPosition(position int) error {
	if err := m.dev.WriteInt("position_sp", position); err != nil {
		return err
	}
	return m.dev.WriteString("command", "run-to-abs-pos")
}

// RunRelative runs by the given tacho count from the current position.
func (m *Motor) RunRelative(delta int) error {
	if err := m.dev.WriteInt("position_sp", delta); err != nil {
		return err
	}
	return m.dev.WriteString("command", "run-to-rel-pos")
}

// RunTimed runs for the given duration, then stops with the configured stop
// action. The kernel takes the time setpoint in milliseconds.
func (m *Motor) RunTimed(d time.Duration) error {
	if err := m.dev.WriteInt("time_sp", int(d.Milliseconds())); err != nil {
		return err
	}
	return m.dev.WriteString("command", "run-timed")
}

// Stop stops the motor with the configured stop action.
func (m *Motor) Stop() error {
	return m.dev.WriteString("command", "stop")
}

// State returns the state flags reported by the kernel.
func (m *Motor) State() ([]string, error) {
	s, err := m.dev.ReadString("state")
	if err != nil {
		return nil, err
	}
	return strings.Fields(s), nil
}

// IsMoving reports whether the motor is currently running.
func (m *Motor) IsMoving() (bool, error) {
	return m.hasState("running")
}

// IsStalled reports whether the motor cannot reach its speed setpoint.
func (m *Motor) IsStalled() (bool, error) {
	return m.hasState("stalled")
}

func (m *Motor) hasState(flag string) (bool, error) {
	states, err := m.State()
	if err != nil {
		return false, err
	}
	for _, s := range states {
		if s == flag {
			return true, nil
		}
	}
	return false, nil
}
