// Package leds controls the EV3 brick status LEDs. Each side of the button
// cluster has a green and a red LED, amber is both at once.
package leds

import (
	"context"
	"fmt"
	"time"

	"ev3dev/internal/sysfs"
)

// Side selects the left or right LED pair.
type Side string

const (
	Left  Side = "led0"
	Right Side = "led1"
)

// Color is a brick status color.
type Color string

const (
	Off   Color = "off"
	Green Color = "green"
	Red   Color = "red"
	Amber Color = "amber"
)

// Leds interface defines methods to control the brick LEDs.
type Leds interface {
	SetColor(side Side, color Color) error
	SetBrightness(side Side, color string, value int) error
	SetTrigger(side Side, color string, trigger string) error
	RunWarningBlink(ctx context.Context, interval time.Duration)
}

func (c Color) components() (green, red int) {
	switch c {
	case Green:
		return 255, 0
	case Red:
		return 0, 255
	case Amber:
		return 255, 255
	default:
		return 0, 0
	}
}

// SetColor sets both LEDs of a side to produce the given color.
func SetColor(side Side, color Color) error {
	green, red := color.components()
	if err := SetBrightness(side, "green", green); err != nil {
		return err
	}
	return SetBrightness(side, "red", red)
}

// SetBrightness writes the brightness of a single LED (0-255).
func SetBrightness(side Side, color string, value int) error {
	path, err := ledPath(side, color)
	if err != nil {
		return err
	}
	return sysfs.WriteInt(fmt.Sprintf("%s/brightness", path), value)
}

// SetTrigger hands the LED to a kernel trigger such as "heartbeat" or "none".
func SetTrigger(side Side, color string, trigger string) error {
	path, err := ledPath(side, color)
	if err != nil {
		return err
	}
	return sysfs.WriteString(fmt.Sprintf("%s/trigger", path), trigger)
}

// SetAll lights both sides in the same color.
func SetAll(color Color) error {
	if err := SetColor(Left, color); err != nil {
		return err
	}
	return SetColor(Right, color)
}

// RunWarningBlink alternates both sides between red and off until the context
// is cancelled, then restores green.
func RunWarningBlink(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	on := false
	for {
		select {
		case <-ctx.Done():
			_ = SetAll(Green)
			return
		case <-ticker.C:
			if on {
				_ = SetAll(Off)
			} else {
				_ = SetAll(Red)
			}
			on = !on
		}
	}
}

func ledPath(side Side, color string) (string, error) {
	path := fmt.Sprintf("/sys/class/leds/%s:%s:brick-status", side, color)
	if sysfs.Exists(path) {
		return path, nil
	}

	// Older kernels named the LEDs ev3:left:green:ev3dev.
	name := "left"
	if side == Right {
		name = "right"
	}
	matches, err := sysfs.FS.Glob(fmt.Sprintf("/sys/class/leds/ev3:%s:%s:*", name, color))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("led %s:%s not found", side, color)
	}
	return matches[0], nil
}
