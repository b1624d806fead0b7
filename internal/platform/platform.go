// Package platform detects which ev3dev board the process is running on and
// maps logical sensor/motor ports to the sysfs addresses each board uses.
package platform

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"ev3dev/internal/sysfs"
)

// Platform identifies an ev3dev compatible board.
type Platform string

const (
	EV3Brick Platform = "ev3"
	BrickPi  Platform = "brickpi"
	BrickPi3 Platform = "brickpi3"
	PiStorms Platform = "pistorms"
	Unknown  Platform = "unknown"
)

var (
	mu       sync.Mutex
	detected Platform
	// Override forces the detected platform, set from configuration before
	// any hardware access.
	Override Platform
)

// Detect returns the current platform. The sysfs probe runs once, later calls
// return the cached result.
func Detect() Platform {
	mu.Lock()
	defer mu.Unlock()

	if Override != "" {
		return Override
	}
	if detected != "" {
		return detected
	}
	detected = probe()
	log.WithField("platform", detected).Debug("platform detected")
	return detected
}

// Reset clears the cached detection. Tests use it between fixture swaps.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	detected = ""
	Override = ""
}

func probe() Platform {
	// ev3dev kernels expose the board model through the board-info class.
	matches, err := sysfs.FS.Glob("/sys/class/board-info/board*/uevent")
	if err == nil {
		for _, path := range matches {
			data, err := sysfs.FS.ReadFile(path)
			if err != nil {
				continue
			}
			if p := fromModel(string(data)); p != Unknown {
				return p
			}
		}
	}

	// Fall back to the device tree model, present on the EV3 and Raspberry Pi.
	data, err := sysfs.FS.ReadFile("/proc/device-tree/model")
	if err == nil {
		if p := fromModel(string(data)); p != Unknown {
			return p
		}
	}
	return Unknown
}

func fromModel(model string) Platform {
	model = strings.ToLower(model)
	switch {
	case strings.Contains(model, "brickpi3"):
		return BrickPi3
	case strings.Contains(model, "brickpi"):
		return BrickPi
	case strings.Contains(model, "pistorms"):
		return PiStorms
	case strings.Contains(model, "ev3"):
		return EV3Brick
	}
	return Unknown
}

// InputAddress returns the sysfs address of the numbered input port (1-4).
func (p Platform) InputAddress(n int) string {
	switch p {
	case BrickPi, BrickPi3:
		return "spi0.1:S" + digit(n)
	case PiStorms:
		return "pistorms:BAS" + digit(n)
	default:
		return "ev3-ports:in" + digit(n)
	}
}

// OutputAddress returns the sysfs address of the lettered output port (A-D).
func (p Platform) OutputAddress(port byte) string {
	switch p {
	case BrickPi, BrickPi3:
		return "spi0.1:M" + string(port)
	case PiStorms:
		// PiStorms numbers its motor ports, bank A first.
		return "pistorms:BAM" + digit(int(port-'A')+1)
	default:
		return "ev3-ports:out" + string(port)
	}
}

func digit(n int) string {
	if n < 1 || n > 4 {
		n = 1
	}
	return string(rune('0' + n))
}
