package service

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"ev3dev/internal/config"
	"ev3dev/internal/device"
	"ev3dev/internal/platform"
)

// ApplyPortConfig pushes the configured port modes and devices into the
// lego-port class. BrickPi style boards cannot autodetect what is plugged in,
// so ports stay unconfigured until this runs. Missing ports are skipped, the
// EV3 brick autodetects and exposes no configurable ports for sensors.
func ApplyPortConfig(conf *config.Config) {
	for name, pc := range conf.Ports {
		if pc.Mode == "" && pc.Device == "" {
			continue
		}
		address := portAddress(name)
		if address == "" {
			log.WithField("port", name).Warn("unknown port name in configuration")
			continue
		}
		port, err := device.FindPort(address)
		if err != nil {
			log.WithField("port", name).Debug("lego-port not present, skipping")
			continue
		}
		if pc.Mode != "" {
			if err := port.SetMode(pc.Mode); err != nil {
				log.WithError(err).WithField("port", name).Error("setting port mode")
				continue
			}
		}
		if pc.Device != "" {
			if err := port.SetDevice(pc.Device); err != nil {
				log.WithError(err).WithField("port", name).Error("setting port device")
			}
		}
	}
}

// portAddress maps a config port name ("in1", "outA") to the sysfs address of
// the detected platform.
func portAddress(name string) string {
	p := platform.Detect()
	switch {
	case strings.HasPrefix(name, "in"):
		n, err := strconv.Atoi(strings.TrimPrefix(name, "in"))
		if err != nil {
			return ""
		}
		return p.InputAddress(n)
	case strings.HasPrefix(name, "out") && len(name) == 4:
		return p.OutputAddress(name[3])
	}
	return ""
}
