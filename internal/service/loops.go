// Package service contains the long-running monitor loops of the manager.
package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"ev3dev/internal/battery"
	"ev3dev/internal/config"
	"ev3dev/internal/leds"
	"ev3dev/internal/motor"
	"ev3dev/internal/sensor"
)

// BatterySample is one battery reading pushed by WatchBattery.
type BatterySample struct {
	Volts float64
	Time  time.Time
}

// WatchBattery polls the brick battery and starts the LED warning blink while
// the voltage stays below the configured alert threshold. Each reading is
// offered on samples, readings are dropped when nobody listens.
func WatchBattery(ctx context.Context, conf *config.Config, samples chan<- BatterySample) {
	log.Debug("starting battery loop")
	defer log.Debug("stopping battery loop")

	interval := time.Duration(conf.PollMillis) * time.Millisecond
	var blinkCancel context.CancelFunc = func() {}
	blinking := false
	defer func() { blinkCancel() }()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			volts, err := battery.Voltage()
			if err != nil {
				log.WithError(err).Debug("battery not readable")
				time.Sleep(5 * time.Second)
				continue
			}

			if samples != nil {
				select {
				case samples <- BatterySample{Volts: volts, Time: time.Now()}:
				default:
				}
			}

			low := conf.BatteryAlertVolts > 0 && volts < conf.BatteryAlertVolts
			if low && !blinking {
				log.WithField("volts", volts).Warn("battery low")
				var blinkCtx context.Context
				blinkCtx, blinkCancel = context.WithCancel(ctx)
				blinking = true
				go leds.RunWarningBlink(blinkCtx, 500*time.Millisecond)
			}
			if !low && blinking {
				blinkCancel()
				blinkCancel = func() {}
				blinking = false
			}

			time.Sleep(interval)
		}
	}
}

// WatchSensor polls all values of a sensor and offers each changed reading on
// samples. Readings are dropped when nobody listens.
func WatchSensor(ctx context.Context, s *sensor.Sensor, interval time.Duration, samples chan<- []int) {
	log.Debug("starting sensor loop")
	defer log.Debug("stopping sensor loop")

	var previous []int
	for {
		select {
		case <-ctx.Done():
			return
		default:
			n, err := s.NumValues()
			if err != nil {
				time.Sleep(5 * time.Second)
				continue
			}
			values := make([]int, n)
			ok := true
			for i := 0; i < n; i++ {
				values[i], err = s.Value(i)
				if err != nil {
					ok = false
					break
				}
			}
			if ok && !equal(values, previous) {
				select {
				case samples <- values:
				default:
				}
				previous = values
			}
			time.Sleep(interval)
		}
	}
}

// Watchdog stops all given motors as soon as one reports a stall, then
// returns. Run it in its own goroutine next to a motor command sequence.
func Watchdog(ctx context.Context, motors []*motor.Motor, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, m := range motors {
				stalled, err := m.IsStalled()
				if err != nil || !stalled {
					continue
				}
				log.Warn("motor stalled, stopping all motors")
				for _, victim := range motors {
					if err := victim.Stop(); err != nil {
						log.WithError(err).Error("stopping motor")
					}
				}
				return
			}
		}
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
