// Command ev3dev-mgr manages LEGO Mindstorms hardware on ev3dev boards (EV3
// brick, BrickPi, PiStorms) through sysfs and the framebuffer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ev3dev/internal/battery"
	"ev3dev/internal/config"
	"ev3dev/internal/device"
	"ev3dev/internal/display"
	"ev3dev/internal/leds"
	"ev3dev/internal/motor"
	"ev3dev/internal/platform"
	"ev3dev/internal/power"
	"ev3dev/internal/sensor"
	"ev3dev/internal/service"
)

var Version = "dev"

func main() {
	var conf *config.Config

	rootCmd := &cobra.Command{
		Use:   "ev3dev-mgr",
		Short: "ev3dev-mgr drives LEGO Mindstorms sensors, motors and the brick display on ev3dev.",
		Long: "ev3dev-mgr drives LEGO Mindstorms hardware on ev3dev boards (EV3 brick, BrickPi, " +
			"PiStorms). It talks to the lego kernel modules through sysfs, to the LCD through " +
			"the framebuffer, and can monitor the battery and stop stalled motors.",
	}

	debugPtr := rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	versionPtr := rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
	configPtr := rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (default ~/.config/ev3dev-mgr/config.yaml)")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if *debugPtr {
			log.SetLevel(log.DebugLevel)
		}
		var err error
		conf, err = config.Load(*configPtr)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if conf.Platform != "" {
			platform.Override = platform.Platform(conf.Platform)
		}
		service.ApplyPortConfig(conf)
		return nil
	}

	rootCmd.Run = func(cmd *cobra.Command, _ []string) {
		if *versionPtr {
			fmt.Printf("ev3dev-mgr version %s\n", Version)
			return
		}
		_ = cmd.Help()
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show platform, battery and detected devices",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("Platform:", platform.Detect())
			if volts, err := battery.Voltage(); err == nil {
				fmt.Printf("Battery: %.2f V\n", volts)
			} else {
				fmt.Println("Battery: not readable")
			}
			for _, class := range []string{device.ClassSensor, device.ClassMotor, device.ClassPort} {
				infos, err := device.List(class)
				if err != nil {
					continue
				}
				for _, info := range infos {
					fmt.Printf("%s: %s (%s)\n", class, info.Address, info.Driver)
				}
			}
		},
	}

	motorPort := "A"
	motorSpeed := 500
	motorMillis := 2000
	motorCmd := &cobra.Command{
		Use:   "motor",
		Short: "Run the motor on an output port for a moment",
		RunE: func(_ *cobra.Command, _ []string) error {
			port, err := parseOutputPort(motorPort)
			if err != nil {
				return err
			}
			log.Info("Starting motor on ", motorPort)
			m, err := motor.OpenLarge(port)
			if err != nil {
				return err
			}
			if err := m.SetStopAction(motor.StopHold); err != nil {
				return err
			}
			if err := m.SetSpeed(motorSpeed); err != nil {
				return err
			}
			if err := m.RunForever(); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go service.Watchdog(ctx, []*motor.Motor{m}, 100*time.Millisecond)

			moving, _ := m.IsMoving()
			speed, _ := m.Speed()
			log.Infof("Large motor is moving: %v at speed %d", moving, speed)
			time.Sleep(time.Duration(motorMillis) * time.Millisecond)

			if err := m.Stop(); err != nil {
				return err
			}
			log.Info("Stopped motor")
			return nil
		},
	}
	motorCmd.Flags().StringVar(&motorPort, "port", "A", "Output port (A-D)")
	motorCmd.Flags().IntVar(&motorSpeed, "speed", 500, "Speed setpoint in tacho counts per second")
	motorCmd.Flags().IntVar(&motorMillis, "millis", 2000, "How long to run, in milliseconds")

	sensorPort := 1
	sensorIterations := 100
	sensorCmd := &cobra.Command{
		Use:   "sensor",
		Short: "Poll the touch sensor and the battery in a loop",
		RunE: func(_ *cobra.Command, _ []string) error {
			touch, err := sensor.OpenTouch(sensorPort)
			if err != nil {
				return err
			}
			interval := time.Duration(conf.PollMillis) * time.Millisecond
			for i := 0; i <= sensorIterations; i++ {
				pressed, err := touch.IsPressed()
				if err != nil {
					return err
				}
				volts, err := battery.Voltage()
				if err != nil {
					return err
				}
				fmt.Println("Iteration:", i)
				fmt.Printf("Battery: %.2f\n", volts)
				fmt.Println("Touch:", boolToInt(pressed))
				fmt.Println()
				time.Sleep(interval)
			}
			return nil
		},
	}
	sensorCmd.Flags().IntVar(&sensorPort, "port", 1, "Input port (1-4)")
	sensorCmd.Flags().IntVar(&sensorIterations, "iterations", 100, "Number of samples")

	ledColor := "green"
	ledTrigger := ""
	ledsCmd := &cobra.Command{
		Use:   "leds",
		Short: "Set the brick status LEDs",
		RunE: func(_ *cobra.Command, _ []string) error {
			if ledTrigger != "" {
				for _, side := range []leds.Side{leds.Left, leds.Right} {
					if err := leds.SetTrigger(side, "green", ledTrigger); err != nil {
						return err
					}
				}
				return nil
			}
			return leds.SetAll(leds.Color(ledColor))
		},
	}
	ledsCmd.Flags().StringVar(&ledColor, "color", "green", "off, green, red or amber")
	ledsCmd.Flags().StringVar(&ledTrigger, "trigger", "", "Hand the green LEDs to a kernel trigger (e.g. heartbeat)")

	displayClear := false
	displaySplash := false
	displayCmd := &cobra.Command{
		Use:   "display",
		Short: "Draw a test pattern on the LCD",
		RunE: func(_ *cobra.Command, _ []string) error {
			fb, err := display.Open(conf.Framebuffer)
			if err != nil {
				return err
			}
			defer fb.Close()
			switch {
			case displayClear:
				if err := fb.Clear(); err != nil {
					return err
				}
			case displaySplash:
				if err := fb.DrawImage(display.Splash(fb.Bounds())); err != nil {
					return err
				}
			default:
				if err := fb.DrawImage(display.Checkerboard(fb.Bounds())); err != nil {
					return err
				}
			}
			return fb.Flush()
		},
	}
	displayCmd.Flags().BoolVar(&displayClear, "clear", false, "Blank the screen instead")
	displayCmd.Flags().BoolVar(&displaySplash, "splash", false, "Draw the splash screen instead")

	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the battery monitor until interrupted",
		Run: func(_ *cobra.Command, _ []string) {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			samples := make(chan service.BatterySample, 1)
			go service.WatchBattery(ctx, conf, samples)

			for {
				select {
				case <-ctx.Done():
					return
				case s := <-samples:
					log.WithField("volts", s.Volts).Info("battery")
				}
			}
		},
	}

	poweroffCmd := &cobra.Command{
		Use:   "poweroff",
		Short: "Power the brick off through logind",
		RunE: func(_ *cobra.Command, _ []string) error {
			return power.Poweroff()
		},
	}

	rootCmd.AddCommand(statusCmd, motorCmd, sensorCmd, ledsCmd, displayCmd, monitorCmd, poweroffCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %s", err)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseOutputPort validates a --port flag value against the output ports
// every supported board has.
func parseOutputPort(s string) (byte, error) {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'D' {
		return 0, fmt.Errorf("invalid output port %q, want A-D", s)
	}
	return s[0], nil
}
