package sensor

// Driver names and modes of the stock EV3 sensors, as the ev3dev kernel
// modules report them.
const (
	driverTouch      = "lego-ev3-touch"
	driverColor      = "lego-ev3-color"
	driverIR         = "lego-ev3-ir"
	driverGyro       = "lego-ev3-gyro"
	driverUltrasonic = "lego-ev3-us"
)

// TouchSensor is the EV3 touch sensor. Its single mode reports 0 or 1.
type TouchSensor struct {
	*Sensor
}

func OpenTouch(port int) (*TouchSensor, error) {
	s, err := Open(port, driverTouch)
	if err != nil {
		return nil, err
	}
	return &TouchSensor{Sensor: s}, nil
}

// IsPressed reports whether the button is currently pushed in.
func (t *TouchSensor) IsPressed() (bool, error) {
	v, err := t.Value(0)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ColorSensor is the EV3 color sensor.
type ColorSensor struct {
	*Sensor
}

func OpenColor(port int) (*ColorSensor, error) {
	s, err := Open(port, driverColor)
	if err != nil {
		return nil, err
	}
	return &ColorSensor{Sensor: s}, nil
}

// Reflected returns the reflected light intensity in percent.
func (c *ColorSensor) Reflected() (int, error) {
	if err := c.SetMode("COL-REFLECT"); err != nil {
		return 0, err
	}
	return c.Value(0)
}

// Ambient returns the ambient light intensity in percent.
func (c *ColorSensor) Ambient() (int, error) {
	if err := c.SetMode("COL-AMBIENT"); err != nil {
		return 0, err
	}
	return c.Value(0)
}

// ColorID returns the detected color index (0 none .. 7 brown).
func (c *ColorSensor) ColorID() (int, error) {
	if err := c.SetMode("COL-COLOR"); err != nil {
		return 0, err
	}
	return c.Value(0)
}

// IRSensor is the EV3 infrared sensor.
type IRSensor struct {
	*Sensor
}

func OpenIR(port int) (*IRSensor, error) {
	s, err := Open(port, driverIR)
	if err != nil {
		return nil, err
	}
	return &IRSensor{Sensor: s}, nil
}

// Proximity returns the distance estimate in percent, 100 is out of range.
func (i *IRSensor) Proximity() (int, error) {
	if err := i.SetMode("IR-PROX"); err != nil {
		return 0, err
	}
	return i.Value(0)
}

// Seek returns heading (-25..25) and distance for the beacon on channel 1.
func (i *IRSensor) Seek() (heading, distance int, err error) {
	if err = i.SetMode("IR-SEEK"); err != nil {
		return 0, 0, err
	}
	heading, err = i.Value(0)
	if err != nil {
		return 0, 0, err
	}
	distance, err = i.Value(1)
	return heading, distance, err
}

// GyroSensor is the EV3 gyro sensor.
type GyroSensor struct {
	*Sensor
}

func OpenGyro(port int) (*GyroSensor, error) {
	s, err := Open(port, driverGyro)
	if err != nil {
		return nil, err
	}
	return &GyroSensor{Sensor: s}, nil
}

// Angle returns the accumulated rotation in degrees.
func (g *GyroSensor) Angle() (int, error) {
	if err := g.SetMode("GYRO-ANG"); err != nil {
		return 0, err
	}
	return g.Value(0)
}

// Rate returns the rotation rate in degrees per second.
func (g *GyroSensor) Rate() (int, error) {
	if err := g.SetMode("GYRO-RATE"); err != nil {
		return 0, err
	}
	return g.Value(0)
}

// UltrasonicSensor is the EV3 ultrasonic sensor.
type UltrasonicSensor struct {
	*Sensor
}

func OpenUltrasonic(port int) (*UltrasonicSensor, error) {
	s, err := Open(port, driverUltrasonic)
	if err != nil {
		return nil, err
	}
	return &UltrasonicSensor{Sensor: s}, nil
}

// DistanceCentimeters returns the measured distance in centimeters.
func (u *UltrasonicSensor) DistanceCentimeters() (float64, error) {
	if err := u.SetMode("US-DIST-CM"); err != nil {
		return 0, err
	}
	return u.Float(0)
}
