package device

// LegoPort drives a lego-port node. BrickPi style boards need the port told
// what is plugged in before a sensor or motor node appears.
type LegoPort struct {
	Device
}

// FindPort locates the lego-port node for the given address.
func FindPort(address string) (*LegoPort, error) {
	d, err := Find(ClassPort, address, "")
	if err != nil {
		return nil, err
	}
	return &LegoPort{Device: *d}, nil
}

// SetMode selects the port mode (for example "nxt-analog" or "ev3-uart").
func (p *LegoPort) SetMode(mode string) error {
	return p.WriteString("mode", mode)
}

// SetDevice names the driver to bind once a mode has been selected.
func (p *LegoPort) SetDevice(driver string) error {
	return p.WriteString("set_device", driver)
}

// Status reports the current port status ("no-device", "error", or the name
// of the bound driver).
func (p *LegoPort) Status() (string, error) {
	return p.ReadString("status")
}
