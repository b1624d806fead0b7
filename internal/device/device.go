// Package device locates lego devices below /sys/class and gives attribute
// level access to them. The kernel numbers device nodes (sensor0, motor1, ...)
// in discovery order, so callers look them up by port address instead.
package device

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ev3dev/internal/sysfs"
)

// Class names used by the ev3dev kernel modules.
const (
	ClassSensor = "lego-sensor"
	ClassMotor  = "tacho-motor"
	ClassPort   = "lego-port"
)

// ErrNotFound is returned when no device node matches the wanted address.
var ErrNotFound = errors.New("device not found")

// Device is one node below /sys/class/<class>/.
type Device struct {
	Path string
}

// Find locates the device of the given class whose address attribute matches
// port. If driver is non-empty the driver_name attribute must match too.
func Find(class, port, driver string) (*Device, error) {
	nodes, err := sysfs.FS.Glob(filepath.Join("/sys/class", class, "*"))
	if err != nil {
		return nil, errors.Wrapf(err, "scanning class %s", class)
	}
	for _, node := range nodes {
		addr, err := sysfs.ReadString(filepath.Join(node, "address"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(addr) != port {
			continue
		}
		if driver != "" {
			name, err := sysfs.ReadString(filepath.Join(node, "driver_name"))
			if err != nil || strings.TrimSpace(name) != driver {
				continue
			}
		}
		log.WithFields(log.Fields{"class": class, "port": port, "node": node}).
			Debug("device located")
		return &Device{Path: node}, nil
	}
	return nil, errors.Wrapf(ErrNotFound, "class %s port %s", class, port)
}

// Info describes one discovered device node.
type Info struct {
	Path    string
	Address string
	Driver  string
}

// List returns every device of a class currently known to the kernel.
func List(class string) ([]Info, error) {
	dir := filepath.Join("/sys/class", class)
	entries, err := sysfs.FS.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "scanning class %s", class)
	}
	var infos []Info
	for _, entry := range entries {
		node := filepath.Join(dir, entry.Name())
		addr, err := sysfs.ReadString(filepath.Join(node, "address"))
		if err != nil {
			continue
		}
		driver, _ := sysfs.ReadString(filepath.Join(node, "driver_name"))
		infos = append(infos, Info{
			Path:    node,
			Address: strings.TrimSpace(addr),
			Driver:  strings.TrimSpace(driver),
		})
	}
	return infos, nil
}

// ReadString reads one attribute of the device.
func (d *Device) ReadString(attr string) (string, error) {
	v, err := sysfs.ReadString(filepath.Join(d.Path, attr))
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", attr)
	}
	return v, nil
}

// ReadInt reads one integer attribute of the device.
func (d *Device) ReadInt(attr string) (int, error) {
	v, err := sysfs.ReadInt(filepath.Join(d.Path, attr))
	if err != nil {
		return 0, errors.Wrapf(err, "reading %s", attr)
	}
	return v, nil
}

// WriteString writes one attribute of the device.
func (d *Device) WriteString(attr, value string) error {
	if err := sysfs.WriteString(filepath.Join(d.Path, attr), value); err != nil {
		return errors.Wrapf(err, "writing %s", attr)
	}
	return nil
}

// WriteInt writes one integer attribute of the device.
func (d *Device) WriteInt(attr string, value int) error {
	if err := sysfs.WriteInt(filepath.Join(d.Path, attr), value); err != nil {
		return errors.Wrapf(err, "writing %s", attr)
	}
	return nil
}
