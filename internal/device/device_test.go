package device_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev3dev/internal/device"
	"ev3dev/internal/fakesys"
	"ev3dev/internal/sysfs"
)

func withFake(t *testing.T, fake *fakesys.FS) {
	t.Helper()
	old := sysfs.FS
	sysfs.FS = fake
	t.Cleanup(func() { sysfs.FS = old })
}

func TestFindByAddress(t *testing.T) {
	fake := fakesys.New()
	fake.AddSensor(0, "ev3-ports:in1", "lego-ev3-touch")
	fake.AddSensor(1, "ev3-ports:in3", "lego-ev3-color")
	withFake(t, fake)

	d, err := device.Find(device.ClassSensor, "ev3-ports:in3", "")
	require.NoError(t, err)
	assert.Equal(t, "/sys/class/lego-sensor/sensor1", d.Path)
}

func TestFindChecksDriverName(t *testing.T) {
	fake := fakesys.New()
	fake.AddSensor(0, "ev3-ports:in1", "lego-ev3-touch")
	withFake(t, fake)

	_, err := device.Find(device.ClassSensor, "ev3-ports:in1", "lego-ev3-gyro")
	require.Error(t, err)
	assert.True(t, errors.Is(err, device.ErrNotFound))

	d, err := device.Find(device.ClassSensor, "ev3-ports:in1", "lego-ev3-touch")
	require.NoError(t, err)
	assert.Equal(t, "/sys/class/lego-sensor/sensor0", d.Path)
}

func TestFindNotFound(t *testing.T) {
	withFake(t, fakesys.New())

	_, err := device.Find(device.ClassMotor, "ev3-ports:outA", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, device.ErrNotFound))
	assert.Contains(t, err.Error(), "ev3-ports:outA")
}

func TestListReturnsAllNodes(t *testing.T) {
	fake := fakesys.New()
	fake.AddSensor(0, "ev3-ports:in1", "lego-ev3-touch")
	fake.AddSensor(1, "ev3-ports:in3", "lego-ev3-color")
	withFake(t, fake)

	infos, err := device.List(device.ClassSensor)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "ev3-ports:in1", infos[0].Address)
	assert.Equal(t, "lego-ev3-touch", infos[0].Driver)
	assert.Equal(t, "ev3-ports:in3", infos[1].Address)
}

func TestListMissingClassIsAnError(t *testing.T) {
	withFake(t, fakesys.New())

	_, err := device.List(device.ClassSensor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), device.ClassSensor)
}

func TestAttributeReadWrite(t *testing.T) {
	fake := fakesys.New()
	fake.AddMotor(0, "ev3-ports:outB", "lego-ev3-l-motor")
	withFake(t, fake)

	d, err := device.Find(device.ClassMotor, "ev3-ports:outB", "")
	require.NoError(t, err)

	require.NoError(t, d.WriteInt("speed_sp", 750))
	v, err := d.ReadInt("speed_sp")
	require.NoError(t, err)
	assert.Equal(t, 750, v)

	name, err := d.ReadString("driver_name")
	require.NoError(t, err)
	assert.Equal(t, "lego-ev3-l-motor", name)
}

func TestLegoPortConfiguration(t *testing.T) {
	fake := fakesys.New()
	fake.AddPort(0, "spi0.1:S1")
	withFake(t, fake)

	port, err := device.FindPort("spi0.1:S1")
	require.NoError(t, err)

	require.NoError(t, port.SetMode("nxt-analog"))
	require.NoError(t, port.SetDevice("lego-nxt-touch"))

	mode, err := fake.ReadFile("/sys/class/lego-port/port0/mode")
	require.NoError(t, err)
	assert.Equal(t, "nxt-analog", string(mode))

	dev, err := fake.ReadFile("/sys/class/lego-port/port0/set_device")
	require.NoError(t, err)
	assert.Equal(t, "lego-nxt-touch", string(dev))

	status, err := port.Status()
	require.NoError(t, err)
	assert.Equal(t, "no-device", status)
}
