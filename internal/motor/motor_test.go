package motor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev3dev/internal/fakesys"
	"ev3dev/internal/motor"
	"ev3dev/internal/platform"
	"ev3dev/internal/sysfs"
)

func withEV3Motor(t *testing.T) (*fakesys.FS, string) {
	t.Helper()
	fake := fakesys.New()
	fake.AddBoardInfo("LEGO MINDSTORMS EV3 Programmable Brick")
	base := fake.AddMotor(0, "ev3-ports:outA", "lego-ev3-l-motor")
	old := sysfs.FS
	sysfs.FS = fake
	platform.Reset()
	t.Cleanup(func() {
		sysfs.FS = old
		platform.Reset()
	})
	return fake, base
}

func attr(t *testing.T, fake *fakesys.FS, path string) string {
	t.Helper()
	data, err := fake.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunForeverSequence(t *testing.T) {
	fake, base := withEV3Motor(t)

	m, err := motor.OpenLarge('A')
	require.NoError(t, err)

	require.NoError(t, m.SetSpeed(500))
	require.NoError(t, m.SetStopAction(motor.StopHold))
	require.NoError(t, m.RunForever())

	assert.Equal(t, "500", attr(t, fake, base+"/speed_sp"))
	assert.Equal(t, "hold", attr(t, fake, base+"/stop_action"))
	assert.Equal(t, "run-forever", attr(t, fake, base+"/command"))

	require.NoError(t, m.Stop())
	assert.Equal(t, "stop", attr(t, fake, base+"/command"))
}

func TestRunTimedWritesMilliseconds(t *testing.T) {
	fake, base := withEV3Motor(t)

	m, err := motor.OpenLarge('A')
	require.NoError(t, err)

	require.NoError(t, m.RunTimed(2*time.Second))
	assert.Equal(t, "2000", attr(t, fake, base+"/time_sp"))
	assert.Equal(t, "run-timed", attr(t, fake, base+"/command"))
}

func TestRunToPosition(t *testing.T) {
	fake, base := withEV3Motor(t)

	m, err := motor.OpenLarge('A')
	require.NoError(t, err)

	require.NoError(t, m.RunToPosition(1080))
	assert.Equal(t, "1080", attr(t, fake, base+"/position_sp"))
	assert.Equal(t, "run-to-abs-pos", attr(t, fake, base+"/command"))

	require.NoError(t, m.RunRelative(-360))
	assert.Equal(t, "-360", attr(t, fake, base+"/position_sp"))
	assert.Equal(t, "run-to-rel-pos", attr(t, fake, base+"/command"))
}

func TestStateFlags(t *testing.T) {
	fake, base := withEV3Motor(t)

	m, err := motor.OpenLarge('A')
	require.NoError(t, err)

	moving, err := m.IsMoving()
	require.NoError(t, err)
	assert.False(t, moving)

	_ = fake.WriteFile(base+"/state", []byte("running stalled\n"), 0644)

	moving, err = m.IsMoving()
	require.NoError(t, err)
	assert.True(t, moving)

	stalled, err := m.IsStalled()
	require.NoError(t, err)
	assert.True(t, stalled)
}

func TestOpenMediumRejectsLargeMotor(t *testing.T) {
	withEV3Motor(t)

	_, err := motor.OpenMedium('A')
	require.Error(t, err)
}
