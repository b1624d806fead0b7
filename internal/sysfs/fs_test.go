package sysfs_test

import (
	"testing"

	"ev3dev/internal/fakesys"
	"ev3dev/internal/sysfs"
)

func TestReadStringTrimsSingleNewline(t *testing.T) {
	old := sysfs.FS
	fake := fakesys.New()
	_ = fake.WriteFile("/sys/class/lego-sensor/sensor0/mode", []byte("TOUCH\n"), 0644)
	_ = fake.WriteFile("/sys/class/lego-sensor/sensor0/units", []byte("pct\n\n"), 0644)
	sysfs.FS = fake
	defer func() { sysfs.FS = old }()

	got, err := sysfs.ReadString("/sys/class/lego-sensor/sensor0/mode")
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if got != "TOUCH" {
		t.Fatalf("expected TOUCH got %q", got)
	}

	// Only the final newline goes, embedded ones stay.
	got, err = sysfs.ReadString("/sys/class/lego-sensor/sensor0/units")
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if got != "pct\n" {
		t.Fatalf("expected one newline kept, got %q", got)
	}
}

func TestReadIntAndWriteInt(t *testing.T) {
	old := sysfs.FS
	fake := fakesys.New()
	sysfs.FS = fake
	defer func() { sysfs.FS = old }()

	if err := sysfs.WriteInt("/sys/class/tacho-motor/motor0/speed_sp", 500); err != nil {
		t.Fatalf("WriteInt error: %v", err)
	}

	data, err := fake.ReadFile("/sys/class/tacho-motor/motor0/speed_sp")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "500" {
		t.Fatalf("expected no newline appended, got %q", string(data))
	}

	v, err := sysfs.ReadInt("/sys/class/tacho-motor/motor0/speed_sp")
	if err != nil {
		t.Fatalf("ReadInt error: %v", err)
	}
	if v != 500 {
		t.Fatalf("expected 500 got %d", v)
	}
}

func TestReadIntTrimsWhitespace(t *testing.T) {
	old := sysfs.FS
	fake := fakesys.New()
	_ = fake.WriteFile("/sys/class/power_supply/lego-ev3-battery/voltage_now", []byte(" 7982000\n"), 0644)
	sysfs.FS = fake
	defer func() { sysfs.FS = old }()

	v, err := sysfs.ReadInt("/sys/class/power_supply/lego-ev3-battery/voltage_now")
	if err != nil {
		t.Fatalf("ReadInt error: %v", err)
	}
	if v != 7982000 {
		t.Fatalf("expected 7982000 got %d", v)
	}
}

func TestExists(t *testing.T) {
	old := sysfs.FS
	fake := fakesys.New()
	fake.MkdirAll("/sys/class/leds")
	sysfs.FS = fake
	defer func() { sysfs.FS = old }()

	if !sysfs.Exists("/sys/class/leds") {
		t.Fatal("expected /sys/class/leds to exist")
	}
	if sysfs.Exists("/sys/class/tacho-motor/motor0") {
		t.Fatal("expected missing path to not exist")
	}
}
