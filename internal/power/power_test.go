package power

import (
	"fmt"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPoweroffWithoutBus(t *testing.T) {
	old := ConnectSystemBus
	// override to return an error (avoid calling system bus in tests)
	ConnectSystemBus = func(_ ...dbus.ConnOption) (*dbus.Conn, error) { return nil, fmt.Errorf("no bus available") }
	defer func() { ConnectSystemBus = old }()

	err := Poweroff()
	if err == nil {
		t.Fatal("expected error from Poweroff when bus unavailable")
	}
	if !strings.Contains(err.Error(), "no bus available") {
		t.Fatalf("expected bus error to propagate, got %v", err)
	}
}

func TestRebootWithoutBus(t *testing.T) {
	old := ConnectSystemBus
	ConnectSystemBus = func(_ ...dbus.ConnOption) (*dbus.Conn, error) { return nil, fmt.Errorf("no bus available") }
	defer func() { ConnectSystemBus = old }()

	if err := Reboot(); err == nil {
		t.Fatal("expected error from Reboot when bus unavailable")
	}
}
