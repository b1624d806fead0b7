// Package fakesys provides an in-memory sysfs.FileSystem used by tests. It can
// be pre-populated with the sysfs tree a real ev3dev kernel would expose so
// packages can be tested off-device.
package fakesys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FS is a map-backed sysfs.FileSystem. The zero value is not usable, call New.
// It is safe for concurrent use, monitor loop tests poke attributes while the
// loop under test reads them.
type FS struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

func New() *FS {
	return &FS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// MkdirAll records a directory and all of its parents.
func (f *FS) MkdirAll(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mkdirAll(path)
}

func (f *FS) mkdirAll(path string) {
	path = filepath.Clean(path)
	for path != "/" && path != "." {
		f.dirs[path] = true
		path = filepath.Dir(path)
	}
}

func (f *FS) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.files[filepath.Clean(path)]; ok {
		return append([]byte(nil), b...), nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (f *FS) WriteFile(path string, data []byte, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = filepath.Clean(path)
	f.mkdirAll(filepath.Dir(path))
	f.files[path] = append([]byte(nil), data...)
	return nil
}

func (f *FS) Glob(pattern string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matches []string
	for path := range f.files {
		ok, err := filepath.Match(pattern, path)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, path)
		}
	}
	for path := range f.dirs {
		ok, err := filepath.Match(pattern, path)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, path)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (f *FS) Stat(path string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = filepath.Clean(path)
	if b, ok := f.files[path]; ok {
		return fileInfo{name: filepath.Base(path), size: int64(len(b))}, nil
	}
	if f.dirs[path] {
		return fileInfo{name: filepath.Base(path), dir: true}, nil
	}
	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

func (f *FS) ReadDir(path string) ([]os.DirEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = filepath.Clean(path)
	if !f.dirs[path] {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}
	seen := make(map[string]bool)
	var entries []os.DirEntry
	add := func(child string, dir bool) {
		rel := strings.TrimPrefix(child, path+"/")
		name := rel
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			name = rel[:i]
			dir = true
		}
		if !seen[name] {
			seen[name] = true
			entries = append(entries, dirEntry{name: name, dir: dir})
		}
	}
	for p := range f.files {
		if strings.HasPrefix(p, path+"/") {
			add(p, false)
		}
	}
	for p := range f.dirs {
		if strings.HasPrefix(p, path+"/") {
			add(p, true)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

type fileInfo struct {
	name string
	size int64
	dir  bool
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) Mode() os.FileMode  { return 0644 }
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return i.dir }
func (i fileInfo) Sys() any           { return nil }

type dirEntry struct {
	name string
	dir  bool
}

func (e dirEntry) Name() string               { return e.name }
func (e dirEntry) IsDir() bool                { return e.dir }
func (e dirEntry) Type() fs.FileMode          { return 0 }
func (e dirEntry) Info() (fs.FileInfo, error) { return fileInfo{name: e.name, dir: e.dir}, nil }

// set writes an attribute file below base.
func (f *FS) set(base, attr, value string) {
	_ = f.WriteFile(filepath.Join(base, attr), []byte(value+"\n"), 0644)
}

// AddSensor populates a lego-sensor node with the given attributes. Sensors
// report a single value of zero until a test overrides value0.
func (f *FS) AddSensor(n int, address, driver string) string {
	base := fmt.Sprintf("/sys/class/lego-sensor/sensor%d", n)
	f.MkdirAll(base)
	f.set(base, "address", address)
	f.set(base, "driver_name", driver)
	f.set(base, "mode", "")
	f.set(base, "num_values", "1")
	f.set(base, "decimals", "0")
	f.set(base, "value0", "0")
	return base
}

// AddMotor populates a tacho-motor node with the given attributes.
func (f *FS) AddMotor(n int, address, driver string) string {
	base := fmt.Sprintf("/sys/class/tacho-motor/motor%d", n)
	f.MkdirAll(base)
	f.set(base, "address", address)
	f.set(base, "driver_name", driver)
	f.set(base, "speed_sp", "0")
	f.set(base, "speed", "0")
	f.set(base, "position", "0")
	f.set(base, "duty_cycle", "0")
	f.set(base, "polarity", "normal")
	f.set(base, "stop_action", "coast")
	f.set(base, "state", "")
	f.set(base, "max_speed", "1050")
	f.set(base, "count_per_rot", "360")
	return base
}

// AddPort populates a lego-port node, as a BrickPi exposes them.
func (f *FS) AddPort(n int, address string) string {
	base := fmt.Sprintf("/sys/class/lego-port/port%d", n)
	f.MkdirAll(base)
	f.set(base, "address", address)
	f.set(base, "mode", "auto")
	f.set(base, "status", "no-device")
	return base
}

// AddBattery populates a power_supply node named like the EV3 brick battery.
func (f *FS) AddBattery(name string, microvolts, microamps int) string {
	base := filepath.Join("/sys/class/power_supply", name)
	f.MkdirAll(base)
	f.set(base, "voltage_now", fmt.Sprint(microvolts))
	f.set(base, "current_now", fmt.Sprint(microamps))
	return base
}

// AddBrickLEDs populates the four EV3 status LEDs.
func (f *FS) AddBrickLEDs() {
	for _, name := range []string{
		"led0:green:brick-status",
		"led0:red:brick-status",
		"led1:green:brick-status",
		"led1:red:brick-status",
	} {
		base := filepath.Join("/sys/class/leds", name)
		f.MkdirAll(base)
		f.set(base, "brightness", "0")
		f.set(base, "max_brightness", "255")
		f.set(base, "trigger", "[none] heartbeat")
	}
}

// AddBoardInfo records the board model the way /sys/class/board-info exposes it.
func (f *FS) AddBoardInfo(model string) {
	base := "/sys/class/board-info/board0"
	f.MkdirAll(base)
	f.set(base, "uevent", "BOARD_INFO_MODEL="+model)
}
