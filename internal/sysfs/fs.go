// Package sysfs provides an abstraction over file system operations to allow for easier testing.
package sysfs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileSystem abstracts basic file operations used against sysfs/dev nodes.
// Tests can replace `FS` with a fake implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Glob(pattern string) ([]string, error)
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
}

type defaultFS struct{}

func (defaultFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
func (defaultFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
func (defaultFS) Glob(pattern string) ([]string, error)      { return filepath.Glob(pattern) }
func (defaultFS) Stat(path string) (os.FileInfo, error)      { return os.Stat(path) }
func (defaultFS) ReadDir(path string) ([]os.DirEntry, error) { return os.ReadDir(path) }

// FS is the package-level FileSystem used by code accessing sysfs. Tests may replace it.
var FS FileSystem = defaultFS{}

// ReadString reads a sysfs attribute and strips the trailing newline the
// kernel appends. Exactly one newline is removed, the rest of the value is
// returned untouched.
func ReadString(path string) (string, error) {
	data, err := FS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// ReadInt reads a sysfs attribute and parses it as a decimal integer.
func ReadInt(path string) (int, error) {
	s, err := ReadString(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

// WriteString writes a string value to a sysfs attribute. No newline is
// appended, the kernel does not require one.
func WriteString(path, value string) error {
	return FS.WriteFile(path, []byte(value), 0644)
}

// WriteInt writes an integer value to a sysfs attribute.
func WriteInt(path string, value int) error {
	return WriteString(path, strconv.Itoa(value))
}

// Exists reports whether the given path is present.
func Exists(path string) bool {
	_, err := FS.Stat(path)
	return err == nil
}
