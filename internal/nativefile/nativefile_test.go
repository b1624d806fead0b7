package nativefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestWriteThenReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev")

	f, err := OpenMode(path, unix.O_CREAT|unix.O_RDWR, 0644)
	if err != nil {
		t.Fatalf("OpenMode error: %v", err)
	}
	defer f.Close()

	payload := []byte("run-forever")
	n, err := f.Write(payload)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if n != len(payload) {
		t.Fatalf("short write: %d", n)
	}

	buf := make([]byte, len(payload))
	n, err = f.ReadAt(buf, 0)
	if err != nil {
		t.Fatalf("ReadAt error: %v", err)
	}
	if n != len(payload) || !bytes.Equal(buf, payload) {
		t.Fatalf("read back %q, wrote %q", buf[:n], payload)
	}
}

func TestCloseTwiceIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev")

	f, err := OpenMode(path, unix.O_CREAT|unix.O_RDWR, 0644)
	if err != nil {
		t.Fatalf("OpenMode error: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if f.Fd() != -1 {
		t.Fatalf("expected fd poisoned after Close, got %d", f.Fd())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close must be a no-op, got %v", err)
	}
}

func TestOpenMissingFileReturnsPathError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent"), unix.O_RDONLY)
	if err == nil {
		t.Fatal("expected error opening missing file")
	}
	var perr *os.PathError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *os.PathError, got %T", err)
	}
	if perr.Err != unix.ENOENT {
		t.Fatalf("expected ENOENT, got %v", perr.Err)
	}
}

func TestIoctlOnRegularFileFailsWithErrno(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev")

	f, err := OpenMode(path, unix.O_CREAT|unix.O_RDWR, 0644)
	if err != nil {
		t.Fatalf("OpenMode error: %v", err)
	}
	defer f.Close()

	// TCGETS on a regular file: the errno must come through unmodified.
	err = f.Ioctl(unix.TCGETS, 0)
	if err != unix.ENOTTY {
		t.Fatalf("expected ENOTTY, got %v", err)
	}
}

func TestMmapRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb")

	f, err := OpenMode(path, unix.O_CREAT|unix.O_RDWR, 0644)
	if err != nil {
		t.Fatalf("OpenMode error: %v", err)
	}
	defer f.Close()

	if err := unix.Ftruncate(f.Fd(), 4096); err != nil {
		t.Fatalf("Ftruncate error: %v", err)
	}

	data, err := f.Mmap(0, 4096, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		t.Fatalf("Mmap error: %v", err)
	}
	copy(data, "splash")
	if err := f.Munmap(data); err != nil {
		t.Fatalf("Munmap error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(content[:6]) != "splash" {
		t.Fatalf("mapped write not visible in file: %q", content[:6])
	}
}
