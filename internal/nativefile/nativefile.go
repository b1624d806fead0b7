// Package nativefile provides raw file descriptor access to Linux character
// devices. The lego kernel modules and the framebuffer need ioctl and mmap,
// which os.File does not expose cleanly, so devices are driven through this
// package instead.
package nativefile

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// File wraps an open Linux file descriptor. It performs no buffering and no
// retries, every call maps onto exactly one syscall and errors are the errno
// returned by the kernel.
type File struct {
	fd   int
	path string
}

// Open opens the file or device at path with Linux style open(2) flags.
func Open(path string, flags int) (*File, error) {
	return OpenMode(path, flags, 0)
}

// OpenMode is Open with an explicit creation mode, for flags including O_CREAT.
func OpenMode(path string, flags int, mode uint32) (*File, error) {
	fd, err := unix.Open(path, flags, mode)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return &File{fd: fd, path: path}, nil
}

// Fd returns the underlying descriptor, or -1 after Close.
func (f *File) Fd() int { return f.fd }

// Path returns the path the file was opened with.
func (f *File) Path() string { return f.path }

// Read reads up to len(buf) bytes at the current offset.
func (f *File) Read(buf []byte) (int, error) {
	return unix.Read(f.fd, buf)
}

// Write writes len(buf) bytes at the current offset.
func (f *File) Write(buf []byte) (int, error) {
	return unix.Write(f.fd, buf)
}

// ReadAt reads at the given offset without moving the file offset.
func (f *File) ReadAt(buf []byte, off int64) (int, error) {
	return unix.Pread(f.fd, buf, off)
}

// WriteAt writes at the given offset without moving the file offset.
func (f *File) WriteAt(buf []byte, off int64) (int, error) {
	return unix.Pwrite(f.fd, buf, off)
}

// Ioctl performs an ioctl with an integer argument.
func (f *File) Ioctl(req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(f.fd), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// IoctlPointer performs an ioctl whose argument is a pointer to a kernel
// defined struct. The caller keeps ownership of the pointed-to memory.
func (f *File) IoctlPointer(req uintptr, arg unsafe.Pointer) error {
	return f.Ioctl(req, uintptr(arg))
}

// Mmap maps length bytes of the file starting at offset into memory.
func (f *File) Mmap(offset int64, length int, prot, flags int) ([]byte, error) {
	return unix.Mmap(f.fd, offset, length, prot, flags)
}

// Munmap releases a mapping obtained from Mmap.
func (f *File) Munmap(data []byte) error {
	return unix.Munmap(data)
}

// Close closes the descriptor. Closing an already closed File is a no-op.
func (f *File) Close() error {
	if f.fd == -1 {
		return nil
	}
	fd := f.fd
	f.fd = -1
	return unix.Close(fd)
}
