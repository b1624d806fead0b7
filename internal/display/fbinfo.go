package display

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"ev3dev/internal/nativefile"
)

// Framebuffer ioctl requests from <linux/fb.h>.
const (
	fbioGetVScreenInfo = 0x4600
	fbioPutVScreenInfo = 0x4601
	fbioGetFScreenInfo = 0x4602
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

// fbVarScreenInfo mirrors struct fb_var_screeninfo.
type fbVarScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          fbBitfield
	Green        fbBitfield
	Blue         fbBitfield
	Transp       fbBitfield
	NonStd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	PixClock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HSyncLen     uint32
	VSyncLen     uint32
	Sync         uint32
	VMode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// fbFixScreenInfo mirrors struct fb_fix_screeninfo.
type fbFixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// fbDevice is the shared open/ioctl/mmap plumbing under both providers.
type fbDevice struct {
	file     *nativefile.File
	variable fbVarScreenInfo
	fixed    fbFixScreenInfo
	pixels   []byte
}

// openFB opens the device and queries both screeninfo structs.
func openFB(path string) (*fbDevice, error) {
	f, err := nativefile.Open(path, unix.O_RDWR)
	if err != nil {
		return nil, err
	}
	d := &fbDevice{file: f}
	if err := f.IoctlPointer(fbioGetVScreenInfo, unsafe.Pointer(&d.variable)); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.IoctlPointer(fbioGetFScreenInfo, unsafe.Pointer(&d.fixed)); err != nil {
		_ = f.Close()
		return nil, err
	}
	return d, nil
}

// mapPixels maps the whole screen memory read/write.
func (d *fbDevice) mapPixels() error {
	pixels, err := d.file.Mmap(0, int(d.fixed.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	d.pixels = pixels
	return nil
}

// Stride returns the row length in bytes as the kernel reports it.
func (d *fbDevice) Stride() int { return int(d.fixed.LineLength) }

// Flush is a no-op: the mapping is MAP_SHARED, every write lands directly in
// screen memory.
func (d *fbDevice) Flush() error { return nil }

func (d *fbDevice) close() error {
	if d.pixels != nil {
		if err := d.file.Munmap(d.pixels); err != nil {
			return err
		}
		d.pixels = nil
	}
	return d.file.Close()
}
