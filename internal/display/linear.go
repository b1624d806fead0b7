package display

import (
	"encoding/binary"
	"image"
	"image/color"
)

func init() {
	Register(linearProvider{})
}

// linearProvider drives packed-pixel color framebuffers, 16 bpp RGB565 and
// 32 bpp XRGB8888. BrickPi HATs on a Raspberry Pi show up this way.
type linearProvider struct{}

func (linearProvider) Name() string { return "linear" }

func (linearProvider) Open(path string) (Framebuffer, error) {
	d, err := openFB(path)
	if err != nil {
		return nil, err
	}
	if d.variable.BitsPerPixel != 16 && d.variable.BitsPerPixel != 32 {
		_ = d.close()
		return nil, ErrIncompatible
	}
	if err := d.mapPixels(); err != nil {
		_ = d.close()
		return nil, err
	}
	return &linearFB{d}, nil
}

type linearFB struct {
	*fbDevice
}

func (fb *linearFB) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(fb.variable.XRes), int(fb.variable.YRes))
}

func (fb *linearFB) DrawImage(img image.Image) error {
	bounds := fb.Bounds().Intersect(img.Bounds().Sub(img.Bounds().Min))
	stride := int(fb.fixed.LineLength)
	bpp := int(fb.variable.BitsPerPixel) / 8
	min := img.Bounds().Min

	for y := 0; y < bounds.Dy(); y++ {
		row := fb.pixels[y*stride:]
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := img.At(min.X+x, min.Y+y).RGBA()
			off := x * bpp
			switch bpp {
			case 2:
				pixel := uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11)
				binary.LittleEndian.PutUint16(row[off:], pixel)
			case 4:
				row[off+0] = byte(b >> 8)
				row[off+1] = byte(g >> 8)
				row[off+2] = byte(r >> 8)
				row[off+3] = 0
			}
		}
	}
	return nil
}

func (fb *linearFB) Clear() error {
	white := image.NewUniform(color.White)
	return fb.DrawImage(white)
}

func (fb *linearFB) Close() error { return fb.close() }
