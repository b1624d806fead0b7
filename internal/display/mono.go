package display

import (
	"image"
	"image/color"
)

func init() {
	Register(monoProvider{})
}

// monoProvider drives the 1 bpp EV3 LCD. Pixels are packed eight per byte,
// most significant bit leftmost, a set bit is a dark pixel.
type monoProvider struct{}

func (monoProvider) Name() string { return "mono" }

func (monoProvider) Open(path string) (Framebuffer, error) {
	d, err := openFB(path)
	if err != nil {
		return nil, err
	}
	if d.variable.BitsPerPixel != 1 {
		_ = d.close()
		return nil, ErrIncompatible
	}
	if err := d.mapPixels(); err != nil {
		_ = d.close()
		return nil, err
	}
	return &monoFB{d}, nil
}

type monoFB struct {
	*fbDevice
}

func (fb *monoFB) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(fb.variable.XRes), int(fb.variable.YRes))
}

func (fb *monoFB) DrawImage(img image.Image) error {
	bounds := fb.Bounds().Intersect(img.Bounds().Sub(img.Bounds().Min))
	stride := int(fb.fixed.LineLength)
	min := img.Bounds().Min

	for y := 0; y < bounds.Dy(); y++ {
		row := fb.pixels[y*stride : (y+1)*stride]
		for x := 0; x < bounds.Dx(); x++ {
			gray := color.GrayModel.Convert(img.At(min.X+x, min.Y+y)).(color.Gray)
			mask := byte(0x80 >> (x % 8))
			if gray.Y < 128 {
				row[x/8] |= mask
			} else {
				row[x/8] &^= mask
			}
		}
	}
	return nil
}

func (fb *monoFB) Clear() error {
	for i := range fb.pixels {
		fb.pixels[i] = 0
	}
	return nil
}

func (fb *monoFB) Close() error { return fb.close() }
