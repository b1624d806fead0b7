package display

import (
	"image"
	"image/color"
)

// Checkerboard renders the fill test pattern sized to the screen.
func Checkerboard(bounds image.Rectangle) image.Image {
	img := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if (x/8+y/8)%2 == 0 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

// Splash renders the boot screen: a white background with a double border
// frame and a filled block in the center.
func Splash(bounds image.Rectangle) image.Image {
	img := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, color.White)
		}
	}

	frame := func(r image.Rectangle) {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, r.Min.Y, color.Black)
			img.Set(x, r.Max.Y-1, color.Black)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.Set(r.Min.X, y, color.Black)
			img.Set(r.Max.X-1, y, color.Black)
		}
	}
	frame(bounds)
	frame(bounds.Inset(3))

	block := bounds.Inset(bounds.Dx() / 3)
	if block.Dy() < 1 {
		block = bounds.Inset(bounds.Dy() / 3)
	}
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}
