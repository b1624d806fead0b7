// Package display drives the brick LCD through the Linux framebuffer device.
// Different boards expose different pixel formats, so concrete framebuffer
// implementations register themselves as providers and Open walks them in
// registration order until one accepts the device.
package display

import (
	"image"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Framebuffer is an open framebuffer device.
type Framebuffer interface {
	// Bounds returns the visible resolution.
	Bounds() image.Rectangle
	// Stride returns the length of one pixel row in bytes.
	Stride() int
	// DrawImage writes the image to the screen, clipped to Bounds.
	DrawImage(img image.Image) error
	// Clear blanks the screen.
	Clear() error
	// Flush makes pending drawing visible on the device.
	Flush() error
	// Close unmaps and closes the device.
	Close() error
}

// Provider creates a Framebuffer for a device path, or reports that the
// device's pixel format is not one it handles.
type Provider interface {
	Name() string
	Open(path string) (Framebuffer, error)
}

// ErrIncompatible is returned by a Provider that cannot drive the device.
var ErrIncompatible = errors.New("framebuffer not compatible")

// ErrAllFailed is returned by Open when every registered provider declined.
var ErrAllFailed = errors.New("no suitable framebuffer found")

var providers []Provider

// Register adds a provider. Called from provider init functions.
func Register(p Provider) {
	providers = append(providers, p)
}

// Open tries every registered provider against the device at path. Providers
// that report ErrIncompatible are skipped quietly, IO errors are logged and
// the walk continues with the next provider.
func Open(path string) (Framebuffer, error) {
	log.WithField("path", path).Debug("loading framebuffer")
	for _, p := range providers {
		fb, err := p.Open(path)
		if err == nil {
			log.WithField("provider", p.Name()).Debug("framebuffer is compatible")
			return fb, nil
		}
		if errors.Is(err, ErrIncompatible) {
			log.WithField("provider", p.Name()).Debug("framebuffer is not compatible")
			continue
		}
		log.WithField("provider", p.Name()).WithError(err).
			Warn("framebuffer provider failed")
	}
	log.Error("all framebuffer implementations failed")
	return nil, errors.Wrap(ErrAllFailed, path)
}
