// Package text provides the shared font-metrics and text-layout caches
// consumed by rendered content during measurement and painting.
//
// Both caches are read-only from the presentation core's perspective; the
// layout cache additionally supports an end-of-frame finalize call that ages
// out entries no frame has used.
package text

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Metrics describes a font face's vertical metrics in pixels.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// FontCache resolves font faces and metrics by family name.
// Unregistered families fall back to a bundled basic face so measurement
// never fails during layout.
type FontCache struct {
	mu          sync.RWMutex
	faces       map[string]font.Face
	defaultFace font.Face
}

// NewFontCache creates a font cache with the bundled fallback face.
func NewFontCache() *FontCache {
	return &FontCache{
		faces:       make(map[string]font.Face),
		defaultFace: basicfont.Face7x13,
	}
}

// RegisterFace registers a face for a font family, replacing any previous
// registration.
func (c *FontCache) RegisterFace(family string, face font.Face) {
	if face == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faces[family] = face
}

// Face resolves the face for a family, falling back to the bundled face.
func (c *FontCache) Face(family string) font.Face {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if face, ok := c.faces[family]; ok {
		return face
	}
	return c.defaultFace
}

// Metrics returns the vertical metrics for a family in pixels.
func (c *FontCache) Metrics(family string) Metrics {
	m := c.Face(family).Metrics()
	ascent := fixedToPixels(m.Ascent)
	descent := fixedToPixels(m.Descent)
	lineHeight := fixedToPixels(m.Height)
	if lineHeight == 0 {
		lineHeight = ascent + descent
	}
	return Metrics{Ascent: ascent, Descent: descent, LineHeight: lineHeight}
}
