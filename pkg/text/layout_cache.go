package text

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Line is one measured line of text.
type Line struct {
	Text    string
	Family  string
	Width   float64
	Ascent  float64
	Descent float64
}

// Size returns the line's bounding size.
func (l *Line) Size() (width, height float64) {
	return l.Width, l.Ascent + l.Descent
}

type layoutKey struct {
	text   string
	family string
}

// LayoutCache memoizes measured lines across frames.
//
// Entries live in two generations: the current frame and the previous frame.
// A lookup that hits the previous generation promotes the entry, so anything
// still in use survives indefinitely, while an entry untouched for one whole
// frame is dropped by the next FinishFrame. The presenter calls FinishFrame
// once per BuildScene, after the paint pass completes.
type LayoutCache struct {
	mu    sync.Mutex
	fonts *FontCache
	prev  map[layoutKey]*Line
	curr  map[layoutKey]*Line
}

// NewLayoutCache creates a layout cache measuring with the given font cache.
func NewLayoutCache(fonts *FontCache) *LayoutCache {
	return &LayoutCache{
		fonts: fonts,
		prev:  make(map[layoutKey]*Line),
		curr:  make(map[layoutKey]*Line),
	}
}

// LayoutLine measures one line of text in the given family, reusing a cached
// measurement when one exists.
func (c *LayoutCache) LayoutLine(text, family string) *Line {
	key := layoutKey{text: text, family: family}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.curr[key]; ok {
		return line
	}
	if line, ok := c.prev[key]; ok {
		delete(c.prev, key)
		c.curr[key] = line
		return line
	}

	face := c.fonts.Face(family)
	m := face.Metrics()
	line := &Line{
		Text:    text,
		Family:  family,
		Width:   fixedToPixels(font.MeasureString(face, text)),
		Ascent:  fixedToPixels(m.Ascent),
		Descent: fixedToPixels(m.Descent),
	}
	c.curr[key] = line
	return line
}

// FinishFrame rotates the cache generations. Entries that were neither
// created nor used since the previous FinishFrame are discarded.
func (c *LayoutCache) FinishFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.prev {
		delete(c.prev, key)
	}
	c.prev, c.curr = c.curr, c.prev
}

// Len reports the number of live entries across both generations.
func (c *LayoutCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prev) + len(c.curr)
}

// fixedToPixels converts a 26.6 fixed-point value to float64 pixels.
func fixedToPixels(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
