// Package geometry provides the 2D primitives and size-constraint algebra
// used by every layout, paint, and hit-testing call in the presentation core.
package geometry

import "math"

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the componentwise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Along projects the offset onto the given axis.
func (o Offset) Along(axis Axis) float64 {
	if axis == Horizontal {
		return o.X
	}
	return o.Y
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Along projects the size onto the given axis.
func (s Size) Along(axis Axis) float64 {
	if axis == Horizontal {
		return s.Width
	}
	return s.Height
}

// Max returns the componentwise maximum of two sizes.
func (s Size) Max(other Size) Size {
	return Size{
		Width:  math.Max(s.Width, other.Width),
		Height: math.Max(s.Height, other.Height),
	}
}

// Rect represents a rectangle as an origin point plus a size.
type Rect struct {
	Origin Offset
	Size   Size
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Origin: Offset{X: left, Y: top},
		Size:   Size{Width: width, Height: height},
	}
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 {
	return r.Origin.X + r.Size.Width
}

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 {
	return r.Origin.Y + r.Size.Height
}

// Contains reports whether the point lies within the rectangle.
func (r Rect) Contains(point Offset) bool {
	return point.X >= r.Origin.X && point.Y >= r.Origin.Y &&
		point.X <= r.MaxX() && point.Y <= r.MaxY()
}
