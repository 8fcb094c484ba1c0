package geometry

import "math"

// SizeConstraint bounds the size a child may choose during layout.
// Min and Max are both componentwise >= 0, and callers are expected to keep
// Min <= Max componentwise; the algebra does not enforce it.
type SizeConstraint struct {
	Min Size
	Max Size
}

// NewSizeConstraint constructs a constraint from explicit bounds.
func NewSizeConstraint(min, max Size) SizeConstraint {
	return SizeConstraint{Min: min, Max: max}
}

// Strict returns a constraint that forces an exact size. The window root is
// always laid out with a strict constraint equal to the window size.
func Strict(size Size) SizeConstraint {
	return SizeConstraint{Min: size, Max: size}
}

// StrictAlong fixes the given axis to value exactly while leaving the other
// axis unbounded (0 to +Inf). Single-axis-constrained layouts use this, e.g.
// a fixed-height row with flexible width.
func StrictAlong(axis Axis, value float64) SizeConstraint {
	if axis == Horizontal {
		return SizeConstraint{
			Min: Size{Width: value, Height: 0},
			Max: Size{Width: value, Height: math.Inf(1)},
		}
	}
	return SizeConstraint{
		Min: Size{Width: 0, Height: value},
		Max: Size{Width: math.Inf(1), Height: value},
	}
}

// MinAlong projects the minimum bound onto the given axis.
func (c SizeConstraint) MinAlong(axis Axis) float64 {
	return c.Min.Along(axis)
}

// MaxAlong projects the maximum bound onto the given axis.
func (c SizeConstraint) MaxAlong(axis Axis) float64 {
	return c.Max.Along(axis)
}

// Constrain clamps the given size to the constraint's bounds.
func (c SizeConstraint) Constrain(size Size) Size {
	return Size{
		Width:  math.Min(math.Max(size.Width, c.Min.Width), c.Max.Width),
		Height: math.Min(math.Max(size.Height, c.Min.Height), c.Max.Height),
	}
}

// IsStrict reports whether the constraint admits exactly one size.
func (c SizeConstraint) IsStrict() bool {
	return c.Min == c.Max
}
