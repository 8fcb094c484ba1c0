package geometry

// Axis selects one of the two layout directions.
type Axis int

const (
	// Horizontal selects the width component.
	Horizontal Axis = iota
	// Vertical selects the height component.
	Vertical
)

// Invert swaps Horizontal and Vertical. Containers use this when their layout
// direction determines which axis a child measures along.
func (a Axis) Invert() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}
