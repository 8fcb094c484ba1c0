// Package platform defines the input events delivered by the windowing layer.
//
// The presentation core inspects only the pointer-moved and pointer-dragged
// variants (to maintain hover state across frames); every other variant is an
// opaque payload routed to rendered content.
package platform

import "github.com/go-drift/present/pkg/geometry"

// Event is one input event from the windowing layer.
//
// The variant set is sealed: the core switches on concrete types during
// dispatch, and content does the same when handling events.
type Event interface {
	isEvent()
}

// PointerMovedEvent reports the pointer position, with Pressed set while a
// button is held.
type PointerMovedEvent struct {
	Position geometry.Offset
	Pressed  bool
}

// PointerDraggedEvent reports pointer movement while the primary button is
// held. The presenter treats it as a pressed pointer move for hover purposes.
type PointerDraggedEvent struct {
	Position geometry.Offset
}

// PointerDownEvent reports a primary button press.
type PointerDownEvent struct {
	Position geometry.Offset
}

// PointerUpEvent reports a primary button release.
type PointerUpEvent struct {
	Position geometry.Offset
}

// ScrollWheelEvent reports scroll input at a pointer position.
type ScrollWheelEvent struct {
	Position geometry.Offset
	Delta    geometry.Offset
	Precise  bool
}

// KeyDownEvent reports a key press routed along the focus chain.
type KeyDownEvent struct {
	Keystroke string
	Chars     string
}

func (PointerMovedEvent) isEvent()   {}
func (PointerDraggedEvent) isEvent() {}
func (PointerDownEvent) isEvent()    {}
func (PointerUpEvent) isEvent()      {}
func (ScrollWheelEvent) isEvent()    {}
func (KeyDownEvent) isEvent()        {}
