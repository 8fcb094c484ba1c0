// Package scene defines the render scene produced by a paint pass.
//
// A Scene is an ordered list of layers, each holding typed draw operations in
// absolute window coordinates. The rasterization backend replays layers in
// order; the presentation core only ever appends.
package scene

import (
	"github.com/go-drift/present/pkg/geometry"
	"github.com/go-drift/present/pkg/text"
)

// Border describes a quad's border stroke.
type Border struct {
	Width float64
	Color Color
}

// Quad is a filled, optionally bordered and rounded rectangle.
type Quad struct {
	Bounds       geometry.Rect
	Background   Color
	Border       Border
	CornerRadius float64
}

// Shadow is a blurred drop shadow behind a rounded rectangle.
type Shadow struct {
	Bounds       geometry.Rect
	CornerRadius float64
	Sigma        float64
	Color        Color
}

// Text draws one measured line at a baseline origin.
type Text struct {
	Origin geometry.Offset
	Line   *text.Line
	Color  Color
}

// Layer groups draw operations under one optional clip rectangle.
// Operations within a layer keep their append order.
type Layer struct {
	clipBounds *geometry.Rect
	quads      []Quad
	shadows    []Shadow
	texts      []Text
}

// ClipBounds returns the layer's clip rectangle, or nil when unclipped.
func (l *Layer) ClipBounds() *geometry.Rect {
	return l.clipBounds
}

// Quads returns the layer's quads in paint order.
func (l *Layer) Quads() []Quad {
	return l.quads
}

// Shadows returns the layer's shadows in paint order.
func (l *Layer) Shadows() []Shadow {
	return l.shadows
}

// Texts returns the layer's text runs in paint order.
func (l *Layer) Texts() []Text {
	return l.texts
}

// Scene accumulates one frame's draw output at a fixed scale factor.
type Scene struct {
	scaleFactor float64
	layers      []*Layer
	activeStack []int
}

// New creates a scene with a single unclipped root layer.
func New(scaleFactor float64) *Scene {
	s := &Scene{scaleFactor: scaleFactor}
	s.layers = append(s.layers, &Layer{})
	s.activeStack = append(s.activeStack, 0)
	return s
}

// ScaleFactor returns the device pixel scale the scene was built for.
func (s *Scene) ScaleFactor() float64 {
	return s.scaleFactor
}

// Layers returns the scene's layers in paint order.
func (s *Scene) Layers() []*Layer {
	return s.layers
}

// PushLayer starts a new layer, optionally clipped, and makes it active.
// Every PushLayer must be balanced by a PopLayer before the pass ends.
func (s *Scene) PushLayer(clipBounds *geometry.Rect) {
	layer := &Layer{}
	if clipBounds != nil {
		bounds := *clipBounds
		layer.clipBounds = &bounds
	}
	s.layers = append(s.layers, layer)
	s.activeStack = append(s.activeStack, len(s.layers)-1)
}

// PopLayer restores the previously active layer.
func (s *Scene) PopLayer() {
	if len(s.activeStack) <= 1 {
		return
	}
	s.activeStack = s.activeStack[:len(s.activeStack)-1]
}

// PushQuad appends a quad to the active layer.
func (s *Scene) PushQuad(quad Quad) {
	l := s.active()
	l.quads = append(l.quads, quad)
}

// PushShadow appends a shadow to the active layer.
func (s *Scene) PushShadow(shadow Shadow) {
	l := s.active()
	l.shadows = append(l.shadows, shadow)
}

// PushText appends a text run to the active layer.
func (s *Scene) PushText(t Text) {
	l := s.active()
	l.texts = append(l.texts, t)
}

func (s *Scene) active() *Layer {
	return s.layers[s.activeStack[len(s.activeStack)-1]]
}

// Canvas receives a scene's draw operations during replay. The rasterization
// backend implements it over its native drawing surface.
type Canvas interface {
	// BeginLayer starts a layer, clipped when clipBounds is non-nil.
	BeginLayer(clipBounds *geometry.Rect)
	// EndLayer closes the current layer.
	EndLayer()
	DrawShadow(shadow Shadow)
	DrawQuad(quad Quad)
	DrawText(t Text)
}

// Replay feeds the scene's layers to the canvas in paint order. Within a
// layer, shadows draw first, then quads, then text.
func (s *Scene) Replay(canvas Canvas) {
	for _, layer := range s.layers {
		canvas.BeginLayer(layer.clipBounds)
		for _, shadow := range layer.shadows {
			canvas.DrawShadow(shadow)
		}
		for _, quad := range layer.quads {
			canvas.DrawQuad(quad)
		}
		for _, t := range layer.texts {
			canvas.DrawText(t)
		}
		canvas.EndLayer()
	}
}
