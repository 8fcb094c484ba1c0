package presenter

import (
	"github.com/go-drift/present/pkg/geometry"
	"github.com/go-drift/present/pkg/platform"
)

// Element is one node of rendered view content: the materialized output of
// asking the view-model layer to render a view. The core drives elements
// through the three phases without knowing their concrete shape.
//
// Elements are exclusively owned by the registry, one tree per view
// identity. An element may cache per-frame state (its laid-out size, its
// painted origin) across phase calls within a frame.
type Element interface {
	// Layout measures the element under the given constraint and returns
	// the concrete size it chose.
	Layout(constraint geometry.SizeConstraint, cx *LayoutContext) geometry.Size
	// Paint emits the element's draw output into the scene at origin.
	Paint(origin geometry.Offset, cx *PaintContext)
	// DispatchEvent routes one input event to the element. It reports
	// whether the event was consumed; composite elements use the result to
	// decide whether to stop propagating to further children.
	DispatchEvent(event platform.Event, cx *EventContext) bool
	// Debug returns a structural snapshot of the element for tooling.
	Debug(cx *DebugContext) *DebugNode
}

// DebugNode is one record in the structural snapshot of a rendered tree.
type DebugNode struct {
	Type     string        `json:"type"`
	ViewID   ViewID        `json:"viewId,omitempty"`
	Bounds   geometry.Rect `json:"bounds"`
	Children []*DebugNode  `json:"children,omitempty"`
}

// ChildView is the proxy element representing "this position in the tree is
// occupied by the content of view X", where X's content lives in the
// registry rather than inline. The indirection lets one view embed another
// by handle without the embedding element type knowing the embedded
// content's concrete shape, which would otherwise require unbounded
// recursive typing.
type ChildView struct {
	viewID ViewID
	size   geometry.Size
	origin geometry.Offset
}

// NewChildView creates a proxy for the given view identity.
func NewChildView(viewID ViewID) *ChildView {
	return &ChildView{viewID: viewID}
}

// ViewID returns the embedded view's identity.
func (c *ChildView) ViewID() ViewID {
	return c.viewID
}

// Layout delegates measurement to the embedded view's rendered content.
func (c *ChildView) Layout(constraint geometry.SizeConstraint, cx *LayoutContext) geometry.Size {
	c.size = cx.LayoutView(c.viewID, constraint)
	return c.size
}

// Paint delegates painting to the embedded view's rendered content.
func (c *ChildView) Paint(origin geometry.Offset, cx *PaintContext) {
	c.origin = origin
	cx.PaintView(c.viewID, origin)
}

// DispatchEvent delegates dispatch to the embedded view's rendered content.
func (c *ChildView) DispatchEvent(event platform.Event, cx *EventContext) bool {
	return cx.DispatchEvent(c.viewID, event)
}

// Debug reports the proxy and recurses into the embedded view's content.
// A missing registry entry yields a node with no children.
func (c *ChildView) Debug(cx *DebugContext) *DebugNode {
	node := &DebugNode{
		Type:   "ChildView",
		ViewID: c.viewID,
		Bounds: geometry.Rect{Origin: c.origin, Size: c.size},
	}
	if child := cx.DebugView(c.viewID); child != nil {
		node.Children = append(node.Children, child)
	}
	return node
}
