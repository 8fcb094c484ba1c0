package presenter

import (
	"fmt"

	"github.com/go-drift/present/pkg/asset"
	"github.com/go-drift/present/pkg/geometry"
	"github.com/go-drift/present/pkg/platform"
	"github.com/go-drift/present/pkg/scene"
	"github.com/go-drift/present/pkg/text"
)

// testAction is an opaque action payload for dispatch tests.
type testAction struct {
	name string
}

func (a testAction) Name() string { return a.name }

// appliedAction records one directive applied to the fake app.
type appliedAction struct {
	path   []ViewID
	action Action
}

// fakeApp implements UpdateContext over a fixed set of elements.
type fakeApp struct {
	elements map[ViewID]Element

	root     ViewID
	hasRoot  bool
	focused  ViewID
	hasFocus bool

	renderErr   map[ViewID]error
	renderCalls map[ViewID]int
	forcedCalls map[ViewID]int
	notified    []ViewID
	applied     []appliedAction
}

func newFakeApp() *fakeApp {
	return &fakeApp{
		elements:    make(map[ViewID]Element),
		renderErr:   make(map[ViewID]error),
		renderCalls: make(map[ViewID]int),
		forcedCalls: make(map[ViewID]int),
	}
}

func (a *fakeApp) setRoot(id ViewID)  { a.root = id; a.hasRoot = true }
func (a *fakeApp) setFocus(id ViewID) { a.focused = id; a.hasFocus = true }

func (a *fakeApp) RootViewID(window WindowID) (ViewID, bool) {
	return a.root, a.hasRoot
}

func (a *fakeApp) FocusedViewID(window WindowID) (ViewID, bool) {
	return a.focused, a.hasFocus
}

func (a *fakeApp) RenderView(window WindowID, view ViewID, chromeOffset float64, force bool) (Element, error) {
	a.renderCalls[view]++
	if force {
		a.forcedCalls[view]++
	}
	if err := a.renderErr[view]; err != nil {
		return nil, err
	}
	element, ok := a.elements[view]
	if !ok {
		return nil, fmt.Errorf("no such view %d", view)
	}
	return element, nil
}

func (a *fakeApp) RenderViews(window WindowID, chromeOffset float64) map[ViewID]Element {
	views := make(map[ViewID]Element, len(a.elements))
	for id, element := range a.elements {
		views[id] = element
	}
	return views
}

func (a *fakeApp) NotifyView(window WindowID, view ViewID) {
	a.notified = append(a.notified, view)
}

func (a *fakeApp) DispatchAction(window WindowID, path []ViewID, action Action) {
	a.applied = append(a.applied, appliedAction{path: path, action: action})
}

// stackElement lays out its children top to bottom at the width of the
// widest child.
type stackElement struct {
	children   []Element
	childSizes []geometry.Size
	size       geometry.Size
}

func (e *stackElement) Layout(constraint geometry.SizeConstraint, cx *LayoutContext) geometry.Size {
	e.childSizes = e.childSizes[:0]
	var width, height float64
	childConstraint := geometry.NewSizeConstraint(geometry.Size{}, constraint.Max)
	for _, child := range e.children {
		childSize := child.Layout(childConstraint, cx)
		e.childSizes = append(e.childSizes, childSize)
		if childSize.Width > width {
			width = childSize.Width
		}
		height += childSize.Height
	}
	e.size = constraint.Constrain(geometry.Size{Width: width, Height: height})
	return e.size
}

func (e *stackElement) Paint(origin geometry.Offset, cx *PaintContext) {
	offset := origin
	for i, child := range e.children {
		child.Paint(offset, cx)
		offset.Y += e.childSizes[i].Height
	}
}

func (e *stackElement) DispatchEvent(event platform.Event, cx *EventContext) bool {
	for _, child := range e.children {
		if child.DispatchEvent(event, cx) {
			return true
		}
	}
	return false
}

func (e *stackElement) Debug(cx *DebugContext) *DebugNode {
	node := &DebugNode{
		Type:   "Stack",
		Bounds: geometry.Rect{Size: e.size},
	}
	for _, child := range e.children {
		node.Children = append(node.Children, child.Debug(cx))
	}
	return node
}

// buttonElement is a fixed-size leaf that tracks hover state and can queue
// an action when pressed.
type buttonElement struct {
	preferredSize geometry.Size
	pressAction   Action

	bounds      geometry.Rect
	hovered     bool
	seenEvents  []platform.Event
	layoutCount int
	paintCount  int
}

func (e *buttonElement) Layout(constraint geometry.SizeConstraint, cx *LayoutContext) geometry.Size {
	e.layoutCount++
	e.bounds.Size = constraint.Constrain(e.preferredSize)
	return e.bounds.Size
}

func (e *buttonElement) Paint(origin geometry.Offset, cx *PaintContext) {
	e.paintCount++
	e.bounds.Origin = origin
	cx.Scene.PushQuad(scene.Quad{Bounds: e.bounds, Background: scene.ColorWhite})
}

func (e *buttonElement) DispatchEvent(event platform.Event, cx *EventContext) bool {
	e.seenEvents = append(e.seenEvents, event)
	switch ev := event.(type) {
	case platform.PointerMovedEvent:
		hovered := e.bounds.Contains(ev.Position)
		if hovered != e.hovered {
			e.hovered = hovered
			cx.Notify()
		}
	case platform.PointerDownEvent:
		if e.bounds.Contains(ev.Position) && e.pressAction != nil {
			cx.DispatchAction(e.pressAction)
			return true
		}
	}
	return false
}

func (e *buttonElement) Debug(cx *DebugContext) *DebugNode {
	return &DebugNode{Type: "Button", Bounds: e.bounds}
}

// treeApp builds the canonical three-view fixture: view 1 embeds view 2,
// view 2 embeds view 3, view 3 is a button.
func treeApp(button *buttonElement) *fakeApp {
	app := newFakeApp()
	app.elements[1] = &stackElement{children: []Element{NewChildView(2)}}
	app.elements[2] = &stackElement{children: []Element{NewChildView(3)}}
	app.elements[3] = button
	app.setRoot(1)
	return app
}

// newPresenter constructs a presenter over the fake app with fresh caches.
func newPresenter(app *fakeApp) *Presenter {
	fonts := text.NewFontCache()
	return New(1, 0, fonts, text.NewLayoutCache(fonts), asset.NewCache(nil), app)
}
