package presenter

import (
	"fmt"

	"github.com/go-drift/present/pkg/asset"
	"github.com/go-drift/present/pkg/errors"
	"github.com/go-drift/present/pkg/geometry"
	"github.com/go-drift/present/pkg/platform"
	"github.com/go-drift/present/pkg/scene"
	"github.com/go-drift/present/pkg/text"
)

// Presenter owns one window's rendered view content across frames and
// drives the layout -> paint cycle and the event-dispatch cycle against it.
// The window-level event loop calls BuildScene once per frame and
// DispatchEvent once per input event; Invalidate and Refresh reconcile the
// registry against change notifications from the view-model layer between
// frames.
type Presenter struct {
	windowID     WindowID
	chromeOffset float64

	renderedViews map[ViewID]Element
	parents       map[ViewID]ViewID

	fontCache   *text.FontCache
	textLayouts *text.LayoutCache
	assets      *asset.Cache

	lastPointerMoved *platform.PointerMovedEvent
}

// New creates a presenter for a window and performs the initial full render
// of the window's view tree into the registry.
//
// The chrome offset is the height of window chrome (for example a custom
// titlebar) that rendered content must leave room for; it is passed through
// to every render request.
func New(
	windowID WindowID,
	chromeOffset float64,
	fonts *text.FontCache,
	textLayouts *text.LayoutCache,
	assets *asset.Cache,
	cx UpdateContext,
) *Presenter {
	renderedViews := cx.RenderViews(windowID, chromeOffset)
	if renderedViews == nil {
		renderedViews = make(map[ViewID]Element)
	}
	return &Presenter{
		windowID:      windowID,
		chromeOffset:  chromeOffset,
		renderedViews: renderedViews,
		parents:       make(map[ViewID]ViewID),
		fontCache:     fonts,
		textLayouts:   textLayouts,
		assets:        assets,
	}
}

// DispatchPath returns the ordered view identities from the window's root
// to the currently focused view, derived from the parent links recorded
// during the last layout pass.
//
// A focus must be established before any dispatch that needs a path;
// calling this with no focused view is a programming error and panics.
func (p *Presenter) DispatchPath(cx AppContext) []ViewID {
	viewID, ok := cx.FocusedViewID(p.windowID)
	if !ok {
		panic(fmt.Sprintf("presenter: dispatch path requested with no focused view in window %d", p.windowID))
	}
	path := []ViewID{viewID}
	for {
		parentID, ok := p.parents[viewID]
		if !ok {
			break
		}
		path = append(path, parentID)
		viewID = parentID
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Invalidate reconciles the registry against an invalidation diff: removed
// views are dropped from the registry and the parent map (cancelling any
// pending update), then each remaining updated view is re-rendered in
// place. Layout is not recomputed here; that happens lazily on the next
// BuildScene.
func (p *Presenter) Invalidate(invalidation Invalidation, cx UpdateContext) {
	for viewID := range invalidation.Removed {
		delete(invalidation.Updated, viewID)
		delete(p.renderedViews, viewID)
		delete(p.parents, viewID)
	}
	for viewID := range invalidation.Updated {
		p.renderedViews[viewID] = p.renderView(viewID, false, cx)
	}
}

// Refresh is the eager variant of Invalidate: after applying removals, it
// unconditionally re-renders every view currently in the registry. Used
// when a global factor (theme, scale) invalidates all content irrespective
// of per-view change tracking. Pass nil when there is no diff to apply.
func (p *Presenter) Refresh(invalidation *Invalidation, cx UpdateContext) {
	if invalidation != nil {
		for viewID := range invalidation.Removed {
			delete(p.renderedViews, viewID)
			delete(p.parents, viewID)
		}
	}
	for viewID := range p.renderedViews {
		p.renderedViews[viewID] = p.renderView(viewID, true, cx)
	}
}

// renderView asks the view-model layer for a view's content. The view is
// already known to the registry, so failure is a precondition violation by
// the application layer and panics.
func (p *Presenter) renderView(viewID ViewID, force bool, cx UpdateContext) Element {
	element, err := cx.RenderView(p.windowID, viewID, p.chromeOffset, force)
	if err != nil {
		panic(&errors.PresentError{
			Op:   "presenter.renderView",
			Kind: errors.KindRender,
			View: uint64(viewID),
			Err:  err,
		})
	}
	return element
}

// BuildScene is the per-frame entry point: it runs a full layout pass with
// a strict constraint equal to the window size, paints the tree into a
// fresh scene, finalizes the text layout cache for the frame, and replays
// the last remembered pointer-move so hover state tracks the now-current
// layout. It never fails; when no root view is resolvable the condition is
// reported and an empty scene returned.
func (p *Presenter) BuildScene(windowSize geometry.Size, scaleFactor float64, cx UpdateContext) *scene.Scene {
	frame := scene.New(scaleFactor)

	rootViewID, ok := cx.RootViewID(p.windowID)
	if !ok {
		errors.Report(&errors.PresentError{
			Op:   "presenter.BuildScene",
			Kind: errors.KindLayout,
			Err:  fmt.Errorf("no root view for window %d", p.windowID),
		})
		return frame
	}

	// The parent map is derived state: rebuild it from scratch so links for
	// views no longer reachable from the root do not linger.
	p.parents = make(map[ViewID]ViewID, len(p.parents))
	layoutCx := p.BuildLayoutContext(cx)
	layoutCx.LayoutView(rootViewID, geometry.Strict(windowSize))

	paintCx := &PaintContext{
		renderedViews: p.renderedViews,
		Scene:         frame,
		FontCache:     p.fontCache,
		TextLayouts:   p.textLayouts,
		App:           cx,
	}
	paintCx.PaintView(rootViewID, geometry.Offset{})
	p.textLayouts.FinishFrame()

	if p.lastPointerMoved != nil {
		p.DispatchEvent(*p.lastPointerMoved, cx)
	}

	return frame
}

// BuildLayoutContext returns a layout context over the presenter's registry
// and parent map. BuildScene uses it internally; content tests drive it
// directly.
func (p *Presenter) BuildLayoutContext(cx UpdateContext) *LayoutContext {
	return &LayoutContext{
		renderedViews: p.renderedViews,
		parents:       p.parents,
		FontCache:     p.fontCache,
		TextLayouts:   p.textLayouts,
		Assets:        p.assets,
		App:           cx,
	}
}

// DispatchEvent routes one input event through the rendered tree. Pointer
// moves are remembered for hover replay (drags as a synthesized pressed
// move, so hover recomputation after a drag sees a consistent position).
//
// Redraw requests and action directives collected during the pass are
// applied only after it completes: applying an action may itself trigger
// new rendering, which must not happen while the registry has entries
// checked out by the in-progress traversal. Events arriving while the
// window has no root view are silently dropped.
func (p *Presenter) DispatchEvent(event platform.Event, cx UpdateContext) {
	rootViewID, ok := cx.RootViewID(p.windowID)
	if !ok {
		return
	}

	switch ev := event.(type) {
	case platform.PointerMovedEvent:
		moved := ev
		p.lastPointerMoved = &moved
	case platform.PointerDraggedEvent:
		p.lastPointerMoved = &platform.PointerMovedEvent{Position: ev.Position, Pressed: true}
	}

	eventCx := p.BuildEventContext(cx)
	eventCx.DispatchEvent(rootViewID, event)

	for viewID := range eventCx.invalidated {
		cx.NotifyView(p.windowID, viewID)
	}
	for _, directive := range eventCx.dispatched {
		cx.DispatchAction(p.windowID, directive.Path, directive.Action)
	}
}

// BuildEventContext returns an event context over the presenter's registry.
// DispatchEvent uses it internally; content tests drive it directly.
func (p *Presenter) BuildEventContext(cx UpdateContext) *EventContext {
	return &EventContext{
		renderedViews: p.renderedViews,
		invalidated:   make(map[ViewID]struct{}),
		FontCache:     p.fontCache,
		TextLayouts:   p.textLayouts,
		App:           cx,
	}
}

// DebugTree returns a structural snapshot of the rendered tree rooted at
// the window's root view, or nil when no root exists.
func (p *Presenter) DebugTree(cx AppContext) *DebugNode {
	rootViewID, ok := cx.RootViewID(p.windowID)
	if !ok {
		return nil
	}
	debugCx := &DebugContext{
		renderedViews: p.renderedViews,
		FontCache:     p.fontCache,
		App:           cx,
	}
	return debugCx.DebugView(rootViewID)
}
