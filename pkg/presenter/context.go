package presenter

import (
	"fmt"

	"github.com/go-drift/present/pkg/asset"
	"github.com/go-drift/present/pkg/geometry"
	"github.com/go-drift/present/pkg/platform"
	"github.com/go-drift/present/pkg/scene"
	"github.com/go-drift/present/pkg/text"
)

// LayoutContext is the layout phase's view over the shared registry. It
// records parent/child structure as a side effect of traversal and exposes
// the shared caches leaf content needs to measure itself.
type LayoutContext struct {
	renderedViews map[ViewID]Element
	parents       map[ViewID]ViewID
	viewStack     []ViewID

	// FontCache, TextLayouts, and Assets are read-only shared caches.
	FontCache   *text.FontCache
	TextLayouts *text.LayoutCache
	Assets      *asset.Cache

	// App is the escape hatch into mutable application state, for content
	// that must query model data during measurement.
	App UpdateContext
}

// LayoutView measures the rendered content of a view under the given
// constraint and returns the size it chose. If another view is currently
// being visited, it is recorded as this view's parent.
//
// The view must be present in the registry: layout is only ever requested
// for identities the caller asserts exist, so a missing entry is a
// precondition violation and panics.
func (cx *LayoutContext) LayoutView(viewID ViewID, constraint geometry.SizeConstraint) geometry.Size {
	if n := len(cx.viewStack); n > 0 {
		cx.parents[viewID] = cx.viewStack[n-1]
	}
	cx.viewStack = append(cx.viewStack, viewID)

	element, ok := cx.renderedViews[viewID]
	if !ok {
		panic(fmt.Sprintf("presenter: layout requested for unrendered view %d", viewID))
	}
	// Check the entry out of the registry so the content may re-enter the
	// registry for descendant views while it is being measured.
	delete(cx.renderedViews, viewID)
	size := element.Layout(constraint, cx)
	cx.renderedViews[viewID] = element

	cx.viewStack = cx.viewStack[:len(cx.viewStack)-1]
	return size
}

// PaintContext is the paint phase's view over the shared registry. The
// scene is its only mutable output.
type PaintContext struct {
	renderedViews map[ViewID]Element

	// Scene accumulates the frame's draw operations.
	Scene *scene.Scene

	FontCache   *text.FontCache
	TextLayouts *text.LayoutCache

	// App is read-only during paint.
	App AppContext
}

// PaintView paints the rendered content of a view at the given origin.
// A view absent from the registry (for example, racing a removal) is
// painted as nothing.
func (cx *PaintContext) PaintView(viewID ViewID, origin geometry.Offset) {
	element, ok := cx.renderedViews[viewID]
	if !ok {
		return
	}
	delete(cx.renderedViews, viewID)
	element.Paint(origin, cx)
	cx.renderedViews[viewID] = element
}

// DispatchDirective is a queued (path, action) pair produced during event
// dispatch. The path runs from the root to the view that issued the action.
type DispatchDirective struct {
	Path   []ViewID
	Action Action
}

// EventContext is the event phase's view over the shared registry. It
// maintains the visitation stack used as the dispatch-directive path and
// accumulates the pass's side effects: views requesting redraw and queued
// action directives. Neither is applied until the pass completes.
type EventContext struct {
	renderedViews map[ViewID]Element
	viewStack     []ViewID

	dispatched  []DispatchDirective
	invalidated map[ViewID]struct{}

	FontCache   *text.FontCache
	TextLayouts *text.LayoutCache

	// App is fully mutable during event dispatch: content handling an event
	// routinely mutates model state directly in addition to queuing
	// directives.
	App UpdateContext
}

// DispatchEvent routes the event to the rendered content of a view and
// reports whether it was consumed. A view absent from the registry is a
// no-op and reports the event unconsumed.
func (cx *EventContext) DispatchEvent(viewID ViewID, event platform.Event) bool {
	element, ok := cx.renderedViews[viewID]
	if !ok {
		return false
	}
	delete(cx.renderedViews, viewID)
	cx.viewStack = append(cx.viewStack, viewID)
	consumed := element.DispatchEvent(event, cx)
	cx.viewStack = cx.viewStack[:len(cx.viewStack)-1]
	cx.renderedViews[viewID] = element
	return consumed
}

// DispatchAction queues an action directive whose path is the current
// visitation stack. The directive is applied by the presenter after the
// pass completes, never in-place.
func (cx *EventContext) DispatchAction(action Action) {
	path := make([]ViewID, len(cx.viewStack))
	copy(path, cx.viewStack)
	cx.dispatched = append(cx.dispatched, DispatchDirective{Path: path, Action: action})
}

// Notify marks the innermost currently-visiting view as needing redraw on
// the next frame.
func (cx *EventContext) Notify() {
	if n := len(cx.viewStack); n > 0 {
		cx.invalidated[cx.viewStack[n-1]] = struct{}{}
	}
}

// DebugContext is the read-only view used to produce structural snapshots.
// It never mutates the registry.
type DebugContext struct {
	renderedViews map[ViewID]Element

	FontCache *text.FontCache
	App       AppContext
}

// DebugView returns the structural snapshot of a view's rendered content,
// or nil when the registry holds no entry for it.
func (cx *DebugContext) DebugView(viewID ViewID) *DebugNode {
	element, ok := cx.renderedViews[viewID]
	if !ok {
		return nil
	}
	return element.Debug(cx)
}
