package presenter

// WindowID identifies one platform window.
type WindowID uint64

// ViewID is the opaque, stable, process-unique handle naming one node in the
// logical view hierarchy. The core never inspects view content by type, only
// by this handle.
type ViewID uint64

// Action is an opaque payload queued during event dispatch and applied to
// application state along a dispatch path. The core never interprets it;
// Name exists for diagnostics only.
type Action interface {
	Name() string
}

// AppContext is the read-only view of the application layer available during
// paint and debug passes.
type AppContext interface {
	// RootViewID resolves the window's root view, if one exists.
	RootViewID(window WindowID) (ViewID, bool)
	// FocusedViewID resolves the window's focused view, if one exists.
	FocusedViewID(window WindowID) (ViewID, bool)
}

// UpdateContext is the mutable view of the application layer available
// during construction, reconciliation, layout, and event dispatch.
type UpdateContext interface {
	AppContext

	// RenderView asks the view-model layer to produce rendered content for
	// one view. The caller asserts the view exists; failure for a known view
	// is a precondition violation.
	RenderView(window WindowID, view ViewID, chromeOffset float64, force bool) (Element, error)
	// RenderViews renders every view in the window's tree.
	RenderViews(window WindowID, chromeOffset float64) map[ViewID]Element
	// NotifyView records that a view needs re-layout and re-paint on the
	// next frame.
	NotifyView(window WindowID, view ViewID)
	// DispatchAction applies an action payload along a root-to-view path.
	DispatchAction(window WindowID, path []ViewID, action Action)
}

// Invalidation describes which views changed since the last reconciliation.
// Updated and Removed are disjoint: marking a view removed cancels any
// pending update for it.
type Invalidation struct {
	Updated map[ViewID]struct{}
	Removed map[ViewID]struct{}
}

// MarkUpdated records that a view must be re-rendered. A view already marked
// removed stays removed.
func (inv *Invalidation) MarkUpdated(view ViewID) {
	if _, removed := inv.Removed[view]; removed {
		return
	}
	if inv.Updated == nil {
		inv.Updated = make(map[ViewID]struct{})
	}
	inv.Updated[view] = struct{}{}
}

// MarkRemoved records that a view must be dropped, cancelling any pending
// update for it.
func (inv *Invalidation) MarkRemoved(view ViewID) {
	delete(inv.Updated, view)
	if inv.Removed == nil {
		inv.Removed = make(map[ViewID]struct{})
	}
	inv.Removed[view] = struct{}{}
}
