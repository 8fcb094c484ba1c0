// Package presenter drives the per-frame presentation pipeline for one
// window: it owns the registry of rendered view content, runs the layout and
// paint passes that turn the view tree into a render scene, and routes input
// events back through the same tree.
//
// # Registry discipline
//
// The registry (view identity -> rendered content) is the single shared
// mutable resource of the core, and traversals re-enter it: while a view's
// content is being measured, painted, or dispatched to, it may recurse into
// descendant views stored in the same registry via the ChildView proxy. To
// keep that safe without locking, every visit temporarily removes the entry,
// invokes the phase operation on the removed value, then reinserts it. At
// most one entry is checked out per identity at a time, so content can never
// observe itself through the registry while it is being visited.
//
// # Phases and side effects
//
// Each traversal phase gets its own short-lived context (LayoutContext,
// PaintContext, EventContext, DebugContext) exposing exactly the
// capabilities that phase needs. Side effects discovered mid-traversal
// (redraw requests via EventContext.Notify, action directives via
// EventContext.DispatchAction) are queued on the context and applied by the
// Presenter strictly after the traversal returns, because applying them can
// trigger new rendering and the registry must not be reconciled while a pass
// has entries checked out.
//
// Everything here is single-threaded and synchronous: every operation runs
// to completion on the calling UI thread.
package presenter
