package presenter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/present/pkg/geometry"
	"github.com/go-drift/present/pkg/platform"
)

var windowSize = geometry.Size{Width: 800, Height: 600}

func TestNew_PerformsInitialFullRender(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})

	p := newPresenter(app)

	assert.Len(t, p.renderedViews, 3)
}

func TestBuildScene_RecordsParentLinks(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)

	p.BuildScene(windowSize, 1.0, app)

	assert.Equal(t, ViewID(1), p.parents[2])
	assert.Equal(t, ViewID(2), p.parents[3])
	_, rootHasParent := p.parents[1]
	assert.False(t, rootHasParent)
}

func TestBuildScene_PaintsIntoScene(t *testing.T) {
	button := &buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}}
	app := treeApp(button)
	p := newPresenter(app)

	frame := p.BuildScene(windowSize, 2.0, app)

	assert.Equal(t, 2.0, frame.ScaleFactor())
	quads := frame.Layers()[0].Quads()
	require.Len(t, quads, 1)
	assert.Equal(t, geometry.RectFromLTWH(0, 0, 100, 40), quads[0].Bounds)
	assert.Equal(t, 1, button.layoutCount)
	assert.Equal(t, 1, button.paintCount)
}

func TestBuildScene_NoRootReturnsEmptyScene(t *testing.T) {
	app := newFakeApp()
	p := newPresenter(app)

	frame := p.BuildScene(windowSize, 1.0, app)

	require.Len(t, frame.Layers(), 1)
	assert.Empty(t, frame.Layers()[0].Quads())
}

func TestDispatchPath_RootToFocused(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)
	app.setFocus(3)

	path := p.DispatchPath(app)

	assert.Equal(t, []ViewID{1, 2, 3}, path)
}

func TestDispatchPath_FocusedRootHasUnitPath(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)
	app.setFocus(1)

	assert.Equal(t, []ViewID{1}, p.DispatchPath(app))
}

func TestDispatchPath_PanicsWithoutFocus(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)

	assert.Panics(t, func() { p.DispatchPath(app) })
}

func TestInvalidate_RemovalDropsRegistryAndParents(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	p.Invalidate(Invalidation{Removed: map[ViewID]struct{}{2: {}}}, app)

	_, inRegistry := p.renderedViews[2]
	_, inParents := p.parents[2]
	assert.False(t, inRegistry)
	assert.False(t, inParents)
	assert.Len(t, p.renderedViews, 2)
}

func TestInvalidate_RemovalCancelsPendingUpdate(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)

	p.Invalidate(Invalidation{
		Updated: map[ViewID]struct{}{2: {}, 3: {}},
		Removed: map[ViewID]struct{}{2: {}},
	}, app)

	assert.Zero(t, app.renderCalls[2], "removed view must not be re-rendered")
	assert.Equal(t, 1, app.renderCalls[3])
	_, inRegistry := p.renderedViews[2]
	assert.False(t, inRegistry)
}

func TestInvalidate_EmptyDiffIsNoOp(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)
	registryBefore := len(p.renderedViews)
	parentsBefore := len(p.parents)

	p.Invalidate(Invalidation{}, app)

	assert.Len(t, p.renderedViews, registryBefore)
	assert.Len(t, p.parents, parentsBefore)
	assert.Empty(t, app.renderCalls)
}

func TestInvalidate_RenderFailureForKnownViewPanics(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	app.renderErr[3] = errors.New("view model refused")
	p := newPresenter(app)

	assert.Panics(t, func() {
		p.Invalidate(Invalidation{Updated: map[ViewID]struct{}{3: {}}}, app)
	})
}

func TestRefresh_ReRendersEveryRegistryEntry(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)

	p.Refresh(nil, app)

	for _, id := range []ViewID{1, 2, 3} {
		assert.Equal(t, 1, app.forcedCalls[id], "view %d should be force-rendered", id)
	}
}

func TestRefresh_AppliesRemovalsFirst(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	p.Refresh(&Invalidation{Removed: map[ViewID]struct{}{3: {}}}, app)

	assert.Zero(t, app.renderCalls[3], "removed view must not be re-rendered")
	assert.Equal(t, 1, app.forcedCalls[1])
	assert.Equal(t, 1, app.forcedCalls[2])
	_, inRegistry := p.renderedViews[3]
	assert.False(t, inRegistry)
}

func TestDispatchEvent_NoRootDropsEvent(t *testing.T) {
	button := &buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}}
	app := treeApp(button)
	app.hasRoot = false
	p := newPresenter(app)

	p.DispatchEvent(platform.PointerMovedEvent{Position: geometry.Offset{X: 10, Y: 10}}, app)

	assert.Empty(t, button.seenEvents)
	assert.Nil(t, p.lastPointerMoved)
}

func TestDispatchEvent_PointerMoveNotifiesHoveredView(t *testing.T) {
	button := &buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}}
	app := treeApp(button)
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	p.DispatchEvent(platform.PointerMovedEvent{Position: geometry.Offset{X: 10, Y: 10}}, app)

	assert.True(t, button.hovered)
	assert.Equal(t, []ViewID{3}, app.notified)
}

func TestBuildScene_ReplaysPointerMoveIdempotently(t *testing.T) {
	button := &buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}}
	app := treeApp(button)
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	p.DispatchEvent(platform.PointerMovedEvent{Position: geometry.Offset{X: 10, Y: 10}}, app)
	require.Equal(t, []ViewID{3}, app.notified)

	// A frame with no further input replays the remembered move; hover state
	// must not change and no new redraw may be requested.
	p.BuildScene(windowSize, 1.0, app)

	assert.True(t, button.hovered)
	assert.Equal(t, []ViewID{3}, app.notified)
}

func TestDispatchEvent_DragReplaysAsPressedMove(t *testing.T) {
	button := &buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}}
	app := treeApp(button)
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	pos := geometry.Offset{X: 15, Y: 20}
	p.DispatchEvent(platform.PointerDraggedEvent{Position: pos}, app)
	p.BuildScene(windowSize, 1.0, app)

	require.NotEmpty(t, button.seenEvents)
	last := button.seenEvents[len(button.seenEvents)-1]
	assert.Equal(t, platform.PointerMovedEvent{Position: pos, Pressed: true}, last)
}

func TestDispatchEvent_QueuedActionAppliedWithFullPath(t *testing.T) {
	action := testAction{name: "button:press"}
	button := &buttonElement{
		preferredSize: geometry.Size{Width: 100, Height: 40},
		pressAction:   action,
	}
	app := treeApp(button)
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	p.DispatchEvent(platform.PointerDownEvent{Position: geometry.Offset{X: 10, Y: 10}}, app)

	require.Len(t, app.applied, 1)
	assert.Equal(t, []ViewID{1, 2, 3}, app.applied[0].path)
	assert.Equal(t, action, app.applied[0].action)
}

func TestDispatchEvent_ConsumedEventStopsPropagation(t *testing.T) {
	first := &buttonElement{
		preferredSize: geometry.Size{Width: 100, Height: 40},
		pressAction:   testAction{name: "first"},
	}
	second := &buttonElement{
		preferredSize: geometry.Size{Width: 100, Height: 40},
		pressAction:   testAction{name: "second"},
	}
	app := newFakeApp()
	app.elements[1] = &stackElement{children: []Element{NewChildView(2), NewChildView(3)}}
	app.elements[2] = first
	app.elements[3] = second
	app.setRoot(1)
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	// Inside the first button's bounds; the first consumes, the second must
	// never see the press.
	p.DispatchEvent(platform.PointerDownEvent{Position: geometry.Offset{X: 10, Y: 10}}, app)

	require.Len(t, app.applied, 1)
	assert.Equal(t, "first", app.applied[0].action.Name())
	assert.Empty(t, second.seenEvents)
}

func TestDebugTree_ReflectsNestedStructure(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	tree := p.DebugTree(app)

	require.NotNil(t, tree)
	assert.Equal(t, "Stack", tree.Type)
	require.Len(t, tree.Children, 1)
	proxy := tree.Children[0]
	assert.Equal(t, "ChildView", proxy.Type)
	assert.Equal(t, ViewID(2), proxy.ViewID)
	require.Len(t, proxy.Children, 1)
	inner := proxy.Children[0].Children[0]
	assert.Equal(t, ViewID(3), inner.ViewID)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "Button", inner.Children[0].Type)
}

func TestDebugTree_NoRootReturnsNil(t *testing.T) {
	app := newFakeApp()
	p := newPresenter(app)

	assert.Nil(t, p.DebugTree(app))
}

func TestDebugTree_MissingEmbeddedViewReportsEmptyProxy(t *testing.T) {
	app := treeApp(&buttonElement{preferredSize: geometry.Size{Width: 100, Height: 40}})
	p := newPresenter(app)
	p.BuildScene(windowSize, 1.0, app)

	delete(p.renderedViews, 3)
	tree := p.DebugTree(app)

	require.NotNil(t, tree)
	proxy := tree.Children[0].Children[0].Children[0]
	assert.Equal(t, ViewID(3), proxy.ViewID)
	assert.Empty(t, proxy.Children)
}
