package engine

import (
	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/selection"
)

// =============================================================================
// Clicks
// =============================================================================

// Click routes a click gesture to the component owned by the active mode.
// Screen coordinates are converted to world space before they reach any
// component.
//
// In placing mode the returned error is SESSION_INACTIVE when no placements
// remain; the engine stays fully usable.
func (e *Engine) Click(screen plan.Point) error {
	world := e.view.ScreenToWorld(screen)

	switch e.mode {
	case ModeScaling:
		e.cal.AddPoint(world)
		return nil

	case ModeMeasuring:
		e.meas.AddPoint(world)
		return nil

	case ModePlacing:
		return e.placeAt(world)

	default:
		e.selectAt(world)
		return nil
	}
}

func (e *Engine) placeAt(world plan.Point) error {
	if e.sess == nil {
		return errors.New(errors.ErrCodeSessionInactive, "no active placement session")
	}

	it, err := e.sess.PlaceAt(world)
	if err != nil {
		return err
	}

	// Each placement is its own history commit, so cancelling the session
	// later preserves partial completion.
	p := e.hist.Current().Clone()
	p.Items = append(p.Items, it)
	e.commit(p)

	if !e.sess.Active() {
		e.opts.Logger.Debug("placement session complete", "total", e.sess.Total())
		e.sess = nil
		e.mode = ModeIdle
	}
	return nil
}

// selectAt replaces the selection with the topmost placed item under the
// world point, or clears it when the click lands on empty floor.
func (e *Engine) selectAt(world plan.Point) {
	e.sel = selection.Set{}
	if it := e.itemAt(world); it != nil {
		e.sel[it.ID] = struct{}{}
	}
}

// itemAt returns the topmost placed item whose bounding box contains the
// world point. Later array entries draw on top of earlier ones.
func (e *Engine) itemAt(world plan.Point) *plan.FurnitureItem {
	p := e.hist.Current()
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	for i := len(p.Items) - 1; i >= 0; i-- {
		it := &p.Items[i]
		if it.Placed() && it.Bounds(scale).Contains(world) {
			return it
		}
	}
	return nil
}

// =============================================================================
// Drag Gestures
// =============================================================================

// dragKind distinguishes the two drag gestures the engine owns.
type dragKind int

const (
	dragMarquee dragKind = iota
	dragItem
)

// dragState is the gesture-scoped resource acquired on pointer-down and
// unconditionally released on every exit path (pointer-up or forced blur).
type dragState struct {
	kind    dragKind
	anchor  plan.Point // screen-space anchor of the gesture
	current plan.Point // latest screen-space pointer position

	itemID string     // item drag: identity of the dragged item
	grab   plan.Point // item drag: world offset from pointer to item anchor
}

// DragActive reports whether a drag gesture currently holds the pointer.
func (e *Engine) DragActive() bool { return e.drag != nil }

// MarqueeRect returns the screen-space rectangle of an in-progress marquee
// drag.
func (e *Engine) MarqueeRect() (plan.Rect, bool) {
	if e.drag == nil || e.drag.kind != dragMarquee {
		return plan.Rect{}, false
	}
	return plan.NewRect(e.drag.anchor, e.drag.current), true
}

// PointerDown begins a drag gesture. In marquee mode it anchors the
// selection rectangle; in idle mode a press on a placed item starts moving
// it. The press also commits the pre-drag snapshot so that undo after the
// drag restores it; only the drag's terminal state becomes undoable.
func (e *Engine) PointerDown(screen plan.Point) {
	switch e.mode {
	case ModeMarqueeSelecting:
		e.drag = &dragState{kind: dragMarquee, anchor: screen, current: screen}

	case ModeIdle:
		world := e.view.ScreenToWorld(screen)
		it := e.itemAt(world)
		if it == nil {
			return
		}
		e.drag = &dragState{
			kind:    dragItem,
			anchor:  screen,
			current: screen,
			itemID:  it.ID,
			grab:    plan.Point{X: world.X - it.Position.X, Y: world.Y - it.Position.Y},
		}
		e.commit(e.hist.Current().Clone())
	}
}

// PointerMove updates an in-progress drag. Moves without a prior
// pointer-down are ignored: the engine only listens while the gesture holds
// the pointer.
func (e *Engine) PointerMove(screen plan.Point) {
	if e.drag == nil {
		return
	}
	e.drag.current = screen

	if e.drag.kind == dragItem {
		world := e.view.ScreenToWorld(screen)
		p := e.hist.Current().Clone()
		if it := p.Item(e.drag.itemID); it != nil && it.Placed() {
			it.Position.X = world.X - e.drag.grab.X
			it.Position.Y = world.Y - e.drag.grab.Y
			e.liveUpdate(p)
		}
	}
}

// PointerUp completes the drag and releases the gesture-scoped capture.
// A marquee drag replaces the selection set; an item drag persists its
// terminal state.
func (e *Engine) PointerUp(screen plan.Point) {
	if e.drag == nil {
		return
	}
	e.drag.current = screen
	e.finishDrag()
}

// Blur is the externally forced release (e.g. window blur). Any in-progress
// drag is finalized at its last known pointer position; the capture is
// released on this exit path exactly as on pointer-up.
func (e *Engine) Blur() {
	if e.drag == nil {
		return
	}
	e.finishDrag()
}

func (e *Engine) finishDrag() {
	d := e.drag
	e.drag = nil

	switch d.kind {
	case dragMarquee:
		rect := plan.NewRect(d.anchor, d.current)
		e.sel = selection.Marquee(e.hist.Current(), e.view, rect)
		e.mode = ModeIdle
		e.opts.Logger.Debug("marquee selection", "count", len(e.sel))

	case dragItem:
		e.applyDragFinal(d)
		e.opts.OnProjectChange(e.hist.Current())
	}
}

// applyDragFinal applies the drag's terminal position as the last live
// update before the state is persisted.
func (e *Engine) applyDragFinal(d *dragState) {
	world := e.view.ScreenToWorld(d.current)
	p := e.hist.Current().Clone()
	if it := p.Item(d.itemID); it != nil && it.Placed() {
		it.Position.X = world.X - d.grab.X
		it.Position.Y = world.Y - d.grab.Y
		e.liveUpdate(p)
	}
}
