package engine

import (
	"github.com/google/uuid"

	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/selection"
)

// =============================================================================
// Import and Item Mutations
// =============================================================================

// ImportTemplates creates one unplaced item per template and commits the
// result as a single history entry. The templates come from the import
// collaborator already validated.
func (e *Engine) ImportTemplates(templates []plan.Template) {
	if len(templates) == 0 {
		return
	}
	p := e.hist.Current().Clone()
	for _, t := range templates {
		p.Items = append(p.Items, t.Instantiate())
	}
	e.commit(p)
	e.opts.Logger.Debug("imported templates", "count", len(templates))
}

// PlaceItem positions an existing unplaced item at a world point and
// commits. Items placed this way behave exactly like session placements.
func (e *Engine) PlaceItem(id string, at plan.Point) error {
	p := e.hist.Current().Clone()
	it := p.Item(id)
	if it == nil {
		return errors.New(errors.ErrCodeUnknownIdentity, "item %s does not belong to the project", id)
	}
	if it.Placed() {
		return errors.New(errors.ErrCodeInvalidInput, "item %s is already placed", id)
	}
	it.Position = &plan.Point{X: at.X, Y: at.Y}
	e.commit(p)
	return nil
}

// MoveSelectionBy shifts every selected placed item by the given world
// deltas and commits. Unknown identities are skipped; when nothing moves,
// no history entry is created and UNKNOWN_IDENTITY is reported.
func (e *Engine) MoveSelectionBy(dx, dy float64) error {
	p := e.hist.Current().Clone()
	moved := 0
	for _, id := range e.sel.IDs() {
		if it := p.Item(id); it != nil && it.Placed() {
			it.Position.X += dx
			it.Position.Y += dy
			moved++
		}
	}
	if moved == 0 {
		return errors.New(errors.ErrCodeUnknownIdentity, "no selected item could be moved")
	}
	e.commit(p)
	return nil
}

// RotateSelection adds degrees to every selected item's rotation and
// commits, normalizing into [0, 360).
func (e *Engine) RotateSelection(degrees float64) error {
	p := e.hist.Current().Clone()
	rotated := 0
	for _, id := range e.sel.IDs() {
		if it := p.Item(id); it != nil {
			it.Rotation = normalizeDegrees(it.Rotation + degrees)
			rotated++
		}
	}
	if rotated == 0 {
		return errors.New(errors.ErrCodeUnknownIdentity, "no selected item could be rotated")
	}
	e.commit(p)
	return nil
}

func normalizeDegrees(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}

// =============================================================================
// Direct Selection
// =============================================================================

// ToggleSelect adds the identity to the selection, or removes it when
// already selected. Identities that don't belong to the project are
// ignored.
func (e *Engine) ToggleSelect(id string) {
	if e.hist.Current().Item(id) == nil {
		return
	}
	if e.sel.Has(id) {
		delete(e.sel, id)
	} else {
		e.sel[id] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (e *Engine) ClearSelection() {
	e.sel = selection.Set{}
}

// =============================================================================
// Selection Batch Operations
// =============================================================================

// GroupSelection assigns a fresh group identity to the selected items.
// It refuses when the selection cannot form a group (fewer than two items,
// or one already grouped).
func (e *Engine) GroupSelection() error {
	p := e.hist.Current()
	if !selection.CanGroup(p, e.sel) {
		return errors.New(errors.ErrCodeInvalidInput, "selection cannot form a group")
	}

	next := p.Clone()
	selection.Group(next, e.sel.IDs(), uuid.NewString())
	e.commit(next)
	return nil
}

// UngroupSelection clears the group identity of the selected items.
// Unknown identities are skipped without aborting the batch.
func (e *Engine) UngroupSelection() error {
	next := e.hist.Current().Clone()
	if selection.Ungroup(next, e.sel.IDs()) == 0 {
		return errors.New(errors.ErrCodeUnknownIdentity, "no selected item belongs to the project")
	}
	e.commit(next)
	return nil
}

// StackSelection assigns a fresh stack identity to the selected items.
// It refuses when the selection is already a single uniform stack.
func (e *Engine) StackSelection() error {
	p := e.hist.Current()
	if !selection.CanStack(p, e.sel) {
		return errors.New(errors.ErrCodeInvalidInput, "selection cannot form a stack")
	}

	next := p.Clone()
	selection.Stack(next, e.sel.IDs(), uuid.NewString())
	e.commit(next)
	return nil
}

// UnstackSelection clears the stack identity of the selected items.
func (e *Engine) UnstackSelection() error {
	next := e.hist.Current().Clone()
	if selection.Unstack(next, e.sel.IDs()) == 0 {
		return errors.New(errors.ErrCodeUnknownIdentity, "no selected item belongs to the project")
	}
	e.commit(next)
	return nil
}

// DeleteSelection removes the selected items from the project and clears
// the selection. Unknown identities are skipped; deleting nothing creates
// no history entry.
func (e *Engine) DeleteSelection() error {
	next := e.hist.Current().Clone()
	removed := selection.Delete(next, e.sel.IDs())
	if removed == 0 {
		return errors.New(errors.ErrCodeUnknownIdentity, "no selected item belongs to the project")
	}
	e.sel = selection.Set{}
	e.commit(next)
	e.opts.Logger.Debug("deleted items", "count", removed)
	return nil
}

// =============================================================================
// Selection Classification
// =============================================================================

// CanGroup reports whether the current selection can form a new group.
func (e *Engine) CanGroup() bool { return selection.CanGroup(e.hist.Current(), e.sel) }

// CanStack reports whether the current selection can form a new stack.
func (e *Engine) CanStack() bool { return selection.CanStack(e.hist.Current(), e.sel) }

// IsStack reports whether every selected item shares one stack identity.
func (e *Engine) IsStack() bool { return selection.IsStack(e.hist.Current(), e.sel) }

// IsSingleStackSelected reports whether the selection exactly equals all
// members of one stack.
func (e *Engine) IsSingleStackSelected() bool {
	return selection.IsSingleStackSelected(e.hist.Current(), e.sel)
}
