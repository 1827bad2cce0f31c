// Package selection computes marquee selections over placed furniture items
// and classifies the current selection for grouping and stacking.
//
// The classification predicates are pure functions of the furniture list and
// the selected-identity set: no side effects, no I/O. The mutating batch
// operations they gate (group, stack, delete and their inverses) operate on
// a project snapshot and skip unknown identities without aborting the batch.
package selection

import (
	"slices"

	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/view"
)

// Set is a selected-identity set.
type Set map[string]struct{}

// NewSet builds a set from identities.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected identities in sorted order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// =============================================================================
// Marquee Selection
// =============================================================================

// Marquee converts the screen-space marquee rectangle to world space and
// returns the set of placed items whose bounding box intersects it, using
// open-interval overlap on both axes. The result replaces any previous
// selection; marquee selection is not additive.
//
// Item bounding boxes are derived from the project's calibrated scale; an
// uncalibrated project falls back to one pixel per centimetre.
func Marquee(p *plan.Project, t *view.Transform, screenRect plan.Rect) Set {
	worldRect := t.ScreenRectToWorld(screenRect)

	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}

	out := Set{}
	for i := range p.Items {
		it := &p.Items[i]
		if !it.Placed() {
			continue
		}
		if it.Bounds(scale).Overlaps(worldRect) {
			out[it.ID] = struct{}{}
		}
	}
	return out
}

// =============================================================================
// Classification Predicates
// =============================================================================

// CanGroup reports whether the selection can form a new group: more than one
// item is selected and none already belongs to a group.
func CanGroup(p *plan.Project, sel Set) bool {
	if len(sel) < 2 {
		return false
	}
	for i := range p.Items {
		if sel.Has(p.Items[i].ID) && p.Items[i].GroupID != "" {
			return false
		}
	}
	return true
}

// CanStack reports whether the selection can form a new stack: more than one
// item is selected and the selection is not already a single uniform stack.
func CanStack(p *plan.Project, sel Set) bool {
	return len(sel) > 1 && !IsStack(p, sel)
}

// IsStack reports whether every selected item shares one non-empty stack
// identity.
func IsStack(p *plan.Project, sel Set) bool {
	if len(sel) == 0 {
		return false
	}
	stackID := ""
	for i := range p.Items {
		it := &p.Items[i]
		if !sel.Has(it.ID) {
			continue
		}
		if it.StackID == "" {
			return false
		}
		if stackID == "" {
			stackID = it.StackID
		} else if it.StackID != stackID {
			return false
		}
	}
	return stackID != ""
}

// IsSingleStackSelected reports whether the selection exactly equals all
// members of one stack.
func IsSingleStackSelected(p *plan.Project, sel Set) bool {
	if !IsStack(p, sel) {
		return false
	}

	var stackID string
	for i := range p.Items {
		if sel.Has(p.Items[i].ID) {
			stackID = p.Items[i].StackID
			break
		}
	}

	members := p.StackMembers(stackID)
	if len(members) != len(sel) {
		return false
	}
	for _, id := range members {
		if !sel.Has(id) {
			return false
		}
	}
	return true
}

// =============================================================================
// Batch Mutations
// =============================================================================

// Group assigns groupID to every listed item. Identities absent from the
// furniture list are skipped without aborting the batch; the number of items
// actually modified is returned.
func Group(p *plan.Project, ids []string, groupID string) int {
	return assign(p, ids, func(it *plan.FurnitureItem) { it.GroupID = groupID })
}

// Ungroup clears the group identity of every listed item.
func Ungroup(p *plan.Project, ids []string) int {
	return assign(p, ids, func(it *plan.FurnitureItem) { it.GroupID = "" })
}

// Stack assigns stackID to every listed item.
func Stack(p *plan.Project, ids []string, stackID string) int {
	return assign(p, ids, func(it *plan.FurnitureItem) { it.StackID = stackID })
}

// Unstack clears the stack identity of every listed item.
func Unstack(p *plan.Project, ids []string) int {
	return assign(p, ids, func(it *plan.FurnitureItem) { it.StackID = "" })
}

// Delete removes every listed item from the project. Unknown identities are
// skipped; the number of items removed is returned.
func Delete(p *plan.Project, ids []string) int {
	doomed := NewSet(ids...)
	kept := p.Items[:0]
	removed := 0
	for i := range p.Items {
		if doomed.Has(p.Items[i].ID) {
			removed++
			continue
		}
		kept = append(kept, p.Items[i])
	}
	p.Items = kept
	return removed
}

func assign(p *plan.Project, ids []string, f func(*plan.FurnitureItem)) int {
	applied := 0
	for _, id := range ids {
		if it := p.Item(id); it != nil {
			f(it)
			applied++
		}
	}
	return applied
}
