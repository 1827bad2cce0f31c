// Package history implements the project undo/redo stack.
//
// The history is a flat sequence of immutable full-project snapshots plus a
// current index. The timeline is linear, with standard branch-discard
// semantics: committing while undone truncates everything after the current
// index. Multi-branch undo is intentionally not modeled.
//
// The package is pure state bookkeeping: it never fires callbacks or
// triggers derivation. The engine wraps every history operation in its
// synchronous commit→synthesize pipeline.
package history

import "github.com/floorlay/floorlay/pkg/plan"

// History holds the ordered snapshot sequence and the current index.
// The index is always within [0, len-1]; a history is never empty.
type History struct {
	entries []*plan.Project
	index   int
}

// New creates a history seeded with the initial snapshot. The snapshot is
// cloned so later caller mutation cannot corrupt the stored entry.
func New(initial *plan.Project) *History {
	return &History{entries: []*plan.Project{initial.Clone()}}
}

// Current returns the snapshot at the current index. Callers must treat the
// returned project as read-only and clone before mutating.
func (h *History) Current() *plan.Project {
	return h.entries[h.index]
}

// Commit appends a new snapshot and advances the index. If the index is not
// at the end of the sequence, everything after it is discarded first.
func (h *History) Commit(snapshot *plan.Project) {
	h.entries = h.entries[:h.index+1]
	h.entries = append(h.entries, snapshot.Clone())
	h.index++
}

// LiveUpdate replaces the entry at the current index in place, without
// growing the stack. It is used for continuous in-progress mutation (e.g.
// dragging) where only the terminal state should become undoable.
func (h *History) LiveUpdate(snapshot *plan.Project) {
	h.entries[h.index] = snapshot.Clone()
}

// Undo moves the index back one entry and returns the now-current snapshot.
// At the lower boundary it is a no-op and reports false without mutating
// the stored sequence.
func (h *History) Undo() (*plan.Project, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.index--
	return h.Current(), true
}

// Redo moves the index forward one entry and returns the now-current
// snapshot. At the upper boundary it is a no-op and reports false.
func (h *History) Redo() (*plan.Project, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.index++
	return h.Current(), true
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Index returns the current position in the snapshot sequence.
func (h *History) Index() int { return h.index }
