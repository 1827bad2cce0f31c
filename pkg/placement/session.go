// Package placement implements batch placement sessions: placing N copies of
// an item template at successive click points.
//
// Each placement is expected to become its own history commit, so cancelling
// a session preserves the items already placed in earlier iterations.
package placement

import (
	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
)

// Session is a short-lived batch placement workflow. Use Start to create
// one; the session ends automatically when the requested quantity has been
// placed, or early via Cancel.
type Session struct {
	template  plan.Template
	total     int
	remaining int
}

// Start begins a session placing quantity copies of template.
// Quantity must be at least 1.
func Start(template plan.Template, quantity int) (*Session, error) {
	if quantity < 1 {
		return nil, errors.New(errors.ErrCodeInvalidQuantity,
			"placement quantity must be at least 1, got %d", quantity)
	}
	return &Session{template: template, total: quantity, remaining: quantity}, nil
}

// Active reports whether the session still has placements remaining.
func (s *Session) Active() bool { return s != nil && s.remaining > 0 }

// Total returns the quantity requested at session start.
func (s *Session) Total() int { return s.total }

// Remaining returns how many placements are left; always within [0, Total].
func (s *Session) Remaining() int { return s.remaining }

// Template returns the item template this session stamps copies from.
func (s *Session) Template() plan.Template { return s.template }

// PlaceAt creates one new furniture item at the given world point with
// rotation 0 and a freshly generated identity, and decrements the remaining
// count. When remaining reaches 0 the session has ended and further calls
// report SESSION_INACTIVE.
//
// The returned item has not been added to any project; the caller commits
// it to history.
func (s *Session) PlaceAt(p plan.Point) (plan.FurnitureItem, error) {
	if !s.Active() {
		return plan.FurnitureItem{}, errors.New(errors.ErrCodeSessionInactive,
			"no active placement session")
	}

	it := s.template.Instantiate()
	pos := p
	it.Position = &pos
	s.remaining--
	return it, nil
}

// Cancel discards the session. Items placed in earlier iterations are each
// their own history commit and are unaffected.
func (s *Session) Cancel() {
	if s != nil {
		s.remaining = 0
	}
}
