// Package view maps between screen pixels and world coordinates and owns the
// pan/zoom state of the viewing surface.
//
// The transform is ephemeral: it is never part of project history. Screen
// and world coordinates are related by
//
//	screen = world × scale + offset
//
// and zooming keeps the world point under the cursor visually fixed.
package view

import "github.com/floorlay/floorlay/pkg/plan"

const (
	// ZoomStep is the multiplicative factor applied per zoom gesture.
	ZoomStep = 1.1

	// MinScale and MaxScale clamp the view scale factor.
	MinScale = 0.1
	MaxScale = 10.0
)

// ZoomDirection selects whether a zoom gesture moves in or out.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// Transform holds the current view scale factor and pixel offset.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// New returns an identity transform (scale 1, no offset).
func New() *Transform {
	return &Transform{Scale: 1}
}

// PanBy shifts the view by the given screen-pixel deltas.
func (t *Transform) PanBy(dx, dy float64) {
	t.OffsetX += dx
	t.OffsetY += dy
}

// ZoomAt multiplies or divides the scale by ZoomStep depending on direction,
// clamps the result to [MinScale, MaxScale], and recomputes the offset so the
// world point currently under screenPoint stays visually fixed:
//
//	newOffset = screenPoint − (screenPoint − oldOffset) × (newScale / oldScale)
func (t *Transform) ZoomAt(screenPoint plan.Point, dir ZoomDirection) {
	oldScale := t.Scale
	newScale := oldScale * ZoomStep
	if dir == ZoomOut {
		newScale = oldScale / ZoomStep
	}
	newScale = clamp(newScale, MinScale, MaxScale)

	ratio := newScale / oldScale
	t.OffsetX = screenPoint.X - (screenPoint.X-t.OffsetX)*ratio
	t.OffsetY = screenPoint.Y - (screenPoint.Y-t.OffsetY)*ratio
	t.Scale = newScale
}

// ScreenToWorld converts a screen-space point to world space.
func (t *Transform) ScreenToWorld(p plan.Point) plan.Point {
	return plan.Point{
		X: (p.X - t.OffsetX) / t.Scale,
		Y: (p.Y - t.OffsetY) / t.Scale,
	}
}

// WorldToScreen converts a world-space point to screen space.
func (t *Transform) WorldToScreen(p plan.Point) plan.Point {
	return plan.Point{
		X: p.X*t.Scale + t.OffsetX,
		Y: p.Y*t.Scale + t.OffsetY,
	}
}

// ScreenRectToWorld converts a screen-space rectangle (e.g. a marquee) to a
// normalized world-space rectangle.
func (t *Transform) ScreenRectToWorld(r plan.Rect) plan.Rect {
	return plan.NewRect(t.ScreenToWorld(r.Min), t.ScreenToWorld(r.Max))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
