package view

import (
	"math"
	"testing"

	"github.com/floorlay/floorlay/pkg/plan"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestScreenWorldRoundTrip(t *testing.T) {
	tr := &Transform{Scale: 2.5, OffsetX: 40, OffsetY: -17}

	points := []plan.Point{
		{X: 0, Y: 0},
		{X: 123.4, Y: -56.7},
		{X: -1000, Y: 2000},
	}
	for _, p := range points {
		got := tr.WorldToScreen(tr.ScreenToWorld(p))
		if !approx(got.X, p.X) || !approx(got.Y, p.Y) {
			t.Errorf("round trip %v = %v", p, got)
		}
	}
}

func TestZoomAtKeepsCursorPointFixed(t *testing.T) {
	// The world point under the cursor must stay at the same screen position
	// across a zoom gesture.
	cursors := []plan.Point{
		{X: 0, Y: 0},
		{X: 400, Y: 300},
		{X: -20, Y: 777},
	}

	for _, cursor := range cursors {
		tr := &Transform{Scale: 1.7, OffsetX: 33, OffsetY: -12}
		worldBefore := tr.ScreenToWorld(cursor)

		tr.ZoomAt(cursor, ZoomIn)

		screenAfter := tr.WorldToScreen(worldBefore)
		if !approx(screenAfter.X, cursor.X) || !approx(screenAfter.Y, cursor.Y) {
			t.Errorf("cursor %v drifted to %v after zoom", cursor, screenAfter)
		}
	}
}

func TestZoomInThenOutRestoresState(t *testing.T) {
	// Inverse law: zoomAt(p, in) then zoomAt(p, out) restores scale and
	// offset within floating-point tolerance, for any fixed screen point.
	p := plan.Point{X: 250, Y: 125}
	tr := &Transform{Scale: 3, OffsetX: 10, OffsetY: 20}

	tr.ZoomAt(p, ZoomIn)
	tr.ZoomAt(p, ZoomOut)

	if !approx(tr.Scale, 3) {
		t.Errorf("Scale = %v, want 3", tr.Scale)
	}
	if !approx(tr.OffsetX, 10) || !approx(tr.OffsetY, 20) {
		t.Errorf("Offset = (%v, %v), want (10, 20)", tr.OffsetX, tr.OffsetY)
	}
}

func TestZoomClamping(t *testing.T) {
	tr := New()
	p := plan.Point{X: 100, Y: 100}

	for i := 0; i < 100; i++ {
		tr.ZoomAt(p, ZoomIn)
	}
	if tr.Scale != MaxScale {
		t.Errorf("Scale = %v after repeated zoom in, want %v", tr.Scale, MaxScale)
	}

	for i := 0; i < 200; i++ {
		tr.ZoomAt(p, ZoomOut)
	}
	if tr.Scale != MinScale {
		t.Errorf("Scale = %v after repeated zoom out, want %v", tr.Scale, MinScale)
	}
}

func TestPanBy(t *testing.T) {
	tr := New()
	tr.PanBy(15, -7)
	tr.PanBy(5, 7)

	if tr.OffsetX != 20 || tr.OffsetY != 0 {
		t.Errorf("Offset = (%v, %v), want (20, 0)", tr.OffsetX, tr.OffsetY)
	}

	// Panning must not touch the scale.
	if tr.Scale != 1 {
		t.Errorf("Scale = %v after pan, want 1", tr.Scale)
	}
}

func TestScreenRectToWorld(t *testing.T) {
	tr := &Transform{Scale: 2, OffsetX: 10, OffsetY: 10}

	// Inverted corners must still produce a normalized world rectangle.
	r := tr.ScreenRectToWorld(plan.Rect{
		Min: plan.Point{X: 50, Y: 50},
		Max: plan.Point{X: 10, Y: 10},
	})

	if !approx(r.Min.X, 0) || !approx(r.Min.Y, 0) || !approx(r.Max.X, 20) || !approx(r.Max.Y, 20) {
		t.Errorf("ScreenRectToWorld() = %+v, want (0,0)-(20,20)", r)
	}
}
