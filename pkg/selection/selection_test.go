package selection

import (
	"testing"

	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/view"
)

func placed(id string, x, y, wCm, dCm float64) plan.FurnitureItem {
	return plan.FurnitureItem{
		ID: id, Name: "Item " + id,
		WidthCm: wCm, DepthCm: dCm,
		Position: &plan.Point{X: x, Y: y},
	}
}

func testProject() *plan.Project {
	p := plan.New("Office")
	p.Scale = 1 // 1 px per cm keeps the geometry easy to read
	return p
}

func TestMarquee(t *testing.T) {
	p := testProject()
	p.Items = []plan.FurnitureItem{
		placed("inside", 10, 10, 20, 20),           // fully inside
		placed("partial", 90, 90, 40, 40),          // straddles the edge
		placed("outside", 500, 500, 20, 20),        // entirely outside
		{ID: "unplaced", Name: "U", WidthCm: 20, DepthCm: 20}, // never selectable
	}

	// Identity view transform: screen == world.
	sel := Marquee(p, view.New(), plan.NewRect(plan.Point{X: 0, Y: 0}, plan.Point{X: 100, Y: 100}))

	if len(sel) != 2 {
		t.Fatalf("Marquee() selected %v, want 2 items", sel.IDs())
	}
	for _, want := range []string{"inside", "partial"} {
		if !sel.Has(want) {
			t.Errorf("Marquee() missed %q", want)
		}
	}
	if sel.Has("outside") || sel.Has("unplaced") {
		t.Errorf("Marquee() selected excluded items: %v", sel.IDs())
	}
}

func TestMarqueeEdgeTouchIsNotOverlap(t *testing.T) {
	p := testProject()
	// Item spans world (100,0)-(120,20); marquee ends exactly at x=100.
	p.Items = []plan.FurnitureItem{placed("edge", 100, 0, 20, 20)}

	sel := Marquee(p, view.New(), plan.NewRect(plan.Point{X: 0, Y: 0}, plan.Point{X: 100, Y: 100}))
	if sel.Has("edge") {
		t.Error("open-interval overlap must exclude an edge-touching item")
	}
}

func TestMarqueeUsesViewTransform(t *testing.T) {
	p := testProject()
	p.Items = []plan.FurnitureItem{placed("a", 10, 10, 10, 10)}

	// Screen is zoomed 2x and panned by (100, 100): the item's world box
	// (10,10)-(20,20) appears at screen (120,120)-(140,140).
	tr := &view.Transform{Scale: 2, OffsetX: 100, OffsetY: 100}

	hit := Marquee(p, tr, plan.NewRect(plan.Point{X: 115, Y: 115}, plan.Point{X: 150, Y: 150}))
	if !hit.Has("a") {
		t.Error("marquee over the item's screen position missed it")
	}

	miss := Marquee(p, tr, plan.NewRect(plan.Point{X: 0, Y: 0}, plan.Point{X: 100, Y: 100}))
	if miss.Has("a") {
		t.Error("marquee away from the item's screen position selected it")
	}
}

func TestMarqueeReplacesSelection(t *testing.T) {
	p := testProject()
	p.Items = []plan.FurnitureItem{
		placed("a", 0, 0, 10, 10),
		placed("b", 200, 200, 10, 10),
	}

	first := Marquee(p, view.New(), plan.NewRect(plan.Point{}, plan.Point{X: 50, Y: 50}))
	second := Marquee(p, view.New(), plan.NewRect(plan.Point{X: 190, Y: 190}, plan.Point{X: 250, Y: 250}))

	if !first.Has("a") || first.Has("b") {
		t.Fatalf("first marquee = %v, want [a]", first.IDs())
	}
	// The second marquee is a fresh set, not a union with the first.
	if second.Has("a") || !second.Has("b") {
		t.Errorf("second marquee = %v, want [b]", second.IDs())
	}
}

func TestClassificationPredicates(t *testing.T) {
	grouped := placed("g1", 0, 0, 10, 10)
	grouped.GroupID = "grp"
	s1 := placed("s1", 0, 0, 10, 10)
	s1.StackID = "stk"
	s2 := placed("s2", 0, 0, 10, 10)
	s2.StackID = "stk"
	s3 := placed("s3", 0, 0, 10, 10)
	s3.StackID = "other"

	p := testProject()
	p.Items = []plan.FurnitureItem{
		placed("a", 0, 0, 10, 10),
		placed("b", 0, 0, 10, 10),
		grouped, s1, s2, s3,
	}

	tests := []struct {
		name                  string
		sel                   Set
		canGroup, canStack    bool
		isStack, singleStack  bool
	}{
		{name: "empty", sel: NewSet()},
		{name: "single item", sel: NewSet("a")},
		{
			name: "two ungrouped items",
			sel:  NewSet("a", "b"),
			canGroup: true, canStack: true,
		},
		{
			name: "contains grouped item",
			sel:  NewSet("a", "g1"),
			canGroup: false, canStack: true,
		},
		{
			name: "complete uniform stack",
			sel:  NewSet("s1", "s2"),
			canGroup: true, canStack: false,
			isStack: true, singleStack: true,
		},
		{
			name: "stack plus outsider",
			sel:  NewSet("s1", "s2", "a"),
			canGroup: true, canStack: true,
		},
		{
			name: "two different stacks",
			sel:  NewSet("s1", "s3"),
			canGroup: true, canStack: true,
		},
		{
			name: "partial stack",
			sel:  NewSet("s1"),
			isStack: true, singleStack: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanGroup(p, tt.sel); got != tt.canGroup {
				t.Errorf("CanGroup() = %v, want %v", got, tt.canGroup)
			}
			if got := CanStack(p, tt.sel); got != tt.canStack {
				t.Errorf("CanStack() = %v, want %v", got, tt.canStack)
			}
			if got := IsStack(p, tt.sel); got != tt.isStack {
				t.Errorf("IsStack() = %v, want %v", got, tt.isStack)
			}
			if got := IsSingleStackSelected(p, tt.sel); got != tt.singleStack {
				t.Errorf("IsSingleStackSelected() = %v, want %v", got, tt.singleStack)
			}
		})
	}
}

func TestBatchMutationsSkipUnknownIdentities(t *testing.T) {
	p := testProject()
	p.Items = []plan.FurnitureItem{
		placed("a", 0, 0, 10, 10),
		placed("b", 0, 0, 10, 10),
	}

	if n := Group(p, []string{"a", "ghost", "b"}, "grp-1"); n != 2 {
		t.Errorf("Group() applied = %d, want 2", n)
	}
	if p.Item("a").GroupID != "grp-1" || p.Item("b").GroupID != "grp-1" {
		t.Error("Group() did not assign the group identity to known items")
	}

	if n := Stack(p, []string{"b", "ghost"}, "stk-1"); n != 1 {
		t.Errorf("Stack() applied = %d, want 1", n)
	}

	if n := Ungroup(p, []string{"ghost", "a"}); n != 1 {
		t.Errorf("Ungroup() applied = %d, want 1", n)
	}
	if p.Item("a").GroupID != "" {
		t.Error("Ungroup() left the group identity in place")
	}

	if n := Unstack(p, []string{"b"}); n != 1 {
		t.Errorf("Unstack() applied = %d, want 1", n)
	}

	if n := Delete(p, []string{"ghost", "a"}); n != 1 {
		t.Errorf("Delete() removed = %d, want 1", n)
	}
	if p.Item("a") != nil || p.Item("b") == nil {
		t.Error("Delete() removed the wrong items")
	}
}
