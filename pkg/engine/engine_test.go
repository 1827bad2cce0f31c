package engine

import (
	"testing"

	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/tasks"
)

var deskTemplate = plan.Template{Name: "Desk", WidthCm: 100, DepthCm: 50}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(plan.New("Office"), opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

type sinkCounter struct {
	projects int
	taskRuns int
	last     []tasks.Task
}

func (c *sinkCounter) options() Options {
	return Options{
		OnProjectChange:  func(*plan.Project) { c.projects++ },
		OnTasksGenerated: func(ts []tasks.Task) { c.taskRuns++; c.last = ts },
	}
}

func TestNewRejectsInvalidSnapshot(t *testing.T) {
	bad := plan.New("Office")
	bad.Scale = -1

	if _, err := New(bad, Options{}); !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("New() error = %v, want INVALID_SNAPSHOT", err)
	}
}

func TestCalibrationFlow(t *testing.T) {
	var sink sinkCounter
	e := newTestEngine(t, sink.options())

	e.EnterScaling()
	if e.Mode() != ModeScaling {
		t.Fatalf("Mode() = %v, want scaling", e.Mode())
	}

	// Draw a 300-pixel reference segment, then supply 100 cm.
	e.Click(plan.Point{X: 0, Y: 0})
	e.Click(plan.Point{X: 300, Y: 0})

	if px, ok := e.CalibrationLength(); !ok || px != 300 {
		t.Fatalf("CalibrationLength() = %v, %v, want 300, true", px, ok)
	}

	// A non-positive length is rejected and the phase stays open.
	if err := e.CommitCalibration(0); !errors.Is(err, errors.ErrCodeInvalidCalibration) {
		t.Fatalf("CommitCalibration(0) error = %v, want INVALID_CALIBRATION", err)
	}
	if e.Mode() != ModeScaling {
		t.Error("rejection closed the calibration mode")
	}
	if sink.projects != 0 {
		t.Errorf("rejection fired the persistence callback %d times", sink.projects)
	}

	if err := e.CommitCalibration(100); err != nil {
		t.Fatalf("CommitCalibration(100) error = %v", err)
	}
	if got := e.Project().Scale; got != 3 {
		t.Errorf("Scale = %v, want 3", got)
	}
	if e.Mode() != ModeIdle {
		t.Errorf("Mode() = %v after calibration, want idle", e.Mode())
	}
	if sink.projects != 1 || sink.taskRuns != 1 {
		t.Errorf("callbacks fired %d/%d times, want 1/1", sink.projects, sink.taskRuns)
	}
}

func TestPlacementScenario(t *testing.T) {
	// start(template, 3), three placeAt calls at distinct points, then a
	// fourth placeAt is a SESSION_INACTIVE no-op.
	var sink sinkCounter
	e := newTestEngine(t, sink.options())

	if err := e.StartPlacing(deskTemplate, 3); err != nil {
		t.Fatalf("StartPlacing() error = %v", err)
	}

	points := []plan.Point{{X: 10, Y: 10}, {X: 200, Y: 10}, {X: 10, Y: 200}}
	for i, pt := range points {
		if err := e.Click(pt); err != nil {
			t.Fatalf("Click() #%d error = %v", i+1, err)
		}
	}

	if e.PlacementRemaining() != 0 {
		t.Errorf("PlacementRemaining() = %d, want 0", e.PlacementRemaining())
	}
	if e.Mode() != ModeIdle {
		t.Errorf("Mode() = %v after the session auto-closed, want idle", e.Mode())
	}
	if len(e.Project().Items) != 3 {
		t.Fatalf("project has %d items, want 3", len(e.Project().Items))
	}

	// Fourth placement: re-entering placing mode is required; a stray click
	// in idle mode selects instead of placing.
	e.mode = ModePlacing
	if err := e.Click(plan.Point{X: 50, Y: 50}); !errors.Is(err, errors.ErrCodeSessionInactive) {
		t.Errorf("fourth placement error = %v, want SESSION_INACTIVE", err)
	}
	if len(e.Project().Items) != 3 {
		t.Errorf("no-op placement changed the project: %d items", len(e.Project().Items))
	}

	// Each placement was its own commit with exactly one synthesis.
	if sink.projects != 3 || sink.taskRuns != 3 {
		t.Errorf("callbacks fired %d/%d times, want 3/3", sink.projects, sink.taskRuns)
	}
	if len(sink.last) != 3 {
		t.Errorf("derived task list has %d tasks, want 3", len(sink.last))
	}
}

func TestPlacementCancelPreservesCommits(t *testing.T) {
	e := newTestEngine(t, Options{})

	if err := e.StartPlacing(deskTemplate, 3); err != nil {
		t.Fatalf("StartPlacing() error = %v", err)
	}
	e.Click(plan.Point{X: 10, Y: 10})
	e.Click(plan.Point{X: 300, Y: 10})

	e.CancelMode()

	if got := len(e.Project().Items); got != 2 {
		t.Errorf("cancel dropped committed placements: %d items, want 2", got)
	}
	if e.Mode() != ModeIdle {
		t.Errorf("Mode() = %v after cancel, want idle", e.Mode())
	}

	// Undo still walks the two placement commits individually.
	e.Undo()
	if got := len(e.Project().Items); got != 1 {
		t.Errorf("after undo: %d items, want 1", got)
	}
}

func TestUndoRedoPipeline(t *testing.T) {
	var sink sinkCounter
	e := newTestEngine(t, sink.options())

	if err := e.StartPlacing(deskTemplate, 2); err != nil {
		t.Fatalf("StartPlacing() error = %v", err)
	}
	e.Click(plan.Point{X: 10, Y: 10})
	e.Click(plan.Point{X: 300, Y: 10})
	sink.projects, sink.taskRuns = 0, 0

	if !e.Undo() {
		t.Fatal("Undo() = false with undoable history")
	}
	if len(sink.last) != 1 {
		t.Errorf("derived tasks after undo = %d, want 1", len(sink.last))
	}
	if sink.projects != 1 || sink.taskRuns != 1 {
		t.Errorf("undo fired callbacks %d/%d times, want 1/1", sink.projects, sink.taskRuns)
	}

	if !e.Redo() {
		t.Fatal("Redo() = false with redoable history")
	}
	if len(sink.last) != 2 {
		t.Errorf("derived tasks after redo = %d, want 2", len(sink.last))
	}

	// Boundary: silent no-op, no callbacks.
	sink.projects, sink.taskRuns = 0, 0
	if e.Redo() {
		t.Error("Redo() = true at the upper boundary")
	}
	if sink.projects != 0 || sink.taskRuns != 0 {
		t.Errorf("boundary redo fired callbacks %d/%d times", sink.projects, sink.taskRuns)
	}
}

func TestMarqueeDragReplacesSelection(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.ImportTemplates([]plan.Template{deskTemplate, deskTemplate})

	// Place both items manually via the snapshot to control geometry.
	p := e.Project().Clone()
	p.Items[0].Position = &plan.Point{X: 10, Y: 10}
	p.Items[1].Position = &plan.Point{X: 500, Y: 500}
	e.commit(p)

	e.EnterMarquee()
	e.PointerDown(plan.Point{X: 0, Y: 0})
	e.PointerMove(plan.Point{X: 60, Y: 60})
	if _, ok := e.MarqueeRect(); !ok {
		t.Fatal("MarqueeRect() unavailable during drag")
	}
	e.PointerUp(plan.Point{X: 120, Y: 120})

	if len(e.Selection()) != 1 || !e.Selection().Has(p.Items[0].ID) {
		t.Errorf("Selection() = %v, want [%s]", e.Selection().IDs(), p.Items[0].ID)
	}
	if e.Mode() != ModeIdle {
		t.Errorf("Mode() = %v after marquee, want idle", e.Mode())
	}
	if e.DragActive() {
		t.Error("drag capture still held after pointer-up")
	}
}

func TestItemDragLiveUpdatesThenCommits(t *testing.T) {
	var sink sinkCounter
	e := newTestEngine(t, sink.options())

	e.StartPlacing(deskTemplate, 1)
	e.Click(plan.Point{X: 100, Y: 100})
	itemID := e.Project().Items[0].ID
	sink.projects = 0

	histBefore := e.hist.Len()

	e.PointerDown(plan.Point{X: 110, Y: 110})
	if !e.DragActive() {
		t.Fatal("pointer-down on an item did not acquire the drag")
	}
	e.PointerMove(plan.Point{X: 210, Y: 110})
	e.PointerMove(plan.Point{X: 310, Y: 110})
	e.PointerUp(plan.Point{X: 310, Y: 210})

	it := e.Project().Item(itemID)
	if it.Position.X != 300 || it.Position.Y != 200 {
		t.Errorf("dragged position = (%v, %v), want (300, 200)", it.Position.X, it.Position.Y)
	}

	// The whole drag added exactly one undoable entry.
	if got := e.hist.Len(); got != histBefore+1 {
		t.Errorf("history grew by %d entries, want 1", got-histBefore)
	}

	// Undo restores the pre-drag position.
	e.Undo()
	it = e.Project().Item(itemID)
	if it.Position.X != 100 || it.Position.Y != 100 {
		t.Errorf("undone position = (%v, %v), want (100, 100)", it.Position.X, it.Position.Y)
	}

	// Terminal state was persisted on release.
	if sink.projects == 0 {
		t.Error("persistence callback never fired for the drag's terminal state")
	}
}

func TestBlurForcesDragRelease(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.StartPlacing(deskTemplate, 1)
	e.Click(plan.Point{X: 100, Y: 100})

	e.PointerDown(plan.Point{X: 110, Y: 110})
	e.PointerMove(plan.Point{X: 200, Y: 110})

	e.Blur()

	if e.DragActive() {
		t.Error("drag capture still held after forced blur")
	}

	// Moves after the forced release are ignored.
	before := *e.Project().Items[0].Position
	e.PointerMove(plan.Point{X: 900, Y: 900})
	if got := *e.Project().Items[0].Position; got != before {
		t.Errorf("move after release changed position: %v", got)
	}
}

func TestGroupStackDeleteFlow(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.StartPlacing(deskTemplate, 2)
	e.Click(plan.Point{X: 10, Y: 10})
	e.Click(plan.Point{X: 300, Y: 10})

	ids := []string{e.Project().Items[0].ID, e.Project().Items[1].ID}
	e.sel = map[string]struct{}{ids[0]: {}, ids[1]: {}}

	if !e.CanGroup() {
		t.Fatal("CanGroup() = false for two ungrouped items")
	}
	if err := e.GroupSelection(); err != nil {
		t.Fatalf("GroupSelection() error = %v", err)
	}
	if e.CanGroup() {
		t.Error("CanGroup() = true after grouping")
	}
	g0 := e.Project().Items[0].GroupID
	if g0 == "" || g0 != e.Project().Items[1].GroupID {
		t.Error("grouping did not assign one shared identity")
	}

	if err := e.StackSelection(); err != nil {
		t.Fatalf("StackSelection() error = %v", err)
	}
	if !e.IsSingleStackSelected() {
		t.Error("IsSingleStackSelected() = false after stacking the selection")
	}
	if e.CanStack() {
		t.Error("CanStack() = true for an already uniform stack")
	}

	if err := e.DeleteSelection(); err != nil {
		t.Fatalf("DeleteSelection() error = %v", err)
	}
	if len(e.Project().Items) != 0 {
		t.Errorf("project has %d items after delete, want 0", len(e.Project().Items))
	}
	if len(e.Selection()) != 0 {
		t.Error("selection not cleared after delete")
	}

	// Operating on identities that no longer exist is a reported no-op.
	e.sel = map[string]struct{}{ids[0]: {}}
	if err := e.DeleteSelection(); !errors.Is(err, errors.ErrCodeUnknownIdentity) {
		t.Errorf("DeleteSelection() on ghosts error = %v, want UNKNOWN_IDENTITY", err)
	}
}

func TestMoveAndRotateSelection(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.StartPlacing(deskTemplate, 1)
	e.Click(plan.Point{X: 50, Y: 50})
	id := e.Project().Items[0].ID
	e.sel = map[string]struct{}{id: {}}

	if err := e.MoveSelectionBy(25, -10); err != nil {
		t.Fatalf("MoveSelectionBy() error = %v", err)
	}
	it := e.Project().Item(id)
	if it.Position.X != 75 || it.Position.Y != 40 {
		t.Errorf("position = (%v, %v), want (75, 40)", it.Position.X, it.Position.Y)
	}

	if err := e.RotateSelection(-90); err != nil {
		t.Fatalf("RotateSelection() error = %v", err)
	}
	if got := e.Project().Item(id).Rotation; got != 270 {
		t.Errorf("rotation = %v, want 270", got)
	}
}

func TestTasksNeverStale(t *testing.T) {
	e := newTestEngine(t, Options{})

	e.StartPlacing(deskTemplate, 2)
	e.Click(plan.Point{X: 10, Y: 10})
	e.Click(plan.Point{X: 300, Y: 10})

	if len(e.Tasks()) != 2 {
		t.Fatalf("Tasks() = %d entries, want 2", len(e.Tasks()))
	}

	e.Undo()
	if len(e.Tasks()) != 1 {
		t.Errorf("Tasks() = %d entries after undo, want 1", len(e.Tasks()))
	}

	// Derived identities match the deterministic derivation.
	if e.Tasks()[0].ID != tasks.ID(e.Project().Items[0].ID) {
		t.Error("derived task identity does not match its source item")
	}
}

func TestPlaceItemCommitsUnplacedOnly(t *testing.T) {
	var sink sinkCounter
	e := newTestEngine(t, sink.options())

	e.ImportTemplates([]plan.Template{deskTemplate})
	id := e.Project().Items[0].ID

	if err := e.PlaceItem(id, plan.Point{X: 40, Y: 60}); err != nil {
		t.Fatalf("PlaceItem() error = %v", err)
	}
	got := e.Project().Item(id)
	if !got.Placed() || got.Position.X != 40 || got.Position.Y != 60 {
		t.Errorf("item position = %+v, want placed at (40, 60)", got.Position)
	}
	if sink.projects != 2 {
		t.Errorf("persistence callback fired %d times, want 2", sink.projects)
	}

	// Placing twice is an input error and must not commit.
	if err := e.PlaceItem(id, plan.Point{X: 0, Y: 0}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second PlaceItem() error = %v, want INVALID_INPUT", err)
	}
	if err := e.PlaceItem("ghost", plan.Point{}); !errors.Is(err, errors.ErrCodeUnknownIdentity) {
		t.Errorf("PlaceItem(ghost) error = %v, want UNKNOWN_IDENTITY", err)
	}
	if sink.projects != 2 {
		t.Errorf("failed placements committed: callback fired %d times, want 2", sink.projects)
	}
}

func TestToggleSelect(t *testing.T) {
	e := newTestEngine(t, Options{})

	e.ImportTemplates([]plan.Template{deskTemplate, deskTemplate})
	a := e.Project().Items[0].ID
	b := e.Project().Items[1].ID

	e.ToggleSelect(a)
	e.ToggleSelect(b)
	if len(e.Selection()) != 2 {
		t.Fatalf("Selection() = %d ids, want 2", len(e.Selection()))
	}

	e.ToggleSelect(a)
	if sel := e.Selection(); len(sel) != 1 || !sel.Has(b) {
		t.Errorf("Selection() = %v after toggle-off, want {%s}", sel.IDs(), b)
	}

	// Unknown identities are ignored, not selected.
	e.ToggleSelect("ghost")
	if len(e.Selection()) != 1 {
		t.Errorf("Selection() = %d ids after ghost toggle, want 1", len(e.Selection()))
	}

	e.ClearSelection()
	if len(e.Selection()) != 0 {
		t.Errorf("Selection() = %d ids after clear, want 0", len(e.Selection()))
	}
}
