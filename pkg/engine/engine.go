// Package engine wires the floor-plan components into a single interaction
// engine: it classifies user gestures by the active mode, routes each
// click/drag to exactly one component, and runs the synchronous
// commit→synthesize pipeline over project history.
//
// # Architecture
//
// The engine is single-threaded and cooperative: all state transitions
// occur synchronously inside discrete input-event handlers. Every history
// commit (and undo/redo) triggers task synthesis exactly once, then hands
// the snapshot and the derived task list to the collaborator callbacks.
// Message passing rather than implicit reactive propagation, so the
// derivation order is reproducible outside any particular UI runtime.
//
// # Usage
//
//	eng, err := engine.New(project, engine.Options{
//	    OnProjectChange:  store.Save,
//	    OnTasksGenerated: jobs.Push,
//	})
//	if err != nil {
//	    return err
//	}
//	eng.EnterScaling()
//	eng.Click(p1)
//	eng.Click(p2)
//	if err := eng.CommitCalibration(250); err != nil {
//	    // non-positive length: calibration phase stays open
//	}
package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/floorlay/floorlay/pkg/calibrate"
	"github.com/floorlay/floorlay/pkg/placement"
	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/plan/history"
	"github.com/floorlay/floorlay/pkg/selection"
	"github.com/floorlay/floorlay/pkg/tasks"
	"github.com/floorlay/floorlay/pkg/view"
)

// =============================================================================
// Interaction Modes
// =============================================================================

// Mode is the active interaction mode. Each mode routes a click or drag to
// exactly one component.
type Mode int

const (
	ModeIdle Mode = iota
	ModeScaling
	ModeMeasuring
	ModePlacing
	ModeMarqueeSelecting
)

// String returns the mode name for logs and status lines.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeScaling:
		return "scaling"
	case ModeMeasuring:
		return "measuring"
	case ModePlacing:
		return "placing"
	case ModeMarqueeSelecting:
		return "marquee"
	default:
		return "unknown"
	}
}

// =============================================================================
// Options
// =============================================================================

// Options configures an engine's collaborator callbacks.
type Options struct {
	// OnProjectChange is the persistence callback, invoked after every
	// commit (and after the terminal state of a drag).
	OnProjectChange func(*plan.Project)

	// OnTasksGenerated is the task-consumption callback, invoked after
	// every synthesis.
	OnTasksGenerated func([]tasks.Task)

	// Logger receives debug output. Defaults to a discarding logger.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.OnProjectChange == nil {
		o.OnProjectChange = func(*plan.Project) {}
	}
	if o.OnTasksGenerated == nil {
		o.OnTasksGenerated = func([]tasks.Task) {}
	}
}

// =============================================================================
// Engine
// =============================================================================

// Engine owns the interaction state of one open project: its history, view
// transform, in-progress gestures, and the current selection. It is not
// safe for concurrent use; the data is owned exclusively by the single
// interaction loop that drives it.
type Engine struct {
	opts Options

	hist *history.History
	view *view.Transform

	mode Mode
	cal  calibrate.Calibrator
	meas calibrate.Measurer
	sess *placement.Session
	sel  selection.Set
	drag *dragState

	derived []tasks.Task
}

// New creates an engine for the given project snapshot. The snapshot is
// validated at the boundary; a structurally invalid project is rejected
// before it can enter history.
func New(p *plan.Project, opts Options) (*Engine, error) {
	if err := plan.Validate(p); err != nil {
		return nil, err
	}
	opts.setDefaults()

	e := &Engine{
		opts: opts,
		hist: history.New(p),
		view: view.New(),
		sel:  selection.Set{},
	}
	e.derived = tasks.Synthesize(e.hist.Current())
	return e, nil
}

// Project returns the current snapshot. Treat it as read-only.
func (e *Engine) Project() *plan.Project { return e.hist.Current() }

// Tasks returns the installation task list derived from the current
// snapshot. It is never stale relative to Project.
func (e *Engine) Tasks() []tasks.Task { return e.derived }

// View returns the pan/zoom transform. The transform is ephemeral and never
// part of history.
func (e *Engine) View() *view.Transform { return e.view }

// Mode returns the active interaction mode.
func (e *Engine) Mode() Mode { return e.mode }

// Selection returns the current selected-identity set.
func (e *Engine) Selection() selection.Set { return e.sel }

// CanUndo reports whether an undo step is available.
func (e *Engine) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Engine) CanRedo() bool { return e.hist.CanRedo() }

// =============================================================================
// Commit → Synthesize Pipeline
// =============================================================================

// commit runs the full pipeline for a new snapshot: history commit, task
// synthesis, then the persistence and task-consumption callbacks, all in
// the same synchronous step, so no reader ever observes a snapshot together
// with a stale derived task list.
func (e *Engine) commit(p *plan.Project) {
	e.hist.Commit(p)
	e.synthesize()
	e.opts.OnProjectChange(e.hist.Current())
	e.opts.OnTasksGenerated(e.derived)
}

// liveUpdate replaces the current history entry during a continuous drag.
// Synthesis still runs synchronously, but the persistence callback is
// reserved for commits and the drag's terminal state.
func (e *Engine) liveUpdate(p *plan.Project) {
	e.hist.LiveUpdate(p)
	e.synthesize()
	e.opts.OnTasksGenerated(e.derived)
}

func (e *Engine) synthesize() {
	e.derived = tasks.Synthesize(e.hist.Current())
}

// Undo moves history back one snapshot. At the boundary it is a silent
// no-op and reports false; otherwise the pipeline runs exactly once.
func (e *Engine) Undo() bool {
	if _, ok := e.hist.Undo(); !ok {
		return false
	}
	e.opts.Logger.Debug("undo", "index", e.hist.Index())
	e.synthesize()
	e.opts.OnProjectChange(e.hist.Current())
	e.opts.OnTasksGenerated(e.derived)
	return true
}

// Redo moves history forward one snapshot. At the boundary it is a silent
// no-op and reports false; otherwise the pipeline runs exactly once.
func (e *Engine) Redo() bool {
	if _, ok := e.hist.Redo(); !ok {
		return false
	}
	e.opts.Logger.Debug("redo", "index", e.hist.Index())
	e.synthesize()
	e.opts.OnProjectChange(e.hist.Current())
	e.opts.OnTasksGenerated(e.derived)
	return true
}

// =============================================================================
// Mode Transitions
// =============================================================================

// EnterScaling switches to calibration mode. Re-running calibration is
// permitted at any time; the previous scale is overwritten on commit.
func (e *Engine) EnterScaling() {
	e.cancelGestures()
	e.mode = ModeScaling
}

// EnterMeasuring switches to measuring mode.
func (e *Engine) EnterMeasuring() {
	e.cancelGestures()
	e.mode = ModeMeasuring
}

// EnterMarquee switches to marquee selection mode. The next drag draws the
// selection rectangle.
func (e *Engine) EnterMarquee() {
	e.cancelGestures()
	e.mode = ModeMarqueeSelecting
}

// StartPlacing begins a batch placement session for quantity copies of
// template and switches to placing mode.
func (e *Engine) StartPlacing(template plan.Template, quantity int) error {
	sess, err := placement.Start(template, quantity)
	if err != nil {
		return err
	}
	e.cancelGestures()
	e.sess = sess
	e.mode = ModePlacing
	e.opts.Logger.Debug("placement session started", "template", template.Name, "quantity", quantity)
	return nil
}

// PlacementRemaining returns how many placements the active session has
// left, or 0 when no session is active.
func (e *Engine) PlacementRemaining() int {
	if e.sess == nil {
		return 0
	}
	return e.sess.Remaining()
}

// CancelMode aborts any in-progress Scaling, Measuring, Placing, or marquee
// gesture and returns to idle. Cancellation is a pure local state reset: it
// never rolls back already-committed history entries.
func (e *Engine) CancelMode() {
	e.cancelGestures()
	e.mode = ModeIdle
}

func (e *Engine) cancelGestures() {
	e.cal.Cancel()
	e.meas.Cancel()
	if e.sess != nil {
		e.sess.Cancel()
		e.sess = nil
	}
	e.drag = nil
}

// =============================================================================
// Calibration and Measurement
// =============================================================================

// CalibrationLength returns the pixel length of the drawn reference
// segment, once both points are recorded.
func (e *Engine) CalibrationLength() (float64, bool) { return e.cal.PixelLength() }

// CommitCalibration converts the drawn reference segment plus the supplied
// real-world length into the project scale and commits it. On rejection the
// calibration phase remains open and no state is mutated.
func (e *Engine) CommitCalibration(realCm float64) error {
	scale, err := e.cal.Commit(realCm)
	if err != nil {
		return err
	}

	p := e.hist.Current().Clone()
	p.Scale = scale
	e.commit(p)
	e.mode = ModeIdle
	e.opts.Logger.Debug("calibrated", "scale", scale)
	return nil
}

// Measurement returns the in-progress measurement in pixels and, when the
// project is calibrated, in centimetres.
func (e *Engine) Measurement() (pixels, cm float64, ok bool) {
	pixels, ok = e.meas.PixelLength()
	if !ok {
		return 0, 0, false
	}
	cm, _ = e.meas.Centimetres(e.hist.Current().Scale)
	return pixels, cm, true
}
