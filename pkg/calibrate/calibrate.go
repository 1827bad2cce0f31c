// Package calibrate establishes the pixels-per-centimetre scale of a floor
// plan from a user-drawn reference measurement, and measures distances once
// a scale exists.
//
// Calibration is a two-phase gesture: the first click records a world-space
// start point, the second records the end point, and the operator then
// supplies the real-world length of the drawn segment in centimetres. The
// resulting scale is pixelLength / realWorldLength.
package calibrate

import (
	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
)

// Calibrator collects the two-click reference segment and turns it into a
// scale on commit. The zero value is ready to use.
type Calibrator struct {
	start *plan.Point
	end   *plan.Point
}

// Active reports whether a calibration gesture is in progress.
func (c *Calibrator) Active() bool { return c.start != nil }

// Complete reports whether both reference points have been recorded and the
// calibrator is waiting for the real-world length.
func (c *Calibrator) Complete() bool { return c.end != nil }

// AddPoint records the next reference point in world space. The first call
// records the segment start, the second the end; further calls restart the
// gesture from the new point.
func (c *Calibrator) AddPoint(p plan.Point) {
	switch {
	case c.start == nil:
		pt := p
		c.start = &pt
	case c.end == nil:
		pt := p
		c.end = &pt
	default:
		pt := p
		c.start = &pt
		c.end = nil
	}
}

// PixelLength returns the Euclidean length of the drawn segment in world
// pixels. It reports false until both points are recorded.
func (c *Calibrator) PixelLength() (float64, bool) {
	if c.start == nil || c.end == nil {
		return 0, false
	}
	return c.start.Distance(*c.end), true
}

// Commit converts the drawn segment plus the operator-supplied real-world
// length in centimetres into a pixels-per-centimetre scale and resets the
// gesture. A non-positive real-world length (or an incomplete segment) is
// rejected and the calibration phase remains open.
func (c *Calibrator) Commit(realCm float64) (float64, error) {
	pixels, ok := c.PixelLength()
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidCalibration, "reference segment is incomplete")
	}
	if !(realCm > 0) {
		return 0, errors.New(errors.ErrCodeInvalidCalibration,
			"real-world length must be a positive number, got %v", realCm)
	}

	scale := pixels / realCm
	c.Cancel()
	return scale, nil
}

// Cancel discards in-progress phase state. It never touches committed
// history or a previously committed scale.
func (c *Calibrator) Cancel() {
	c.start = nil
	c.end = nil
}

// Measurer implements the measuring mode: the same two-click gesture as
// calibration, but read-only: it reports the segment length in pixels and,
// given a scale, in centimetres.
type Measurer struct {
	seg Calibrator
}

// Active reports whether a measurement is in progress.
func (m *Measurer) Active() bool { return m.seg.Active() }

// AddPoint records the next measurement point in world space.
func (m *Measurer) AddPoint(p plan.Point) { m.seg.AddPoint(p) }

// PixelLength returns the measured segment length in world pixels.
func (m *Measurer) PixelLength() (float64, bool) { return m.seg.PixelLength() }

// Centimetres converts the measured pixel length to centimetres using the
// given pixels-per-centimetre scale. It reports false if the segment is
// incomplete or the scale is not positive.
func (m *Measurer) Centimetres(scale float64) (float64, bool) {
	pixels, ok := m.seg.PixelLength()
	if !ok || scale <= 0 {
		return 0, false
	}
	return pixels / scale, true
}

// Cancel discards the in-progress measurement.
func (m *Measurer) Cancel() { m.seg.Cancel() }
