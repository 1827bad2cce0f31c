package plan

import (
	"math"

	"github.com/floorlay/floorlay/pkg/errors"
)

// Validate checks the structural invariants of a project snapshot supplied
// from outside the engine. A failure here is the only unrecoverable error
// class in the system: the snapshot is rejected before it can enter history.
//
// Checks:
//   - project identity and name are present and well-formed
//   - scale, when set, is a positive finite number
//   - item identities are present, well-formed, and unique
//   - item dimensions are positive finite numbers
//   - placed items have finite coordinates
//   - install order, when set, is a positive integer
func Validate(p *Project) error {
	if p == nil {
		return errors.New(errors.ErrCodeInvalidSnapshot, "project is nil")
	}
	if err := errors.ValidateIdentity(p.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "project identity")
	}
	if err := errors.ValidateName(p.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "project name")
	}
	if err := errors.ValidateImageRef(p.ImageRef); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "background image reference")
	}

	if p.Scale != 0 && (p.Scale < 0 || math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0)) {
		return errors.New(errors.ErrCodeInvalidSnapshot, "scale must be positive, got %v", p.Scale)
	}

	seen := make(map[string]struct{}, len(p.Items))
	for i := range p.Items {
		it := &p.Items[i]
		if err := validateItem(it); err != nil {
			return err
		}
		if _, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeInvalidSnapshot, "duplicate item identity %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

func validateItem(it *FurnitureItem) error {
	if err := errors.ValidateIdentity(it.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "item identity")
	}
	if err := errors.ValidateName(it.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "item %s name", it.ID)
	}
	if err := errors.ValidateProductCode(it.ProductCode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "item %s product code", it.ID)
	}

	if !positiveFinite(it.WidthCm) || !positiveFinite(it.DepthCm) {
		return errors.New(errors.ErrCodeInvalidSnapshot,
			"item %s dimensions must be positive, got %v x %v cm", it.ID, it.WidthCm, it.DepthCm)
	}

	if it.Position != nil && (!finite(it.Position.X) || !finite(it.Position.Y)) {
		return errors.New(errors.ErrCodeInvalidSnapshot,
			"item %s position is not finite: (%v, %v)", it.ID, it.Position.X, it.Position.Y)
	}
	if !finite(it.Rotation) {
		return errors.New(errors.ErrCodeInvalidSnapshot, "item %s rotation is not finite", it.ID)
	}

	if it.InstallOrder < 0 {
		return errors.New(errors.ErrCodeInvalidSnapshot,
			"item %s install order must be positive, got %d", it.ID, it.InstallOrder)
	}
	if it.EstimatedMinutes < 0 {
		return errors.New(errors.ErrCodeInvalidSnapshot,
			"item %s estimated minutes must be positive, got %d", it.ID, it.EstimatedMinutes)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveFinite(v float64) bool {
	return v > 0 && finite(v)
}
