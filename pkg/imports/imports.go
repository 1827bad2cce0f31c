// Package imports loads product template catalogs from JSON and TOML
// files and validates every record before a template is constructed.
//
// A catalog is a list of product records:
//
//	{
//	  "products": [
//	    {"name": "Desk 140", "width_cm": 140, "depth_cm": 70, "product_code": "DSK-140"}
//	  ]
//	}
//
// or, in TOML:
//
//	[[products]]
//	name = "Desk 140"
//	width_cm = 140
//	depth_cm = 70
//	product_code = "DSK-140"
//
// Required fields are checked per record; a malformed record rejects the
// whole catalog with an error naming the record, so a partially valid file
// never yields a partially imported batch.
package imports

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
)

// =============================================================================
// Record Schema
// =============================================================================

// Record is one product entry as it appears in a catalog file. Name,
// WidthCm, and DepthCm are required; everything else is optional.
type Record struct {
	Name             string  `json:"name" toml:"name"`
	ProductCode      string  `json:"product_code,omitempty" toml:"product_code"`
	WidthCm          float64 `json:"width_cm" toml:"width_cm"`
	DepthCm          float64 `json:"depth_cm" toml:"depth_cm"`
	Zone             string  `json:"zone,omitempty" toml:"zone"`
	Color            string  `json:"color,omitempty" toml:"color"`
	EstimatedMinutes int     `json:"estimated_minutes,omitempty" toml:"estimated_minutes"`
}

// Template validates the record and converts it into a product template.
func (r *Record) Template() (plan.Template, error) {
	if err := errors.ValidateName(r.Name); err != nil {
		return plan.Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "invalid product name")
	}
	if err := errors.ValidateProductCode(r.ProductCode); err != nil {
		return plan.Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "invalid product code")
	}
	if !(r.WidthCm > 0) {
		return plan.Template{}, errors.New(errors.ErrCodeInvalidTemplate, "width must be positive, got %v", r.WidthCm)
	}
	if !(r.DepthCm > 0) {
		return plan.Template{}, errors.New(errors.ErrCodeInvalidTemplate, "depth must be positive, got %v", r.DepthCm)
	}
	if r.EstimatedMinutes < 0 {
		return plan.Template{}, errors.New(errors.ErrCodeInvalidTemplate, "estimated minutes must not be negative, got %d", r.EstimatedMinutes)
	}

	return plan.Template{
		Name:             r.Name,
		ProductCode:      r.ProductCode,
		WidthCm:          r.WidthCm,
		DepthCm:          r.DepthCm,
		Zone:             r.Zone,
		Color:            r.Color,
		EstimatedMinutes: r.EstimatedMinutes,
	}, nil
}

type catalog struct {
	Products []Record `json:"products" toml:"products"`
}

func (c *catalog) templates() ([]plan.Template, error) {
	out := make([]plan.Template, 0, len(c.Products))
	for i, rec := range c.Products {
		t, err := rec.Template()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "product %d (%q)", i+1, rec.Name)
		}
		out = append(out, t)
	}
	return out, nil
}

// =============================================================================
// Readers
// =============================================================================

// ReadJSON decodes a JSON product catalog from r and returns the validated
// templates. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]plan.Template, error) {
	var c catalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	return c.templates()
}

// ReadTOML decodes a TOML product catalog from r and returns the validated
// templates. ReadTOML does not close r.
func ReadTOML(r io.Reader) ([]plan.Template, error) {
	var c catalog
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	return c.templates()
}

// ImportFile reads a catalog file at path, choosing the decoder by file
// extension (.json or .toml).
func ImportFile(path string) ([]plan.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".toml":
		return ReadTOML(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported catalog format %q", filepath.Ext(path))
	}
}
