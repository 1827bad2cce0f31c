// Package plan defines the floor-plan data model: projects, furniture items,
// product templates, and the world-space geometry they live in.
//
// A Project is the authoritative snapshot committed into history. Everything
// in this package is plain value data: cloning is deep, serialization is the
// JSON structure described by the wire format, and validation guards the
// engine boundary against structurally invalid snapshots.
//
// # Lifecycle
//
// Furniture items have exactly two lifecycle states, placed and unplaced,
// encoded by the Position pointer: nil means unplaced, non-nil means placed.
// There is no partial placement. Items are created on import or on single
// placement, mutated in place by move/rotate/stack/group operations, and
// removed on explicit deletion or undo past their creation.
package plan

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FurnitureItem
// =============================================================================

// FurnitureItem is one piece of furniture in a project. Width and depth are
// real-world centimetres; the on-plan footprint is derived from them and the
// project's calibrated scale.
type FurnitureItem struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	ProductCode string `json:"product_code,omitempty" bson:"product_code,omitempty"`

	WidthCm float64 `json:"width_cm" bson:"width_cm"`
	DepthCm float64 `json:"depth_cm" bson:"depth_cm"`

	// Position is the world-space anchor (top-left corner) of the item, or
	// nil while the item is unplaced.
	Position *Point  `json:"position,omitempty" bson:"position,omitempty"`
	Rotation float64 `json:"rotation" bson:"rotation"`

	Zone  string `json:"zone,omitempty" bson:"zone,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`

	// InstallOrder is an optional explicit ordering hint (positive integer).
	// Zero means unset; task synthesis then falls back to array position.
	InstallOrder int `json:"install_order,omitempty" bson:"install_order,omitempty"`

	GroupID string `json:"group_id,omitempty" bson:"group_id,omitempty"`
	StackID string `json:"stack_id,omitempty" bson:"stack_id,omitempty"`

	// EstimatedMinutes is an optional per-item installation estimate.
	// Zero means unset; task synthesis then uses the default duration.
	EstimatedMinutes int `json:"estimated_minutes,omitempty" bson:"estimated_minutes,omitempty"`
}

// Placed reports whether the item has a position on the plan.
func (it *FurnitureItem) Placed() bool { return it.Position != nil }

// Bounds returns the item's axis-aligned bounding box in world units for the
// given pixels-per-centimetre scale, anchored at its position. The zero
// rectangle is returned for unplaced items.
func (it *FurnitureItem) Bounds(scale float64) Rect {
	if it.Position == nil {
		return Rect{}
	}
	return Rect{
		Min: *it.Position,
		Max: Point{
			X: it.Position.X + it.WidthCm*scale,
			Y: it.Position.Y + it.DepthCm*scale,
		},
	}
}

// Clone returns a deep copy of the item.
func (it *FurnitureItem) Clone() FurnitureItem {
	out := *it
	if it.Position != nil {
		pos := *it.Position
		out.Position = &pos
	}
	return out
}

// =============================================================================
// Template
// =============================================================================

// Template is a furniture item minus identity and position: the blueprint a
// placement session or import stamps new items from.
type Template struct {
	Name             string  `json:"name" bson:"name"`
	ProductCode      string  `json:"product_code,omitempty" bson:"product_code,omitempty"`
	WidthCm          float64 `json:"width_cm" bson:"width_cm"`
	DepthCm          float64 `json:"depth_cm" bson:"depth_cm"`
	Zone             string  `json:"zone,omitempty" bson:"zone,omitempty"`
	Color            string  `json:"color,omitempty" bson:"color,omitempty"`
	EstimatedMinutes int     `json:"estimated_minutes,omitempty" bson:"estimated_minutes,omitempty"`
}

// Instantiate creates a new unplaced FurnitureItem from the template with a
// freshly generated identity and rotation 0.
func (t Template) Instantiate() FurnitureItem {
	return FurnitureItem{
		ID:               uuid.NewString(),
		Name:             t.Name,
		ProductCode:      t.ProductCode,
		WidthCm:          t.WidthCm,
		DepthCm:          t.DepthCm,
		Zone:             t.Zone,
		Color:            t.Color,
		EstimatedMinutes: t.EstimatedMinutes,
	}
}

// =============================================================================
// Project
// =============================================================================

// Project is a full floor-plan snapshot: identity, the calibrated background
// image, and the ordered furniture list. Item array order is meaningful: it
// drives the install order chain during task synthesis.
type Project struct {
	ID      string    `json:"id" bson:"id"`
	Name    string    `json:"name" bson:"name"`
	Created time.Time `json:"created" bson:"created"`

	// JobRef is an optional reference into the external job-tracking system.
	JobRef string `json:"job_ref,omitempty" bson:"job_ref,omitempty"`

	// ImageRef is an opaque background-image reference (URL or blob handle).
	// The engine never decodes or validates image content.
	ImageRef string `json:"image_ref,omitempty" bson:"image_ref,omitempty"`

	Items []FurnitureItem `json:"items" bson:"items"`

	// Scale is the calibrated pixels-per-centimetre ratio. Zero means the
	// project has not been calibrated yet; when set it is always positive.
	Scale float64 `json:"scale,omitempty" bson:"scale,omitempty"`
}

// New creates an empty project with a fresh identity.
func New(name string) *Project {
	return &Project{
		ID:      uuid.NewString(),
		Name:    name,
		Created: time.Now().UTC(),
		Items:   []FurnitureItem{},
	}
}

// Clone returns a deep copy of the project. History snapshots and engine
// mutations always operate on clones so committed entries stay immutable.
func (p *Project) Clone() *Project {
	out := *p
	out.Items = make([]FurnitureItem, len(p.Items))
	for i := range p.Items {
		out.Items[i] = p.Items[i].Clone()
	}
	return &out
}

// Calibrated reports whether a pixels-per-centimetre scale has been set.
func (p *Project) Calibrated() bool { return p.Scale > 0 }

// Item returns a pointer to the item with the given identity, or nil.
func (p *Project) Item(id string) *FurnitureItem {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// PlacedItems returns the placed items in array order.
func (p *Project) PlacedItems() []*FurnitureItem {
	var out []*FurnitureItem
	for i := range p.Items {
		if p.Items[i].Placed() {
			out = append(out, &p.Items[i])
		}
	}
	return out
}

// StackMembers returns the identities of all items sharing the given stack
// identity, in array order. An empty stack identity matches nothing.
func (p *Project) StackMembers(stackID string) []string {
	if stackID == "" {
		return nil
	}
	var out []string
	for i := range p.Items {
		if p.Items[i].StackID == stackID {
			out = append(out, p.Items[i].ID)
		}
	}
	return out
}
