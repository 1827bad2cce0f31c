// Package tasks derives an ordered installation task list from the placed
// furniture of a project snapshot.
//
// Synthesis is a pure function: tasks are regenerated from every snapshot,
// never hand-edited, and their lifetime is tied to the snapshot that
// produced them. Task identities are derived deterministically from the
// source item identities, so repeated synthesis over an unchanged snapshot
// yields identical output and downstream consumers can re-derive
// idempotently.
//
// Installation tasks form a strict linear chain matching placement array
// order: the first placed item has no prerequisites, every later one
// depends on the task of the immediately preceding placed item.
package tasks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/floorlay/floorlay/pkg/plan"
)

// DefaultEstimatedMinutes is the installation estimate used for items that
// do not carry their own.
const DefaultEstimatedMinutes = 30

// taskNamespace is the fixed UUID namespace for deriving task identities
// from furniture item identities. Changing it would change every derived
// identity, so it is part of the wire contract.
var taskNamespace = uuid.MustParse("8a9e3b52-74d1-4c6f-9f0a-5b2e8c41d7a3")

// Task is one derived installation task. It references the furniture item
// it was derived from and, except for the first task, the identity of its
// single prerequisite.
type Task struct {
	ID               string   `json:"id" bson:"id"`
	Title            string   `json:"title" bson:"title"`
	Description      string   `json:"description,omitempty" bson:"description,omitempty"`
	InstallOrder     int      `json:"install_order" bson:"install_order"`
	Zone             string   `json:"zone,omitempty" bson:"zone,omitempty"`
	ItemIDs          []string `json:"item_ids" bson:"item_ids"`
	EstimatedMinutes int      `json:"estimated_minutes" bson:"estimated_minutes"`
	DependsOn        []string `json:"depends_on" bson:"depends_on"`
}

// ID derives the deterministic task identity for a furniture item identity.
func ID(itemID string) string {
	return uuid.NewSHA1(taskNamespace, []byte(itemID)).String()
}

// Synthesize derives the installation task list from the project's placed
// items, in their array order. It has no side effects; handing the result
// to the job-tracking collaborator is the caller's separate step.
func Synthesize(p *plan.Project) []Task {
	out := []Task{}
	prevID := ""

	for i := range p.Items {
		it := &p.Items[i]
		if !it.Placed() {
			continue
		}

		order := it.InstallOrder
		if order == 0 {
			order = len(out) + 1
		}

		minutes := it.EstimatedMinutes
		if minutes == 0 {
			minutes = DefaultEstimatedMinutes
		}

		task := Task{
			ID:               ID(it.ID),
			Title:            "Install " + it.Name,
			Description:      describe(it),
			InstallOrder:     order,
			Zone:             it.Zone,
			ItemIDs:          []string{it.ID},
			EstimatedMinutes: minutes,
			DependsOn:        []string{},
		}
		if prevID != "" {
			task.DependsOn = []string{prevID}
		}

		out = append(out, task)
		prevID = task.ID
	}
	return out
}

func describe(it *plan.FurnitureItem) string {
	desc := fmt.Sprintf("Place %s (%.0f x %.0f cm)", it.Name, it.WidthCm, it.DepthCm)
	if it.ProductCode != "" {
		desc += fmt.Sprintf(", product %s", it.ProductCode)
	}
	if it.Zone != "" {
		desc += fmt.Sprintf(", zone %s", it.Zone)
	}
	return desc
}
