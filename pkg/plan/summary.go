package plan

import "slices"

// SummaryLine is one row of an item summary: a display name and how many
// items carry it.
type SummaryLine struct {
	Name  string `json:"name" bson:"name"`
	Count int    `json:"count" bson:"count"`
}

// PlacedSummary groups placed items by name with counts, sorted
// alphabetically by name.
func (p *Project) PlacedSummary() []SummaryLine {
	return p.summarize(true)
}

// UnplacedSummary groups unplaced items by name with counts, sorted
// alphabetically by name.
func (p *Project) UnplacedSummary() []SummaryLine {
	return p.summarize(false)
}

func (p *Project) summarize(placed bool) []SummaryLine {
	counts := map[string]int{}
	for i := range p.Items {
		if p.Items[i].Placed() == placed {
			counts[p.Items[i].Name]++
		}
	}

	out := make([]SummaryLine, 0, len(counts))
	for name, n := range counts {
		out = append(out, SummaryLine{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b SummaryLine) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}
