package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/floorlay/floorlay/pkg/plan"
)

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <project.json>",
		Short: "Show placed and unplaced furniture grouped by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.ReadProjectFile(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(p.Name))
			printPlanStats(len(p.PlacedItems()), len(p.Items)-len(p.PlacedItems()), p.Calibrated())
			printNewline()

			printSummarySection("Placed", p.PlacedSummary())
			printNewline()
			printSummarySection("Unplaced", p.UnplacedSummary())
			return nil
		},
	}

	return cmd
}

func printSummarySection(title string, lines []plan.SummaryLine) {
	fmt.Println(StyleHighlight.Render(title))
	if len(lines) == 0 {
		printDetail("none")
		return
	}
	for _, l := range lines {
		fmt.Printf("  %s %s\n",
			StyleDim.Render(fmt.Sprintf("%3d ×", l.Count)),
			StyleValue.Render(l.Name))
	}
}
