package cli

import (
	"github.com/spf13/cobra"

	"github.com/floorlay/floorlay/pkg/errors"
	"github.com/floorlay/floorlay/pkg/plan"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project.json>",
		Short: "Check a project file against the snapshot invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// ReadProjectFile already validates; surface the result rather
			// than failing the command so scripted checks get a clean report.
			p, err := plan.ReadProjectFile(args[0])
			if errors.Is(err, errors.ErrCodeInvalidSnapshot) {
				printError("Invalid project: %s", errors.UserMessage(err))
				return err
			}
			if err != nil {
				return err
			}

			printSuccess("Valid project %s", StyleHighlight.Render(p.Name))
			printPlanStats(len(p.PlacedItems()), len(p.Items)-len(p.PlacedItems()), p.Calibrated())
			if !p.Calibrated() {
				printWarning("Project is not calibrated; item bounds assume 1 px/cm")
			}
			return nil
		},
	}

	return cmd
}
