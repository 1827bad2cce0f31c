package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/floorlay/floorlay/pkg/engine"
	"github.com/floorlay/floorlay/pkg/plan"
)

// editCommand creates the edit command for the interactive plan editor.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <project.json>",
		Short: "Edit a floor plan interactively",
		Long: `Edit opens the interactive plan editor. Every change is committed to
project history and written back to the file immediately, so quitting
never loses work and undo is available across the whole session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			p, err := plan.ReadProjectFile(path)
			if err != nil {
				return err
			}

			eng, err := engine.New(p, engine.Options{
				Logger: c.Logger,
				OnProjectChange: func(snapshot *plan.Project) {
					if err := plan.WriteProjectFile(snapshot, path); err != nil {
						c.Logger.Error("autosave failed", "err", err)
					}
				},
			})
			if err != nil {
				return err
			}

			program := tea.NewProgram(NewEditorModel(eng), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return err
			}

			printSuccess("Saved %s", StyleHighlight.Render(eng.Project().Name))
			printPlanStats(len(eng.Project().PlacedItems()), len(eng.Project().Items)-len(eng.Project().PlacedItems()), eng.Project().Calibrated())
			printNextStep("Derive the install plan", "floorlay tasks "+path)
			return nil
		},
	}

	return cmd
}
