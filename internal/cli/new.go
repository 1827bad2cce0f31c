package cli

import (
	"github.com/spf13/cobra"

	"github.com/floorlay/floorlay/pkg/plan"
)

// newCommand creates the new command for starting a project file.
func (c *CLI) newCommand() *cobra.Command {
	var (
		output   string
		jobRef   string
		imageRef string
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new floor-plan project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := plan.New(args[0])
			p.JobRef = jobRef
			p.ImageRef = imageRef

			path := output
			if path == "" {
				path = p.ID + ".json"
			}
			if err := plan.WriteProjectFile(p, path); err != nil {
				return err
			}

			printSuccess("Created project %s", StyleHighlight.Render(p.Name))
			printFile(path)
			printNextStep("Edit the plan", "floorlay edit "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <id>.json)")
	cmd.Flags().StringVar(&jobRef, "job", "", "external job reference")
	cmd.Flags().StringVar(&imageRef, "image", "", "background image reference")

	return cmd
}
