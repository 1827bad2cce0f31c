package cli

import (
	"github.com/spf13/cobra"

	"github.com/floorlay/floorlay/pkg/engine"
	"github.com/floorlay/floorlay/pkg/imports"
	"github.com/floorlay/floorlay/pkg/plan"
)

// importCommand creates the import command for loading product catalogs.
func (c *CLI) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <project.json> <catalog.json|catalog.toml>",
		Short: "Import a product catalog as unplaced furniture",
		Long: `Import reads a product catalog and adds one unplaced furniture item per
product to the project. Items are placed later in the interactive editor.

A malformed catalog record rejects the whole file; the project is only
written when every record validated.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, catalogPath := args[0], args[1]

			p, err := plan.ReadProjectFile(projectPath)
			if err != nil {
				return err
			}
			templates, err := imports.ImportFile(catalogPath)
			if err != nil {
				return err
			}

			eng, err := engine.New(p, engine.Options{Logger: c.Logger})
			if err != nil {
				return err
			}
			eng.ImportTemplates(templates)

			if err := plan.WriteProjectFile(eng.Project(), projectPath); err != nil {
				return err
			}

			printSuccess("Imported %d products into %s", len(templates), StyleHighlight.Render(p.Name))
			printPlanStats(len(eng.Project().PlacedItems()), len(eng.Project().Items)-len(eng.Project().PlacedItems()), eng.Project().Calibrated())
			printNextStep("Place the items", "floorlay edit "+projectPath)
			return nil
		},
	}

	return cmd
}
