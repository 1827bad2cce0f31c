package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/floorlay/floorlay/pkg/cache"
	"github.com/floorlay/floorlay/pkg/plan"
	"github.com/floorlay/floorlay/pkg/tasks"
)

// tasksCommand creates the tasks command for deriving installation tasks.
func (c *CLI) tasksCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "tasks <project.json>",
		Short: "Derive the installation task list from a project",
		Long: `Tasks synthesizes the ordered installation task list from the placed
furniture in a project. Without --output the list is printed; with an
output file the installation graph is written in the format implied by
the extension (.dot, .svg, or .png).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.ReadProjectFile(args[0])
			if err != nil {
				return err
			}

			ts := tasks.Synthesize(p)
			if output == "" {
				printTaskList(p, ts)
				return nil
			}
			return c.writeTaskGraph(cmd.Context(), ts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the installation graph (.dot, .svg, or .png)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the rendered artifact cache")

	return cmd
}

func printTaskList(p *plan.Project, ts []tasks.Task) {
	fmt.Println(StyleTitle.Render("Installation plan: " + p.Name))
	printNewline()

	if len(ts) == 0 {
		printInfo("No placed furniture, nothing to install")
		return
	}

	total := 0
	for _, t := range ts {
		fmt.Printf("  %s %s\n",
			StyleHighlight.Render(fmt.Sprintf("%2d.", t.InstallOrder)),
			StyleValue.Render(t.Title))
		detail := fmt.Sprintf("%d min", t.EstimatedMinutes)
		if t.Zone != "" {
			detail = t.Zone + " · " + detail
		}
		printDetail("    %s", detail)
		total += t.EstimatedMinutes
	}

	printNewline()
	printKeyValue("tasks", fmt.Sprintf("%d", len(ts)))
	printKeyValue("estimated", fmt.Sprintf("%d min", total))
}

// writeTaskGraph renders the installation graph to path, using the
// content-addressed artifact cache for svg/png output.
func (c *CLI) writeTaskGraph(ctx context.Context, ts []tasks.Task, path string, noCache bool) error {
	dot := tasks.ToDOT(ts)
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg", "png":
		artifacts, err := newCache(noCache)
		if err != nil {
			return err
		}
		defer artifacts.Close()

		key := cache.ArtifactKey([]byte(dot), format)
		cached, hit, err := artifacts.Get(ctx, key)
		if err != nil {
			c.Logger.Warn("artifact cache get failed", "err", err)
		}
		if hit {
			data = cached
			c.Logger.Debug("render cache hit", "format", format)
		} else {
			prog := newProgress(c.Logger)
			sp := newSpinnerWithContext(ctx, "Rendering installation graph")
			sp.Start()
			if format == "svg" {
				data, err = tasks.RenderSVG(ctx, dot)
			} else {
				data, err = tasks.RenderPNG(ctx, dot)
			}
			sp.Stop()
			if err != nil {
				return err
			}
			prog.done("Rendered installation graph")
			if err := artifacts.Set(ctx, key, data, 0); err != nil {
				c.Logger.Warn("artifact cache set failed", "err", err)
			}
		}
	default:
		return fmt.Errorf("unsupported output format %q (use .dot, .svg, or .png)", filepath.Ext(path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote installation graph (%d tasks)", len(ts))
	printFile(path)
	return nil
}
