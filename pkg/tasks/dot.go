package tasks

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a task list to Graphviz DOT format, one box per task and
// one edge per dependency. The resulting DOT string can be rendered with
// [RenderSVG] or [RenderPNG].
func ToDOT(tasks []Task) string {
	var buf bytes.Buffer
	buf.WriteString("digraph install {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, t := range tasks {
		label := fmt.Sprintf("%d. %s", t.InstallOrder, t.Title)
		if t.Zone != "" {
			label += "\n" + t.Zone
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", t.ID, label)
	}

	buf.WriteString("\n")
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			fmt.Fprintf(&buf, "  %q -> %q;\n", dep, t.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
